package wfobj

import (
	"io"
	"strings"

	"go.uber.org/zap"
)

// TexType enumerates the material slots a texture map can be bound to.
type TexType int

const (
	TexAmbient TexType = iota // map_Ka
	TexDiffuse                // map_Kd
	TexSpecular               // map_Ks
	TexSpecularHighlight      // map_Ns
	TexBump                   // map_bump, map_Bump, bump
	TexDisplacement           // disp
	TexAlpha                  // map_d
	TexReflection             // refl

	texTypeCount
)

// TextureFaceType is the face-mapping kind for a texture, selected by the
// "-type" texture option flag.
type TextureFaceType int

const (
	TexFace2D TextureFaceType = iota
	TexFace3DSphere
	TexFace3DCubeTop
	TexFace3DCubeBottom
	TexFace3DCubeFront
	TexFace3DCubeBack
	TexFace3DCubeLeft
	TexFace3DCubeRight
)

// TextureOption holds the modifier flags accepted by a map_* directive.
type TextureOption struct {
	Clamp          bool
	BlendU         bool
	BlendV         bool
	BumpMultiplier float32
	Sharpness      float32
	Brightness     float32
	Contrast       float32
	OriginOffset   Vec3
	Scale          Vec3
	Turbulence     Vec3
	Imfchan        byte
	FaceType       TextureFaceType
}

func defaultTextureOption() TextureOption {
	return TextureOption{
		Clamp:          false,
		BlendU:         true,
		BlendV:         true,
		BumpMultiplier: 1,
		Sharpness:      1,
		Brightness:     0,
		Contrast:       1,
		OriginOffset:   Vec3{},
		Scale:          Vec3{X: 1, Y: 1, Z: 1},
		Turbulence:     Vec3{},
		Imfchan:        'm',
		FaceType:       TexFace2D,
	}
}

// Texture is a material's reference to an image asset, plus its modifiers.
type Texture struct {
	Path   string
	Option TextureOption
}

// Material is a shaded surface specification decoded from an MTL file.
type Material struct {
	Name          string
	Ambient       Vec3
	Diffuse       Vec3
	Specular      Vec3
	Transmittance Vec3
	Emission      Vec3
	Shininess     float32
	Ior           float32
	Dissolve      float32
	Illum         int
	Textures      [texTypeCount]*Texture
}

func newMaterial() *Material {
	return &Material{Shininess: 1, Ior: 1, Dissolve: 1}
}

// mtlParser holds the state machine's stack-local working state, grounded
// on original_source/src/obj_loader.h's load_mtl local variables
// (current_mat, has_d).
type mtlParser struct {
	current *Material
	hasD    bool
	logger  *zap.Logger
}

// loadMTL parses an MTL stream, appending materials to materials and
// recording name -> index in materialMap. It never returns a hard error:
// MTL parsing only ever produces silent skips, logged through the
// configured logger.
func loadMTL(r io.Reader, materials *[]*Material, materialMap map[string]int, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &mtlParser{current: newMaterial(), logger: logger}

	lr := newLineReader(r)
	for {
		line, err := lr.next()
		if line != "" || err == nil {
			parseMTLLine(p, materials, materialMap, line)
		}
		if err != nil {
			break
		}
	}

	// Unconditional final flush, even for an anonymous material — see
	// DESIGN.md Open Question (a).
	flushMaterial(p, materials, materialMap)
}

func flushMaterial(p *mtlParser, materials *[]*Material, materialMap map[string]int) {
	materialMap[p.current.Name] = len(*materials)
	*materials = append(*materials, p.current)
}

func parseMTLLine(p *mtlParser, materials *[]*Material, materialMap map[string]int, rawLine string) {
	line := strings.TrimRight(rawLine, " \t\r")
	if line == "" || line[0] == '#' {
		return
	}

	word, rest := splitDirective(line)

	switch word {
	case "newmtl":
		// Only flush a predecessor that was actually named by its own
		// newmtl -- an anonymous leading material is discarded, not
		// flushed. The unconditional flush happens only at EOF (see
		// DESIGN.md Open Question (a)).
		if p.current.Name != "" {
			flushMaterial(p, materials, materialMap)
		}
		p.current = newMaterial()
		p.hasD = false
		p.current.Name = newCursor(rest).readWord()

	case "Ka":
		p.current.Ambient = parseVec3(rest)
	case "Kd":
		p.current.Diffuse = parseVec3(rest)
	case "Ks":
		p.current.Specular = parseVec3(rest)
	case "Ke":
		p.current.Emission = parseVec3(rest)
	case "Kt", "Tf":
		p.current.Transmittance = parseVec3(rest)
	case "Ni":
		p.current.Ior = newCursor(rest).parseReal(0)
	case "Ns":
		p.current.Shininess = newCursor(rest).parseReal(0)
	case "illum":
		p.current.Illum = newCursor(rest).parseInt()
	case "d":
		p.current.Dissolve = newCursor(rest).parseReal(1)
		p.hasD = true
	case "Tr":
		if !p.hasD {
			p.current.Dissolve = 1 - newCursor(rest).parseReal(0)
		}

	case "map_Ka":
		setTexture(p, materials, materialMap, TexAmbient, rest, false, p.logger)
	case "map_Kd":
		setTexture(p, materials, materialMap, TexDiffuse, rest, false, p.logger)
	case "map_Ks":
		setTexture(p, materials, materialMap, TexSpecular, rest, false, p.logger)
	case "map_Ns":
		setTexture(p, materials, materialMap, TexSpecularHighlight, rest, false, p.logger)
	case "map_d":
		setTexture(p, materials, materialMap, TexAlpha, rest, false, p.logger)
	case "disp":
		setTexture(p, materials, materialMap, TexDisplacement, rest, false, p.logger)
	case "refl":
		setTexture(p, materials, materialMap, TexReflection, rest, false, p.logger)
	case "map_bump", "map_Bump", "bump":
		setTexture(p, materials, materialMap, TexBump, rest, true, p.logger)

	default:
		p.logger.Debug("mtl: unrecognized directive", zap.String("directive", word))
	}
}

// splitDirective splits a trimmed line into its leading directive word and
// the remainder, matched exactly up to the first SPACE.
func splitDirective(line string) (word, rest string) {
	i := strings.IndexAny(line, " \t")
	if i == -1 {
		return line, ""
	}
	return line[:i], line[i+1:]
}

func parseVec3(rest string) Vec3 {
	c := newCursor(rest)
	return Vec3{X: c.parseReal(0), Y: c.parseReal(0), Z: c.parseReal(0)}
}

func setTexture(p *mtlParser, materials *[]*Material, materialMap map[string]int, slot TexType, rest string, isBump bool, logger *zap.Logger) {
	tex, ok := parseTextureDirective(rest)
	if !ok {
		logger.Debug("mtl: texture directive missing path, skipped", zap.Int("slot", int(slot)))
		return
	}
	if isBump {
		tex.Option.Imfchan = 'l'
	}
	p.current.Textures[slot] = tex
}

// parseTextureDirective parses the option-flag-prefixed filename grammar of
// a map_* directive, grounded on original_source/src/obj_loader.h's
// parseTexture.
func parseTextureDirective(rest string) (*Texture, bool) {
	tex := &Texture{Option: defaultTextureOption()}
	c := newCursor(rest)

	for {
		c.skipSpace()
		if c.atEnd() {
			break
		}

		switch {
		case matchFlag(c, "-clamp"):
			tex.Option.Clamp = c.parseOnOff(true)
		case matchFlag(c, "-blendu"):
			tex.Option.BlendU = c.parseOnOff(true)
		case matchFlag(c, "-blendv"):
			tex.Option.BlendV = c.parseOnOff(true)
		case matchFlag(c, "-bm"):
			tex.Option.BumpMultiplier = c.parseReal(1)
		case matchFlag(c, "-boost"):
			tex.Option.Sharpness = c.parseReal(1)
		case matchFlag(c, "-mm"):
			tex.Option.Brightness = c.parseReal(0)
			tex.Option.Contrast = c.parseReal(1)
		case matchFlag(c, "-o"):
			tex.Option.OriginOffset = Vec3{X: c.parseReal(0), Y: c.parseReal(0), Z: c.parseReal(0)}
		case matchFlag(c, "-s"):
			tex.Option.Scale = Vec3{X: c.parseReal(1), Y: c.parseReal(1), Z: c.parseReal(1)}
		case matchFlag(c, "-t"):
			tex.Option.Turbulence = Vec3{X: c.parseReal(0), Y: c.parseReal(0), Z: c.parseReal(0)}
		case matchFlag(c, "-imfchan"):
			word := c.readWord()
			if len(word) == 1 {
				tex.Option.Imfchan = word[0]
			}
		case matchFlag(c, "-type"):
			tex.Option.FaceType = parseFaceTypeKeyword(c.readWord())
		default:
			tex.Path = c.readWord()
			if tex.Path == "" {
				return tex, false
			}
			return tex, true
		}
	}

	return tex, tex.Path != ""
}

// matchFlag reports whether the cursor is positioned at flag followed by a
// SPACE/tab, and if so consumes flag (leaving the argument for the caller).
func matchFlag(c *cursor, flag string) bool {
	rem := c.line[c.pos:]
	if !strings.HasPrefix(rem, flag) {
		return false
	}
	after := c.pos + len(flag)
	if after >= len(c.line) || !isSpaceByte(c.line[after]) {
		return false
	}
	c.pos = after
	return true
}

func parseFaceTypeKeyword(word string) TextureFaceType {
	switch {
	case strings.HasPrefix(word, "cube_top"):
		return TexFace3DCubeTop
	case strings.HasPrefix(word, "cube_bottom"):
		return TexFace3DCubeBottom
	case strings.HasPrefix(word, "cube_left"):
		return TexFace3DCubeLeft
	case strings.HasPrefix(word, "cube_right"):
		return TexFace3DCubeRight
	case strings.HasPrefix(word, "cube_front"):
		return TexFace3DCubeFront
	case strings.HasPrefix(word, "cube_back"):
		return TexFace3DCubeBack
	case strings.HasPrefix(word, "sphere"):
		return TexFace3DSphere
	default:
		return TexFace2D
	}
}
