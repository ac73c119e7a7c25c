package wfobj

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Face is one polygon: an ordered list of face-vertex corners.
type Face struct {
	Indices []VertexIndex
}

// primitive is the transient bucket of faces awaiting flush into a Mesh,
// a "Primitive group". Named unexported: it never outlives one parse and
// is never part of the Scene result.
type primitive struct {
	faces []Face
}

func (p *primitive) empty() bool {
	return len(p.faces) == 0
}

// Mesh is a named, flushed run of faces sharing one object name and
// material-id evolution.
type Mesh struct {
	Name            string
	Indices         []VertexIndex
	NumFaceVertices []uint8
	MaterialIDs     []int
}

// Scene is the full result of one Load call: shared vertex pools, the
// meshes built from them, and any materials loaded from referenced MTL
// libraries.
type Scene struct {
	Positions []Vec3
	Texcoords []Vec2
	Normals   []Vec3

	Meshes []Mesh

	Materials   []*Material
	MaterialMap map[string]int

	BaseDir string
}

// parsePrimitive translates the faces accumulated in prim into mesh's
// Indices/NumFaceVertices/MaterialIDs, tagging every face with materialID
// and the mesh with name. Faces with fewer than 3 corners are silently
// dropped. Grounded on
// original_source/src/obj_loader.h's parsePrimitive.
func parsePrimitive(mesh *Mesh, prim *primitive, materialID int, name string) bool {
	if prim.empty() {
		return false
	}
	mesh.Name = name

	for _, f := range prim.faces {
		n := len(f.Indices)
		if n < 3 {
			continue
		}
		mesh.Indices = append(mesh.Indices, f.Indices...)
		mesh.NumFaceVertices = append(mesh.NumFaceVertices, uint8(n))
		mesh.MaterialIDs = append(mesh.MaterialIDs, materialID)
	}

	return true
}

// sceneBuilder holds the OBJ parser's stack-local state: current
// primitive, current mesh, current object name, current material id, and
// the running index maxima used for post-validation.
type sceneBuilder struct {
	scene *Scene

	prim              primitive
	currentMesh       Mesh
	currentObjectName string
	currentMaterialID int

	maxV, maxVt, maxVn int

	option ParseOption
	logger *zap.Logger

	mtlDirs []string
}

func newSceneBuilder(baseDir string, option ParseOption, logger *zap.Logger) *sceneBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sceneBuilder{
		scene: &Scene{
			MaterialMap: map[string]int{},
			BaseDir:     baseDir,
		},
		currentMaterialID: -1,
		maxV:              -1,
		maxVt:              -1,
		maxVn:              -1,
		option:            option,
		logger:            logger,
		mtlDirs:           []string{baseDir},
	}
}

// flush parses the current primitive into the current mesh, appends it
// to the scene if non-empty, then resets both the primitive and the mesh.
func (b *sceneBuilder) flush() {
	parsePrimitive(&b.currentMesh, &b.prim, b.currentMaterialID, b.currentObjectName)
	if len(b.currentMesh.Indices) > 0 {
		b.scene.Meshes = append(b.scene.Meshes, b.currentMesh)
	}
	b.prim = primitive{}
	b.currentMesh = Mesh{}
}

// finalFlush performs the end-of-file flush, which appends even when
// parsePrimitive's own "did it do anything" signal came back false, as
// long as the accumulated mesh ended up with indices.
func (b *sceneBuilder) finalFlush() {
	parsePrimitive(&b.currentMesh, &b.prim, b.currentMaterialID, b.currentObjectName)
	if len(b.currentMesh.Indices) > 0 {
		b.scene.Meshes = append(b.scene.Meshes, b.currentMesh)
	}
}

func (b *sceneBuilder) processLine(rawLine string, mtlLoader func(names []string)) error {
	line := strings.TrimRight(rawLine, " \t\r")
	if line == "" || line[0] == '#' {
		return nil
	}

	word, rest := splitDirective(line)

	switch word {
	case "v":
		b.scene.Positions = append(b.scene.Positions, parseVertexPosition(rest))
	case "vn":
		b.scene.Normals = append(b.scene.Normals, parseVec3(rest))
	case "vt":
		vt := parseVec2(rest)
		if b.option.Has(FLIP_UV) {
			vt.Y = 1 - vt.Y
		}
		b.scene.Texcoords = append(b.scene.Texcoords, vt)
	case "f":
		return b.processFace(rest)
	case "usemtl":
		b.processUsemtl(rest)
	case "mtllib":
		names := readRestSplit(rest, " \t")
		mtlLoader(names)
	case "g":
		b.flush()
		b.processGroupNames(rest)
	case "o":
		b.flush()
		b.currentObjectName = newCursor(rest).readWord()
	default:
		// s, p, l, curves and unrecognized directives are accepted but
		// ignored.
	}

	return nil
}

func parseVertexPosition(rest string) Vec3 {
	c := newCursor(rest)
	x := c.parseReal(0)
	y := c.parseReal(0)
	z := c.parseReal(0)
	_ = c.parseReal(1) // w is read and discarded
	return Vec3{X: x, Y: y, Z: z}
}

func parseVec2(rest string) Vec2 {
	c := newCursor(rest)
	return Vec2{X: c.parseReal(0), Y: c.parseReal(0)}
}

func (b *sceneBuilder) processFace(rest string) error {
	words := strings.Fields(rest)
	if len(words) == 0 {
		return nil
	}

	face := Face{Indices: make([]VertexIndex, 0, len(words))}
	for _, tok := range words {
		vi, err := parseFaceVertexToken(tok, len(b.scene.Positions), len(b.scene.Texcoords), len(b.scene.Normals))
		if err != nil {
			return fmt.Errorf("face token %q: %w", tok, err)
		}
		if vi.VIdx > b.maxV {
			b.maxV = vi.VIdx
		}
		if vi.VtIdx > b.maxVt {
			b.maxVt = vi.VtIdx
		}
		if vi.VnIdx > b.maxVn {
			b.maxVn = vi.VnIdx
		}
		face.Indices = append(face.Indices, vi)
	}

	b.prim.faces = append(b.prim.faces, face)
	return nil
}

func (b *sceneBuilder) processUsemtl(rest string) {
	name := newCursor(rest).readWord()
	id := -1
	if found, ok := b.scene.MaterialMap[name]; ok {
		id = found
	}
	if id != b.currentMaterialID {
		parsePrimitive(&b.currentMesh, &b.prim, b.currentMaterialID, b.currentObjectName)
		b.prim = primitive{}
		b.currentMaterialID = id
	}
}

func (b *sceneBuilder) processGroupNames(rest string) {
	c := newCursor(rest)
	var names []string
	for {
		c.skipSpace()
		if c.atEnd() {
			break
		}
		names = append(names, c.readWord())
	}
	if len(names) > 0 {
		b.currentObjectName = strings.Join(names, " ")
	}
}

// validate checks that every referenced pool index resolves within the
// final pool sizes. An unreferenced component's max of -1 always passes —
// see DESIGN.md Open Question (b); do not tighten this to '>'.
func (b *sceneBuilder) validate() error {
	if b.maxV >= len(b.scene.Positions) {
		return ErrUnresolvedReference
	}
	if b.maxVt >= len(b.scene.Texcoords) {
		return ErrUnresolvedReference
	}
	if b.maxVn >= len(b.scene.Normals) {
		return ErrUnresolvedReference
	}
	return nil
}
