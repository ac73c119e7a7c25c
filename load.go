package wfobj

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Load reads the OBJ file at path, resolving any mtllib reference relative
// to path's directory (and to popts.MTLSearchDirs, if given), and returns
// the decoded Scene. It is the Go equivalent of a boolean-returning
// load(path, out scene, options) entry point, expressed idiomatically as a
// (*Scene, error) return. popts may be nil.
func Load(path string, option ParseOption, popts *ParserOptions) (*Scene, error) {
	logger := popts.logger()

	// Case-sensitive suffix check — see DESIGN.md Open Question (d).
	if !strings.HasSuffix(path, ".obj") {
		return nil, ErrBadExtension
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wfobj: open %s: %w", path, err)
	}
	defer f.Close()

	baseDir := filepath.Dir(path)
	builder := newSceneBuilder(baseDir, option, logger)
	builder.mtlDirs = append(builder.mtlDirs, popts.mtlSearchDirs()...)

	mtlLoader := func(names []string) {
		loadFirstAvailableMTL(builder, names, logger)
	}

	lr := newLineReader(f)
	for {
		line, lineErr := lr.next()
		if line != "" || lineErr == nil {
			if procErr := builder.processLine(line, mtlLoader); procErr != nil {
				return nil, fmt.Errorf("wfobj: %s: %w", path, procErr)
			}
		}
		if lineErr != nil {
			break
		}
	}

	builder.finalFlush()

	if err := builder.validate(); err != nil {
		return nil, fmt.Errorf("wfobj: %s: %w", path, err)
	}

	return builder.scene, nil
}

// loadFirstAvailableMTL tries each mtllib-referenced filename against every
// directory already known to the builder (the OBJ's own base directory,
// plus any configured MTLSearchDirs), loading the first one found and
// silently skipping everything else — the "first available file" mtllib
// rule, grounded on original_source/src/obj_loader.h's load_obj mtllib
// handling.
func loadFirstAvailableMTL(b *sceneBuilder, names []string, logger *zap.Logger) {
	for _, name := range names {
		for _, dir := range b.mtlDirs {
			full := filepath.Join(dir, name)
			f, err := os.Open(full)
			if err != nil {
				continue
			}
			loadMTL(f, &b.scene.Materials, b.scene.MaterialMap, logger)
			f.Close()
			return
		}
		logger.Debug("mtllib: file not found, skipped", zap.String("name", name))
	}
}
