package wfobj

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParserOptions is a plain options struct passed into Load, carrying an
// optional structured logger plus the directories a referenced mtllib
// should additionally be searched in.
type ParserOptions struct {
	// Logger receives structured parse diagnostics (unrecognized MTL
	// directives, MTL texture directives skipped for a missing path,
	// mtllib misses) at Debug level. Skipped faces, ignored OBJ directives
	// and malformed texture-flag arguments are not reported. If nil, a
	// no-op logger is used.
	Logger *zap.Logger

	// LoggerFunc is a single-string-message compatibility shim for callers
	// that don't want to depend on zap directly. Ignored if Logger is set.
	LoggerFunc func(string)

	// MTLSearchDirs lists extra directories to search for a mtllib file,
	// beyond the OBJ file's own directory, tried in order after it.
	MTLSearchDirs []string
}

func (o *ParserOptions) logger() *zap.Logger {
	if o == nil {
		return zap.NewNop()
	}
	if o.Logger != nil {
		return o.Logger
	}
	if o.LoggerFunc != nil {
		return loggerFromFunc(o.LoggerFunc)
	}
	return zap.NewNop()
}

func (o *ParserOptions) mtlSearchDirs() []string {
	if o == nil {
		return nil
	}
	return o.MTLSearchDirs
}

// callbackWriteSyncer adapts a func(string) diagnostics callback into the
// zapcore.WriteSyncer a zap.Logger needs, so LoggerFunc can drive the same
// logging path as a real *zap.Logger.
type callbackWriteSyncer struct {
	fn func(string)
}

func (w callbackWriteSyncer) Write(p []byte) (int, error) {
	w.fn(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func (w callbackWriteSyncer) Sync() error { return nil }

func loggerFromFunc(fn func(string)) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, callbackWriteSyncer{fn: fn}, zap.DebugLevel)
	return zap.New(core)
}
