// Package logging builds the application-wide zap logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates the application logger. Production mode emits JSON to
// stdout at info level; debug mode switches to a console encoder at debug
// level. The returned flusher drains buffered entries and should be
// deferred by the caller.
func NewLogger(debug bool) (*zap.Logger, func()) {
	level := zapcore.InfoLevel
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	if debug {
		level = zapcore.DebugLevel
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	flusher := func() {
		// Sync on stdout fails on some platforms; buffered entries are
		// already written at this point, so the error is not actionable.
		_ = logger.Sync()
	}

	return logger, flusher
}
