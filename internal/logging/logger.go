package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a rotating JSON file logger. One-shot binaries also get
// the same entries on stderr so cron mail captures them.
func NewLogger(logDir string, teeStderr bool) (*zap.Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "webmon.log"),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	enc := zapcore.NewJSONEncoder(cfg)

	core := zapcore.NewCore(enc, w, zap.InfoLevel)
	if teeStderr {
		core = zapcore.NewTee(core,
			zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), zap.InfoLevel))
	}
	return zap.New(core), nil
}
