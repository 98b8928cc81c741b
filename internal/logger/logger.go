// Package logger provides structured logging using Zap.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder; if LOG_FILE is set the output
// is additionally written to a size-rotated file. For all other
// environments it uses a human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			cfg := zap.NewProductionConfig()
			if logFile := os.Getenv("LOG_FILE"); logFile != "" {
				rotated := &lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    100, // megabytes
					MaxBackups: 3,
					MaxAge:     28, // days
					Compress:   true,
				}
				core := zapcore.NewCore(
					zapcore.NewJSONEncoder(cfg.EncoderConfig),
					zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(rotated)),
					cfg.Level,
				)
				base = zap.New(core)
			} else {
				base, err = cfg.Build()
			}
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
