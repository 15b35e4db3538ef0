package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.Mutex
	sugar *zap.SugaredLogger
)

// Init builds the process-wide logger. Safe to call more than once.
func Init(mode string) *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	if sugar != nil {
		return sugar
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.NewProductionConfig()
	config.EncoderConfig = encoderConfig
	if mode == "debug" {
		config = zap.NewDevelopmentConfig()
	}

	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	sugar = l.Sugar()
	return sugar
}

// L returns the shared logger, initializing a default one when needed.
func L() *zap.SugaredLogger {
	mu.Lock()
	ready := sugar != nil
	mu.Unlock()
	if !ready {
		return Init("")
	}
	return sugar
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}
