// internal/logger/logger.go
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.Mutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar *zap.SugaredLogger
)

// Init initializes the logger
func Init() {
	mu.Lock()
	defer mu.Unlock()
	initLocked()
}

func initLocked() {
	if sugar != nil {
		return
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	sugar = zap.New(core).Sugar()
}

// SetLevel sets the log level
func SetLevel(levelStr string) {
	switch strings.ToLower(levelStr) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "info":
		level.SetLevel(zapcore.InfoLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Sync flushes any buffered log entries
func Sync() {
	mu.Lock()
	defer mu.Unlock()

	if sugar != nil {
		_ = sugar.Sync()
	}
}

func get() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()

	initLocked()
	return sugar
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	get().Debugf(format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	get().Infof(format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	get().Warnf(format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	get().Errorf(format, v...)
}
