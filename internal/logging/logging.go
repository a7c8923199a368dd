package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "tmux-popup-select.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       = zap.NewNop()
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error("error", zap.Error(err))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	l := logger
	mu.Unlock()
	if !enabled {
		return
	}
	if payload == nil {
		l.Info(event)
		return
	}
	l.Info(event, zap.Any("payload", payload))
}

// Logger returns the shared logger. Until Configure runs it discards everything.
func Logger() *zap.Logger {
	return current()
}

// ReplaceLogger installs l as the shared logger and returns a function that
// restores the previous one.
func ReplaceLogger(l *zap.Logger) func() {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	prev := logger
	logger = l
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	logPath = defaultLogFile
	if strings.TrimSpace(path) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		} else {
			logPath = path
		}
	}
	built, err := newFileLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	_ = logger.Sync()
	logger = built
}

// Sync flushes buffered log entries.
func Sync() {
	_ = current().Sync()
}

// Path reports the active log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func newFileLogger(path string) (*zap.Logger, error) {
	return fileLoggerConfig(path).Build()
}

// fileLoggerConfig writes entries and zap's own errors to path; the terminal
// belongs to the UI.
func fileLoggerConfig(path string) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "event"
	cfg.EncoderConfig.CallerKey = ""
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg
}
