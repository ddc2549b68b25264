package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a key/value structured logger. A nil *Logger discards everything.
type Logger struct {
	s *zap.SugaredLogger
}

var nop = zap.NewNop().Sugar()

// New builds a JSON production logger at the given level
func New(level string) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]any{"service": "niceboard"}

	z, err := cfg.Build()
	if err != nil {
		z, _ = zap.NewProduction()
	}

	return &Logger{s: z.Sugar()}
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{s: nop}
}

// FromZap wraps an existing zap logger
func FromZap(z *zap.Logger) *Logger {
	return &Logger{s: z.Sugar()}
}

func (l *Logger) sugar() *zap.SugaredLogger {
	if l == nil || l.s == nil {
		return nop
	}
	return l.s
}

func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{s: l.sugar().With(keyvals...)}
}

// Named adds a dot-separated component name, e.g. "upload.finder"
func (l *Logger) Named(name string) *Logger {
	return &Logger{s: l.sugar().Named(name)}
}

func (l *Logger) Debug(msg string, keyvals ...any) { l.sugar().Debugw(msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...any)  { l.sugar().Infow(msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...any)  { l.sugar().Warnw(msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...any) { l.sugar().Errorw(msg, keyvals...) }

func (l *Logger) Sync() error {
	return l.sugar().Sync()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
