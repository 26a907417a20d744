package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ZerologLogger is a Logger backed by github.com/rs/zerolog.
type ZerologLogger struct {
	mu     *sync.RWMutex
	logger *zerolog.Logger
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerolog creates a zerolog based logger writing JSON lines to w.
// A nil w writes to stderr through zerolog's console writer.
func NewZerolog(w io.Writer, level Level) *ZerologLogger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()

	return &ZerologLogger{mu: &sync.RWMutex{}, logger: &zl}
}

func (l *ZerologLogger) current() *zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.logger
}

func (l *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	l.current().Debug().Fields(keysAndValues).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, keysAndValues ...any) {
	l.current().Info().Fields(keysAndValues).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	l.current().Warn().Fields(keysAndValues).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, keysAndValues ...any) {
	l.current().Error().Fields(keysAndValues).Msg(msg)
}

// Fatal logs at fatal level; zerolog exits the process after writing the event.
func (l *ZerologLogger) Fatal(msg string, keysAndValues ...any) {
	l.current().Fatal().Fields(keysAndValues).Msg(msg)
}

// With returns a child logger. Unlike the slog backend, the child owns its level.
func (l *ZerologLogger) With(keyValues ...any) Logger {
	child := l.current().With().Fields(keyValues).Logger()

	return &ZerologLogger{mu: &sync.RWMutex{}, logger: &child}
}

func (l *ZerologLogger) Level() Level {
	switch l.current().GetLevel() {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return DebugLevel
	case zerolog.InfoLevel:
		return InfoLevel
	case zerolog.WarnLevel:
		return WarnLevel
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return FatalLevel
	default:
		return ErrorLevel
	}
}

func (l *ZerologLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	zl := l.logger.Level(toZerologLevel(level))
	l.logger = &zl
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.ErrorLevel
	}
}
