package logx

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, LevelInfo)
)

func newLogger(w io.Writer, level Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(toZerolog(level)).With().Timestamp().Logger()
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel maps debug/info/warn/error to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(toZerolog(level))
}

// SetOutput redirects log output, keeping the current level
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).
		Level(logger.GetLevel()).With().Timestamp().Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debug(msg string)                  { current().Debug().Msg(msg) }
func Debugf(format string, args ...any) { current().Debug().Msgf(format, args...) }
func Info(msg string)                   { current().Info().Msg(msg) }
func Infof(format string, args ...any)  { current().Info().Msgf(format, args...) }
func Warn(msg string)                   { current().Warn().Msg(msg) }
func Warnf(format string, args ...any)  { current().Warn().Msgf(format, args...) }
func Error(msg string)                  { current().Error().Msg(msg) }
func Errorf(format string, args ...any) { current().Error().Msgf(format, args...) }

// Fatalf logs and exits the process
func Fatalf(format string, args ...any) { current().Fatal().Msgf(format, args...) }
