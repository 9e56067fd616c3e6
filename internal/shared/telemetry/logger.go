package telemetry

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init reconfigures the package logger. Level accepts zerolog level names
// ("debug", "info", "warn", "error"); console switches to human-readable
// output for local development.
func Init(level string, console bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	var out = zerolog.New(os.Stdout)
	if console {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	log = out.Level(lvl).With().Timestamp().Logger()
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	log.Info().Fields(fields).Msg(msg)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	log.Warn().Fields(fields).Msg(msg)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	log.Error().Fields(fields).Msg(msg)
}
