package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Fields carries structured key/value context for a log entry.
type Fields map[string]interface{}

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init sets the global log level and, when pretty is true, switches to the
// human-readable console writer for local development.
func Init(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	logger.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message and includes the error in the fields.
func Error(msg string, err error, fields Fields) {
	logger.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	logger.Fatal().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}
