package logger

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// std backs the formatted helpers. It starts with a console writer so logs
// emitted before InitStructured runs are not lost; InitStructured replaces it
// with the structured logger.
var std = newDefaultLogger()

func newDefaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

// Init initializes the plain logger used by startup code.
func Init() {
	std = newDefaultLogger()
}

// Info logs a formatted informational message
func Info(format string, args ...interface{}) {
	std.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a formatted warning message
func Warn(format string, args ...interface{}) {
	std.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	std.Error().Msg(fmt.Sprintf(format, args...))
}
