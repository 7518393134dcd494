/*
Package logx wraps zerolog for the chatroom server.

It owns the process-wide logger: console output at debug level while developing,
JSON at info level otherwise. Components derive child loggers through Component so
every line they emit carries a "component" field.
*/
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the global logger for the given environment.
// Development: debug level through a colored ConsoleWriter on stderr.
// Anything else: info level, JSON lines on stdout.
func InitGlobalLogger(isDevelopment bool) {
	if isDevelopment {
		initWith(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    false,
			TimeFormat: time.RFC3339,
		}, zerolog.DebugLevel)
		return
	}

	initWith(os.Stdout, zerolog.InfoLevel)
}

// InitWithWriter points the global logger at w. Tests use it to silence or capture output.
func InitWithWriter(w io.Writer, level zerolog.Level) {
	initWith(w, level)
}

func initWith(w io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()

	log.Logger = logger
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// checkFields drops a key/value list with an odd length instead of letting zerolog panic.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msgf("logx.%s received odd number of fields: %v. Fields ignored.", level, fields)
		return nil
	}
	return fields
}

// Debug logs msg at debug level with optional key/value pairs.
func Debug(msg string, fields ...any) {
	fields = checkFields("Debug", fields)

	Logger().Debug().
		Fields(fields).
		CallerSkipFrame(1).
		Msg(msg)
}

// Info logs msg at info level with optional key/value pairs.
func Info(msg string, fields ...any) {
	fields = checkFields("Info", fields)

	Logger().Info().
		Fields(fields).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn logs msg at warn level with optional key/value pairs.
func Warn(msg string, fields ...any) {
	fields = checkFields("Warn", fields)

	Logger().Warn().
		Fields(fields).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error logs err and msg at error level with optional key/value pairs.
func Error(err error, msg string, fields ...any) {
	fields = checkFields("Error", fields)

	Logger().Error().
		Err(err).
		Fields(fields).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal logs err and msg, then exits the process with status 1.
func Fatal(err error, msg string, fields ...any) {
	fields = checkFields("Fatal", fields)

	Logger().Fatal().
		Err(err).
		Fields(fields).
		CallerSkipFrame(1).
		Msg(msg)
}
