package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	APP        = "app"
	CHAT       = "chat"
	CONFIG     = "config"
	HANDLER    = "handler"
	MIDDLEWARE = "middleware"
	REDIS      = "redis"
	SERVICE    = "service"
	WEBSOCKET  = "websocket"
)

func getLogLevel() zerolog.Level {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func useConsole() bool {
	return strings.EqualFold(os.Getenv("LOG_FORMAT"), "console")
}

// Setup configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
// Output goes to w, or stderr when w is nil.
func Setup(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	if useConsole() {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(getLogLevel())
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// Namespace returns a child of the global logger tagged with a component name
func Namespace(namespace string) zerolog.Logger {
	return log.With().Str("namespace", namespace).Logger()
}
