package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide logger, tagged with the service
// name. APP_ENV=dev (or development) gets a human-friendly console
// writer, everything else emits JSON. LOG_LEVEL overrides the default
// info level.
func NewLogger(env string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lv != zerolog.NoLevel {
		level = lv
	}
	if env == "dev" || env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).
		With().Timestamp().Str("service", "aurora-api").Logger()
}
