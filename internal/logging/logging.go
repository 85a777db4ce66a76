package logging

import (
	"os"
	"strings"

	"storefront-client/internal/config"

	"github.com/rs/zerolog"
)

// New builds the process logger from config: JSON by default, console
// format for local development.
func New(cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stderr)
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return out.Level(level).With().Timestamp().Logger()
}
