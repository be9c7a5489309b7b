package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Unknown levels fall back to
// info and unknown formats fall back to json.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var base zerolog.Logger
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console":
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	default:
		base = zerolog.New(os.Stdout)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = base.With().
		Timestamp().
		Str("service", "person-finder").
		Logger().
		Level(lvl)
}
