package lambdaops

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json or console
	TimeFormat string `mapstructure:"time_format"`
}

// SetupLogger replaces the global zerolog logger. An unparsable level falls back to info.
func SetupLogger(cfg LogConfig, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = cfg.TimeFormat

	if cfg.Format == LogFormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat, NoColor: true}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
