package logger

import (
	"context"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	loggerWithoutCaller = zerolog.New(os.Stderr)
)

func Init(debug bool, pretty bool, additionalWriters ...io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if pretty {
		additionalWriters = append(additionalWriters, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		additionalWriters = append(additionalWriters, os.Stderr)
	}

	loggerWithoutCaller = log.Output(zerolog.MultiLevelWriter(additionalWriters...))
	log.Logger = loggerWithoutCaller.With().Caller().Logger()
}

func InitWithConfig(cfg Config) {
	Init(cfg.Debug, cfg.Pretty)
}

// InitFromEnv reads LOG_DEBUG and LOG_PRETTY.
func InitFromEnv() {
	var cfg Config
	envconfig.MustProcess("LOG", &cfg)
	InitWithConfig(cfg)
}

// WithoutCaller return a clone logger without caller field
func WithoutCaller() zerolog.Logger {
	return loggerWithoutCaller
}

// NewContext returns a background context carrying a sub-logger of the global
// logger with the given string fields, passed as key/value pairs. A trailing
// key without value is dropped.
func NewContext(kv ...string) context.Context {
	c := log.Logger.With()
	for i := 0; i+1 < len(kv); i += 2 {
		if len(kv[i+1]) == 0 {
			continue
		}
		c = c.Str(kv[i], kv[i+1])
	}
	l := c.Logger()
	return l.WithContext(context.Background())
}
