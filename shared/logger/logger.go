package logger

import (
	"io"
	"lankaride/config"
	"lankaride/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	initLogger(os.Stdout, false, "")
}

// InitLoggerFor picks JSON lines tagged with the service name in production
// and the console writer elsewhere.
func InitLoggerFor(cfg *config.Config) {
	initLogger(os.Stdout, cfg.Server.Env == constant.ServerEnvProduction, cfg.App.Name)
	SetLogLevel(cfg)
}

func initLogger(out io.Writer, structured bool, service string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	if structured {
		log.Logger = zerolog.New(out).With().Timestamp().Str("service", service).Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
