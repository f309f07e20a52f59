package logx

import (
	"os"

	"github.com/rs/zerolog"
)

// ZerologLogger emits one structured event per progress call, suited to
// CI logs and log aggregation rather than interactive terminals.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger builds a ZerologLogger writing to stderr at level,
// parsed with zerolog.ParseLevel ("debug", "info", "warn", "error").
func NewZerologLogger(level string) *ZerologLogger {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(l).With().Timestamp().Logger()
	return &ZerologLogger{log: logger}
}

func (z *ZerologLogger) StartScript(name string) {
	z.log.Info().Str("script", name).Msg("script started")
}

func (z *ZerologLogger) FinishScript(name string, err error) {
	if err != nil {
		z.log.Error().Str("script", name).Err(err).Msg("script failed")
		return
	}
	z.log.Info().Str("script", name).Msg("script finished")
}

func (z *ZerologLogger) LogStart(line string, deferred bool) {
	z.log.Debug().Str("line", line).Bool("deferred", deferred).Msg("command started")
}

func (z *ZerologLogger) Log(line string, deferred bool) {
	z.log.Info().Bool("deferred", deferred).Msg(line)
}

func (z *ZerologLogger) LogWait() {
	z.log.Info().Msg("draining deferred processes")
}

func (z *ZerologLogger) LogSuccess(line string, deferred bool) {
	z.log.Info().Str("line", line).Bool("deferred", deferred).Msg("command succeeded")
}

func (z *ZerologLogger) LogFailure(line string, deferred bool, err error) {
	z.log.Error().Str("line", line).Bool("deferred", deferred).Err(err).Msg("command failed")
}

func (z *ZerologLogger) Warn(format string, args ...interface{}) {
	z.log.Warn().Msgf(format, args...)
}
