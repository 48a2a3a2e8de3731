package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// SetupLogger points the global logger at stderr and, when a log file is
// configured, at a size-rotated file as well.
func SetupLogger(config *Config) {
	var out io.Writer = os.Stderr
	if config.LogFile != "" {
		out = zerolog.MultiLevelWriter(os.Stderr, &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}
	zerolog.SetGlobalLevel(config.LogLevel)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

type ConnLogger struct {
	zerolog zerolog.Logger
}

func GetConnLogger(ip string, connID string) ConnLogger {
	return ConnLogger{log.With().Str("ip", ip).Str("conn-id", connID).Logger()}
}

func (l ConnLogger) Connected(name string) {
	l.zerolog.Info().Str("name", name).Msg("Connected")
}

func (l ConnLogger) Disconnected() {
	l.zerolog.Info().Msg("Disconnected")
}

func (l ConnLogger) Rejected(err error) {
	l.zerolog.Info().Err(err).Msg("Rejected event")
}

func (l ConnLogger) Ignored(err error) {
	l.zerolog.Debug().Err(err).Msg("Ignored event")
}

func (l ConnLogger) MalformedEvent(err error) {
	l.zerolog.Debug().Err(err).Msg("Malformed event")
}

func (l ConnLogger) WatchingMatch(roomID string) {
	l.zerolog.Info().Str("room-id", roomID).Msg("Watching match")
}

func (l ConnLogger) StoppedWatching(roomID string) {
	l.zerolog.Info().Str("room-id", roomID).Msg("Stopped watching match")
}

func LogRoomCreated(roomID string, owner string) {
	log.Info().Str("room-id", roomID).Str("owner", owner).Msg("Room created")
}

func LogRoomRemoved(roomID string) {
	log.Info().Str("room-id", roomID).Msg("Room removed")
}

func LogMatchStarted(roomID string) {
	log.Info().Str("room-id", roomID).Msg("Match started")
}

func LogMatchPlaying(roomID string) {
	log.Info().Str("room-id", roomID).Msg("Match playing")
}

func LogMatchEnded(roomID string, message string) {
	log.Info().Str("room-id", roomID).Str("reason", message).Msg("Match ended")
}

func LogDroppedFrame(connID string, event string) {
	log.Warn().Str("conn-id", connID).Str("event", event).Msg("Send buffer full, dropping frame")
}

func LogEncodeError(event string, err error) {
	log.Error().Err(err).Str("event", event).Msg("Error while encoding event")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogStoppingServer() {
	log.Info().Msg("Stopping server")
}

func LogServerError(err error) {
	log.Error().Err(err).Msg("Server error")
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}
