package util

import (
	"os"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type serverEnvironment struct {
	ListenAddr string
	NatsURL    string
	LogLevel   string
	ConfigFile string
}

// ServerEnvironment is a helper object for accessing environment
// variables. Every accessor falls back to a sensible default so a bare
// `go run .` works.
var ServerEnvironment = &serverEnvironment{
	ListenAddr: "LISTEN_ADDR",
	NatsURL:    "NATS_URL",
	LogLevel:   "LOG_LEVEL",
	ConfigFile: "CONFIG_FILE",
}

func (s *serverEnvironment) GetListenAddr() string {
	addr := os.Getenv(s.ListenAddr)
	if addr == "" {
		return ":3001"
	}
	return addr
}

func (s *serverEnvironment) GetNatsURL() string {
	url := os.Getenv(s.NatsURL)
	if url == "" {
		return ""
	}
	return url
}

func (s *serverEnvironment) GetLogLevel() string {
	level := os.Getenv(s.LogLevel)
	if level == "" {
		return "info"
	}
	return level
}

func (s *serverEnvironment) GetConfigFile() string {
	file := os.Getenv(s.ConfigFile)
	if file == "" {
		environmentLogger.Debug().Msgf("%s is not defined, using defaults", s.ConfigFile)
	}
	return file
}
