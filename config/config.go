package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"cardroom.com/server/game"
	"cardroom.com/server/util"
)

// NatsConfig enables the table-event feed.
type NatsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// ServerConfig drives server startup. Fields left empty fall back to
// environment variables and then to built-in defaults.
type ServerConfig struct {
	ListenAddr string     `yaml:"listen-addr"`
	LogLevel   string     `yaml:"log-level"`
	Nats       NatsConfig `yaml:"nats"`
	// Tables created at startup so a fresh deployment has something to
	// sit at.
	Tables []game.TableConfig `yaml:"tables"`
}

// Default returns the config used when no file is given.
func Default() *ServerConfig {
	cfg := &ServerConfig{
		ListenAddr: util.ServerEnvironment.GetListenAddr(),
		LogLevel:   util.ServerEnvironment.GetLogLevel(),
	}
	if url := util.ServerEnvironment.GetNatsURL(); url != "" {
		cfg.Nats = NatsConfig{Enabled: true, URL: url}
	}
	return cfg
}

// Load reads a YAML server config, filling unset fields from the
// environment defaults.
func Load(path string) (*ServerConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", path)
	}
	cfg := &ServerConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %s", path)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = util.ServerEnvironment.GetListenAddr()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = util.ServerEnvironment.GetLogLevel()
	}
	if !cfg.Nats.Enabled && util.ServerEnvironment.GetNatsURL() != "" {
		cfg.Nats = NatsConfig{Enabled: true, URL: util.ServerEnvironment.GetNatsURL()}
	}
	return cfg, nil
}
