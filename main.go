package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"cardroom.com/server/config"
	"cardroom.com/server/game"
	"cardroom.com/server/logging"
	"cardroom.com/server/nats"
	"cardroom.com/server/rest"
	"cardroom.com/server/util"
)

var mainLogger = logging.GetZeroLogger("main", os.Stdout)

func main() {
	if err := run(); err != nil {
		mainLogger.Fatal().Msgf("Server exited with error: %v", err)
	}
}

func run() error {
	var configFile = flag.String("config", util.ServerEnvironment.GetConfigFile(), "server config file (yaml)")
	var listenAddr = flag.String("listen", "", "listen address, overrides config")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))

	var opts []game.ManagerOpt
	if cfg.Nats.Enabled {
		feed, err := nats.NewTableFeed(cfg.Nats.URL)
		if err != nil {
			return err
		}
		defer feed.Close()
		opts = append(opts,
			game.WithTableUpdateCallback(feed.TableUpdated),
			game.WithShowdownCallback(feed.ShowdownDone))
	}

	manager := game.NewManager(opts...)
	for _, tableConfig := range cfg.Tables {
		if _, err := manager.CreateTable(tableConfig); err != nil {
			mainLogger.Warn().Msgf("Skipping preconfigured table %s: %v", tableConfig.Name, err)
		}
	}

	return rest.NewServer(manager).Run(cfg.ListenAddr)
}
