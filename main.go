package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/RaihanSardarUI/Twitter/internal"
	"github.com/RaihanSardarUI/Twitter/pkg/logger"
)

var log = logger.Get("Main")

func main() {
	configPath := flag.String("config", internal.DefaultConfigPath(), "path to the YAML configuration file")
	logLevel := flag.Int("log-level", logger.INFO.Level(), "minimum log level (0=verbose, 4=fatal)")
	flag.Parse()

	logger.SetMinLoggingLevel(*logLevel)

	config := internal.ServerConfig{}
	if _, err := os.Stat(*configPath); err == nil {
		if err := config.LoadFromFile(*configPath); err != nil {
			log.Emit(logger.FATAL, "%s\n", err.Error())
			os.Exit(1)
		}
	} else {
		if err := config.LoadFromEnv(); err != nil {
			log.Emit(logger.FATAL, "%s\n", err.Error())
			os.Exit(1)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := internal.New(config).Run(ctx); err != nil {
		log.Emit(logger.FATAL, "Server closed due to error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	log.Emit(logger.STOP, "Server shutdown complete\n")
}
