package main

import (
	"os"

	"github.com/tomz197/neonrush/internal/config"
	"github.com/tomz197/neonrush/internal/desktop"
	"github.com/tomz197/neonrush/internal/save"
	"github.com/tomz197/neonrush/internal/sim"
)

const defaultSavePath = "neonrush_save.txt"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.NewLogger(os.Stderr, "info", "neonrush").Warn("ignoring .env", "err", err)
	}
	logger := config.NewLogger(os.Stderr, config.GetEnv("NEONRUSH_LOG_LEVEL", "info"), "neonrush")

	savePath := config.GetEnv("NEONRUSH_SAVE", defaultSavePath)
	logger.Info("starting desktop game", "save", savePath)

	game := sim.New(sim.Options{
		Store:  save.NewFileStore(savePath),
		Logger: logger,
		Seed:   config.GetEnvUint64("NEONRUSH_SEED", 0),
	})
	if err := desktop.Run(game, logger); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
