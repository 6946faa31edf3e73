package main

import (
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/ricochet-arena/internal/config"
	"github.com/Garsondee/ricochet-arena/internal/game"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvPath+")")
	logLevel := flag.String("log-level", "", "override log level (debug, info, warn, error)")
	demo := flag.Bool("demo", false, "let the autopilot play")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	logger, err := config.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	runID := uuid.NewString()
	logger = logger.With("run", runID)

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g := game.New(cfg, logger, game.WithAutopilot(*demo), game.WithRunID(runID))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	logger.Info("exit", "tick", g.Sim().Tick())
}
