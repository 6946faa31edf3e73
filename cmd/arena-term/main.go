package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/Garsondee/ricochet-arena/internal/arena"
	"github.com/Garsondee/ricochet-arena/internal/config"
	"github.com/Garsondee/ricochet-arena/internal/term"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvPath+")")
	logFile := flag.String("log-file", "", "write logs here; logs are discarded otherwise")
	demo := flag.Bool("demo", false, "let the autopilot play")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// The terminal owns stdout and stderr while the game runs.
	out, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if *logFile != "" {
		out, err = os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	logger, err := config.NewLogger(out, cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	logger = logger.With("run", uuid.NewString())

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorDefault).
		Foreground(tcell.ColorWhite))
	screen.EnableMouse()
	screen.Clear()

	sim := arena.New(cfg.Arena, nil, arena.WithLogger(logger))
	var pilot arena.InputSource
	if *demo {
		pilot = arena.NewAutopilot()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.New(screen, sim, logger, pilot).Run(ctx)
	stop()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	logger.Info("exit", "tick", sim.Tick(), "level", sim.LevelName())
}
