package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Versifine/baguette/internal/config"
	"github.com/Versifine/baguette/internal/debug"
	"github.com/Versifine/baguette/internal/game"
	"github.com/Versifine/baguette/internal/input"
	"github.com/Versifine/baguette/internal/logger"
)

func main() {
	configPath := flag.String("config", "configs/baguette.yaml", "config file")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Uint64("frames", 0, "stop after this many frames (0 runs until interrupted)")
	scriptPath := flag.String("script", "", "input script for headless runs")
	watch := flag.Bool("watch", false, "re-apply tuning when the config file changes")
	console := flag.Bool("console", false, "drive a headless run from the terminal keyboard")
	flag.Parse()
	if *console {
		*headless = true
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	logOut := os.Stdout
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("Failed to open log file", "path", cfg.Logging.File, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOut,
	})

	if *headless && cfg.Audio.Enabled {
		slog.Info("Audio disabled in headless mode")
		cfg.Audio.Enabled = false
	}
	scene, err := game.New(cfg, nil)
	if err != nil {
		slog.Error("Failed to build scene", "error", err)
		os.Exit(1)
	}
	scene.FrameLimit = *frames

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		w, err := config.Watch(*configPath)
		if err != nil {
			slog.Error("Failed to watch config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		defer w.Close()
		go forwardReloads(ctx, w, scene)
	}

	if *headless {
		var src input.Source = idle{}
		switch {
		case *console:
			c := debug.NewConsole(scene.Player())
			go func() {
				if err := c.Start(ctx); err != nil {
					slog.Error("Console stopped", "error", err)
				}
				stop()
			}()
			src = c
		case *scriptPath != "":
			script, err := input.LoadScript(*scriptPath, 1/float64(cfg.Scene.FPS))
			if err != nil {
				slog.Error("Failed to load input script", "path", *scriptPath, "error", err)
				os.Exit(1)
			}
			src = script
		}
		if err := scene.Run(ctx, src, cfg.Scene.FPS); err != nil {
			slog.Error("Headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if engine := scene.Engine(); engine != nil {
		rate := engine.SampleRate()
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			slog.Error("Failed to open audio device", "error", err)
			os.Exit(1)
		}
		defer speaker.Close()
		speaker.Play(engine)
	}

	ebiten.SetWindowTitle("baguette")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetTPS(cfg.Scene.FPS)
	if err := ebiten.RunGame(newWindow(scene, cfg.Scene.FPS)); err != nil {
		slog.Error("Game exited with error", "error", err)
		os.Exit(1)
	}
}

func forwardReloads(ctx context.Context, w *config.Watcher, scene *game.Scene) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-w.Configs:
			if !ok {
				return
			}
			scene.ApplyTuning(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watch error", "error", err)
		}
	}
}

// idle stands still forever.
type idle struct{}

func (idle) Sample() input.Sample {
	return input.Sample{}
}
