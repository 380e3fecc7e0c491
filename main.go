package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/pip-camera-go/app"
	"github.com/soocke/pip-camera-go/config"
)

func main() {
	cfgPath := flag.String("config", "pip-camera.json", "path to the JSON config file")
	debug := flag.Bool("debug", false, "enable debug logging and runtime metrics")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("Config load failed, using defaults", slog.Any("error", err))
	}

	application := app.NewApp("PiP Camera", cfg, *cfgPath, logger)
	application.Start()
}
