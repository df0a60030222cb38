package main

import (
	"time"

	"log/slog"

	"github.com/okvist/text-reader-go/app"
	"github.com/okvist/text-reader-go/config"
	"github.com/okvist/text-reader-go/debug"
)

const configPath = "text-reader.json"

func main() {
	cfg, err := config.Load(configPath)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load", "path", configPath, "error", err)
	}
	if cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, logger)
	}

	application := app.NewApp("Text Reader", 900, 800, cfg, configPath, logger)
	application.Start()
}
