package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"LocalSketch/internal/config"
	"LocalSketch/internal/ui"
)

// LogLevelEnv selects the log level ("debug", "info", "warn", "error").
const LogLevelEnv = "LOCALSKETCH_LOG"

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(os.Getenv(LogLevelEnv)))); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	logger := newLogger()
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	path := config.Path()
	conf, err := config.Load(path)
	if err != nil {
		logger.Error("using default config", "err", err)
	}

	logger.Info("starting LocalSketch", "config", path, "width", conf.Width, "height", conf.Height)
	if err := ui.RunApp(conf, path, logger); err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
