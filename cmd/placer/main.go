package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"placer/internal/assets"
	"placer/internal/config"
	"placer/internal/game"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML config file")
	catalogPath := flag.String("catalog", "", "path to the YAML asset catalog (overrides the config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	chdirToExecutable(logger)

	if err := run(*configPath, *catalogPath, logger); err != nil {
		logger.Error("placer failed", "err", err)
		os.Exit(1)
	}
}

func chdirToExecutable(logger *slog.Logger) {
	execPath, err := os.Executable()
	if err != nil {
		logger.Warn("cannot locate executable", "err", err)
		return
	}
	chdirBeside(execPath, logger)
}

// chdirBeside moves to the directory holding execPath so deployed builds
// find config/ and assets/. "go run" binaries live in a temp go-build
// directory and are left alone. It reports whether the directory changed.
func chdirBeside(execPath string, logger *slog.Logger) bool {
	execDir := filepath.Dir(execPath)
	if strings.Contains(execDir, "go-build") {
		return false
	}
	if err := os.Chdir(execDir); err != nil {
		logger.Warn("cannot change to executable directory", "dir", execDir, "err", err)
		return false
	}
	return true
}

func run(configPath, catalogPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	list, err := assets.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	reg, err := assets.NewRegistry(list...)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "path", cfg.Catalog.Path, "assets", reg.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var updates <-chan []*assets.Asset
	if cfg.Catalog.Watch {
		updates, err = assets.Watch(ctx, cfg.Catalog.Path, logger)
		if err != nil {
			// The editor still works without hot reload.
			logger.Warn("catalog watch disabled", "err", err)
			updates = nil
		}
	}

	app, err := game.New(cfg, reg, updates, logger)
	if err != nil {
		return err
	}
	app.Run()
	return nil
}
