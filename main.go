package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mockzork/zork"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	cfg, err := LoadConfig(opts.configPath, opts.overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mockzork: %v\n", err)
		os.Exit(1)
	}

	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mockzork: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func loadWorld(cfg GameConfig) (*zork.World, error) {
	if cfg.WorldFile == "" {
		return zork.DefaultWorld(), nil
	}
	return zork.LoadWorldFile(cfg.WorldFile)
}

func run(cfg Config, logger *zap.Logger) error {
	world, err := loadWorld(cfg.Game)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("mode", cfg.Server.Mode),
		zap.String("world", cfg.Game.WorldFile),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Server.Mode {
	case "mcp-stdio":
		return RunMCPStdio(ctx, NewMCPServer(world, logger))
	case "mcp-http":
		return RunMCPHTTP(ctx, NewMCPServer(world, logger), cfg.MCP)
	case "tui":
		return runTUI(zork.NewGame(world, zork.WithLogger(logger)), logger)
	default:
		con := newConsole(os.Stdout, cfg.Game.WrapWidth)
		in := newLineReader(con, os.Stdin, cfg.Server.Mode == "headless")
		return runConsole(zork.NewGame(world, zork.WithLogger(logger)), in, con, logger)
	}
}
