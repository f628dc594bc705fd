package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/analysis"
	"github.com/rickgao/kalshi-washcharts/internal/config"
	"github.com/rickgao/kalshi-washcharts/internal/render"
	"github.com/rickgao/kalshi-washcharts/internal/report"
	"github.com/rickgao/kalshi-washcharts/internal/source"
	"github.com/rickgao/kalshi-washcharts/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	// Set up structured logging; stdout carries the progress lines
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting washcharts",
		version.Attr(),
		"config", *configPath,
	)

	if err := run(*configPath, logger); err != nil {
		logger.Error("chart generation failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	// Load configuration
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.LoadAndValidate(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	charts, err := report.Select(report.Charts, cfg.Charts)
	if err != nil {
		return fmt.Errorf("select charts: %w", err)
	}
	since, err := cfg.Analysis.Start()
	if err != nil {
		return err
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Println("Generating charts...")
	fmt.Printf("Data path: %s\n", source.Describe(cfg.Data))
	fmt.Printf("Output path: %s\n", cfg.Output.Dir)

	// Load the dataset once
	src, err := source.Open(ctx, cfg.Data, logger)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer src.Close()

	loadStart := time.Now()
	trades, err := src.Trades(ctx, since)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	logger.Info("dataset loaded",
		"trades", len(trades),
		"since", since.Format(time.DateOnly),
		"duration", time.Since(loadStart),
	)

	renderer, err := render.New(cfg.Output, logger)
	if err != nil {
		return err
	}
	env, err := report.NewEnv(analysis.NewDataset(trades), renderer, cfg.Analysis)
	if err != nil {
		return err
	}

	if err := report.NewRunner(env, os.Stdout, logger).Run(ctx, charts); err != nil {
		return err
	}

	fmt.Println("✅ All charts generated!")
	return nil
}
