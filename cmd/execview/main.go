package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/execview/internal/cli"
	"github.com/alexanderramin/execview/internal/config"
	"github.com/alexanderramin/execview/internal/facade"
	"github.com/alexanderramin/execview/internal/generation"
	"github.com/alexanderramin/execview/internal/service"
	"github.com/alexanderramin/execview/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.Message(err))
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logger := cfg.Logger(os.Stderr)
	ctx := context.Background()

	st := store.New(cfg.DBPath, store.WithLogger(logger))
	if err := st.Open(ctx); err != nil {
		logger.Error("opening store", "path", cfg.DBPath, "error", err)
		return err
	}
	defer st.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := prometheus.NewRegistry()
	remote := facade.New(st, cfg.Facade(),
		facade.WithRand(generation.NewSeededRNG(seed+1)),
		facade.WithMetrics(facade.NewMetrics(registry)),
		facade.WithLogger(logger),
	)
	synth := generation.NewSynthesizer(generation.NewSeededRNG(seed), time.Now)

	var observer service.UseCaseObserver
	if cfg.LogUseCases {
		observer = service.NewSlogUseCaseObserver(logger)
	}

	app := &cli.App{
		Dashboard:   service.NewDashboardService(st, remote, synth, time.Now, observer),
		Preferences: service.NewPreferenceService(st.Preferences(), remote, observer),
		Now:         time.Now,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	err := cli.NewRootCmd(app).ExecuteContext(ctx)
	if err != nil {
		logger.Debug("command failed", "error", err)
	}
	if rerr := facade.Report(ctx, logger, registry); rerr != nil {
		logger.Warn("reporting facade metrics", "error", rerr)
	}
	return err
}
