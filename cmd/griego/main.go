package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/andresmr/griego/config"
	"github.com/andresmr/griego/internal/adapters/render"
	"github.com/andresmr/griego/internal/adapters/storage"
	"github.com/andresmr/griego/internal/pricer"
	"github.com/andresmr/griego/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to scenario file")
	noGreeks := flag.Bool("no-greeks", false, "skip Greeks calculation")
	table := flag.Bool("table", false, "print full table (default: compact 1-line)")
	format := flag.String("format", "", "output format: text|json (overrides config)")
	sweep := flag.String("sweep", "", "spot sweep as from:to:points (e.g. 80:120:9)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *table {
		cfg.Output.Table = true
	}
	if *noGreeks {
		cfg.Output.Greeks = false
	}
	setupLogger(cfg.Log)

	contract, err := cfg.Contract()
	if err != nil {
		slog.Error("invalid scenario", "err", err)
		os.Exit(1)
	}

	slog.Info("griego starting",
		"config", *configPath,
		"style", contract.Style,
		"type", contract.Type,
		"greeks", cfg.Output.Greeks,
	)

	var store ports.Storage
	if cfg.Storage.DSN != "" {
		s, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	presenter := render.NewConsole(render.Format(cfg.Output.Format), cfg.Output.Table)
	p := pricer.New(store, presenter)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	req := pricer.Request{
		Contract:   contract,
		Sim:        cfg.SimSpec(),
		WithGreeks: cfg.Output.Greeks,
	}

	if *sweep != "" {
		runSweep(ctx, p, presenter, req, *sweep)
		return
	}

	if _, err := p.Run(ctx, req); err != nil {
		slog.Error("pricing failed", "err", err)
		os.Exit(1)
	}
}

// runSweep ejecuta la curva de sensibilidad precio/delta vs spot.
func runSweep(ctx context.Context, p *pricer.Pricer, presenter ports.Presenter, req pricer.Request, spec string) {
	from, to, n, err := parseSweep(spec)
	if err != nil {
		slog.Error("invalid -sweep", "err", err, "value", spec)
		os.Exit(1)
	}

	points, err := p.SweepSpot(ctx, req, from, to, n)
	if err != nil {
		slog.Error("sweep failed", "err", err)
		os.Exit(1)
	}

	if err := presenter.PresentSweep(ctx, points); err != nil {
		slog.Warn("presenter error", "err", err)
	}
}

// parseSweep interpreta "from:to:points".
func parseSweep(spec string) (from, to float64, n int, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want from:to:points, got %q", spec)
	}
	if from, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("bad from %q: %w", parts[0], err)
	}
	if to, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("bad to %q: %w", parts[1], err)
	}
	if n, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, fmt.Errorf("bad points %q: %w", parts[2], err)
	}
	return from, to, n, nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
