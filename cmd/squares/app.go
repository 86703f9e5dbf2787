package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fystack/squares-pool/internal/config"
	"github.com/fystack/squares-pool/internal/engine"
	"github.com/fystack/squares-pool/internal/events"
	"github.com/fystack/squares-pool/internal/kvstore"
	"github.com/fystack/squares-pool/internal/logger"
	"github.com/fystack/squares-pool/internal/payout"
	"github.com/fystack/squares-pool/internal/reconcile"
)

// app owns everything opened for one command run.
type app struct {
	cfg     *config.Config
	engine  *engine.Engine
	store   kvstore.KVStore
	emitter *events.Emitter
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newApp(flags *rootFlags) (*app, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := logger.ParseLevel(cfg.Engine.LogLevel)
	if flags.debug {
		level = slog.LevelDebug
	}
	// logs go to stderr so stdout stays machine readable
	logger.Init(&logger.Options{
		Level:      level,
		Writer:     os.Stderr,
		TimeFormat: time.RFC3339,
	})

	if err := payout.ValidateAll(); err != nil {
		return nil, fmt.Errorf("payout schedules: %w", err)
	}

	a := &app{cfg: cfg}
	switch cfg.Engine.Storage.Type {
	case config.StorageBadger:
		a.store, err = kvstore.NewBadgerStore(cfg.Engine.Storage.Directory)
		if err != nil {
			return nil, err
		}
	default:
		a.store = kvstore.NewMemoryStore()
	}

	sink := events.Discard
	if cfg.Engine.NATS.Enabled {
		a.emitter, err = events.NewEmitter(cfg.Engine.NATS.URL, cfg.Engine.NATS.SubjectPrefix)
		if err != nil {
			a.Close()
			return nil, err
		}
		sink = a.emitter
	}

	pending := reconcile.NewPendingStore(a.store,
		reconcile.WithExpiry(cfg.Engine.Pending.Expiry),
		reconcile.WithKeyPrefix(cfg.Engine.Pending.KeyPrefix),
		reconcile.WithLogger(logger.L()),
	)
	a.engine, err = engine.New(engine.Options{
		Pending: pending,
		Sink:    sink,
		Logger:  logger.L(),
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	if flags.league == "" {
		flags.league = cfg.Engine.DefaultLeague
	}
	slog.Debug("Engine ready",
		"storage", cfg.Engine.Storage.Type,
		"nats", cfg.Engine.NATS.Enabled,
		"pending_expiry", cfg.Engine.Pending.Expiry,
	)
	return a, nil
}

func (a *app) Close() {
	if a.emitter != nil {
		a.emitter.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("Close store failed", "err", err)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
