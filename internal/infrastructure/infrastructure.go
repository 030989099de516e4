// Package infrastructure provides core service initialization for application
// startup. It assembles the shared dependencies (logging, database, storage,
// ledger client, decision locks) that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jmallard/countersign/internal/config"
	"github.com/jmallard/countersign/internal/ledger"
	"github.com/jmallard/countersign/pkg/database"
	"github.com/jmallard/countersign/pkg/lifecycle"
	"github.com/jmallard/countersign/pkg/locks"
	"github.com/jmallard/countersign/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Anchorer  ledger.Anchorer
	Locks     locks.Locker
}

// New creates an Infrastructure from the application configuration. It
// initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	locker, err := newLocker(cfg, lc, logger)
	if err != nil {
		return nil, fmt.Errorf("locks init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Anchorer:  ledger.NewClient(cfg.Ledger, logger),
		Locks:     locker,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

func newLocker(cfg *config.Config, lc *lifecycle.Coordinator, logger *slog.Logger) (locks.Locker, error) {
	switch cfg.Locks.Backend {
	case locks.BackendMemory:
		return locks.NewKeyed(), nil
	case locks.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Locks.RedisAddr,
			DB:   cfg.Locks.RedisDB,
		})

		lc.OnStartup(func() error {
			ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
			defer cancel()
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping failed: %w", err)
			}
			return nil
		})
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			client.Close()
		})

		return locks.NewRedis(client, cfg.Locks.Prefix, cfg.Locks.TTLDuration(), logger), nil
	default:
		return nil, fmt.Errorf("unknown locks backend: %s", cfg.Locks.Backend)
	}
}
