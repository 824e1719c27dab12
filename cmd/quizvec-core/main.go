package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/brightpath-labs/quizvec-core/internal/adapters/driven/ai"
	"github.com/brightpath-labs/quizvec-core/internal/adapters/driven/cache"
	"github.com/brightpath-labs/quizvec-core/internal/adapters/driven/postgres"
	"github.com/brightpath-labs/quizvec-core/internal/adapters/driven/searchstore"
	"github.com/brightpath-labs/quizvec-core/internal/config"
	"github.com/brightpath-labs/quizvec-core/internal/core/ports/driven"
	"github.com/brightpath-labs/quizvec-core/internal/core/services"
	"github.com/brightpath-labs/quizvec-core/internal/runtime"
)

var version = "dev"

// main wires the adapters per configuration and runs a connectivity check
// against the embedding provider and the document store. The services
// themselves are library surface consumed by the API gateway; this binary
// exists so operators can validate a deployment's configuration.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	configPath := os.Getenv("CONFIG_FILE")
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	logger.Info("quizvec-core starting", "version", version, "config", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	embeddingCache, closeCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up document store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	settings := cfg.EmbeddingSettings()
	if err := settings.Validate(); err != nil {
		logger.Error("invalid embedding settings", "error", err)
		os.Exit(1)
	}

	runtimeServices := runtime.NewServices(settings)
	defer runtimeServices.Close()

	factory := ai.NewFactory()
	provider, err := factory.Create(settings)
	if err != nil {
		logger.Error("failed to create embedding provider", "error", err)
		os.Exit(1)
	}
	runtimeServices.SetEmbeddingProvider(provider, settings)

	embedder := services.NewEmbeddingService(runtimeServices, embeddingCache, factory, logger)

	checkCtx, checkCancel := context.WithTimeout(ctx, 30*time.Second)
	defer checkCancel()

	ok := true
	if err := embedder.HealthCheck(checkCtx); err != nil {
		logger.Error("embedding provider unreachable", "provider", settings.Provider, "error", err)
		ok = false
	} else {
		logger.Info("embedding provider healthy", "provider", settings.Provider, "model", settings.Model)
	}

	if err := store.HealthCheck(checkCtx); err != nil {
		logger.Error("document store unreachable", "kind", cfg.Store.Kind, "error", err)
		ok = false
	} else {
		logger.Info("document store healthy", "kind", cfg.Store.Kind)
	}

	if !ok {
		os.Exit(1)
	}
	logger.Info("all checks passed")
}

// buildCache selects the Redis cache when a URL is configured, falling back
// to the in-process cache
func buildCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.EmbeddingCache, func(), error) {
	if cfg.Cache.RedisURL == "" {
		logger.Info("using in-memory embedding cache")
		return cache.NewMemory(cfg.CacheSettings(), nil), func() {}, nil
	}

	opts, err := goredis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}

	logger.Info("using redis embedding cache")
	return cache.NewRedis(client, cfg.CacheSettings()), func() { client.Close() }, nil
}

// buildStore selects the document store adapter by configuration
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.DocumentStore, func(), error) {
	switch cfg.Store.Kind {
	case config.StoreKindPostgres:
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.Store.URL))
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("using postgres document store")
		return postgres.NewDocumentStore(db), func() { db.Close() }, nil
	default:
		logger.Info("using http document store", "url", cfg.Store.URL)
		return searchstore.NewClient(searchstore.DefaultConfig(cfg.Store.URL)), func() {}, nil
	}
}
