package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/payportal/infra"
	infra_cache "github.com/amirasaad/payportal/infra/cache"
	infra_eventbus "github.com/amirasaad/payportal/infra/eventbus"
	"github.com/amirasaad/payportal/infra/lockout"
	infra_provider "github.com/amirasaad/payportal/infra/provider"
	infra_repository "github.com/amirasaad/payportal/infra/repository"
	"github.com/amirasaad/payportal/pkg/app"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/eventbus"
	"github.com/amirasaad/payportal/pkg/provider"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	d := &app.Deps{}
	logger := setupLogger(cfg.Log)
	d.Logger = logger
	defer func() {
		if err != nil {
			_ = d.Close()
		}
	}()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		d.AddCloser(sqlDB.Close)
	}
	if cfg.DB.MigrateOnStart {
		if err = infra.RunMigrations(db, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize unit of work
	d.Uow, err = infra_repository.NewUoW(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize unit of work: %w", err)
	}

	// Redis backs the rate cache and the login lockout when configured.
	if cfg.Redis.URL != "" {
		client, redisErr := newRedisClient(cfg.Redis)
		if redisErr != nil {
			err = fmt.Errorf("failed to connect to Redis: %w", redisErr)
			return nil, err
		}
		d.AddCloser(client.Close)
		d.RateCache = infra_cache.NewRedisExchangeRateCache(
			client,
			cfg.Redis.KeyPrefix+cfg.ExchangeRateCache.Prefix,
			logger,
		)
		d.Lockout = lockout.NewRedisStore(client, cfg.Redis.KeyPrefix)
		logger.Info("Using Redis for exchange rate cache and login lockout")
	} else {
		d.RateCache = infra_cache.NewMemoryCache()
		d.Lockout = lockout.NewMemoryStore()
		logger.Warn("REDIS_URL not set; using in-memory cache and lockout store")
	}

	d.RateProvider = newRateProvider(cfg, logger)

	// Initialize event bus
	var bus eventbus.Bus
	switch cfg.EventBus.Driver {
	case "kafka":
		kafkaBus, kafkaErr := infra_eventbus.NewWithKafka(cfg.EventBus.Brokers, cfg.EventBus.Topic, logger)
		if kafkaErr != nil {
			err = fmt.Errorf("failed to create Kafka event bus: %w", kafkaErr)
			return nil, err
		}
		d.AddCloser(kafkaBus.Close)
		bus = kafkaBus
	case "memory", "":
		bus = infra_eventbus.NewWithMemory(logger)
	default:
		err = fmt.Errorf("unsupported event bus driver %q", cfg.EventBus.Driver)
		return nil, err
	}
	d.EventBus = bus

	return d, nil
}

func newRateProvider(cfg *config.App, logger *slog.Logger) provider.ExchangeRate {
	if cfg.ExchangeRateApi.ApiKey == "" {
		logger.Warn("No exchange rate API key configured; using built-in stub rates")
		return infra_provider.NewStubExchangeRateProvider()
	}
	return infra_provider.NewExchangeRateAPIProvider(cfg.ExchangeRateApi, logger)
}

func newRedisClient(cfg *config.Redis) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
