package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/credit-ledger/internal/cache"
	"github.com/segyhp/credit-ledger/internal/config"
	"github.com/segyhp/credit-ledger/internal/repository"
	"github.com/segyhp/credit-ledger/internal/service"
)

// App holds the dependencies shared by the server and the scheduler.
type App struct {
	DB      *sqlx.DB
	Store   *repository.Store
	Redis   *redis.Client
	Service *service.CreditService
}

// New opens the database (migrating it when configured), connects Redis when
// an address is set and builds the credit service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var (
		redisClient *redis.Client
		totals      cache.TotalsCache = cache.Noop{}
	)
	if cfg.RedisEnabled() {
		redisClient, err = cache.OpenRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		totals = cache.NewRedisTotalsCache(redisClient, cfg.GetTotalsTTL())
	} else {
		logger.Info("redis not configured, dashboard totals will not be cached")
	}

	store := repository.NewStore(db)
	svc := service.NewCreditService(store.Repositories(), store, totals, cfg, logger)

	return &App{
		DB:      db,
		Store:   store,
		Redis:   redisClient,
		Service: svc,
	}, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	_ = a.DB.Close()
}

// OpenDB connects with the configured driver and pool limits.
func OpenDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if cfg.Database.Driver == "sqlite3" {
		// SQLite allows a single writer, and an in-memory database lives
		// only as long as its one connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
