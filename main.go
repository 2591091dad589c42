package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/observers"
	"github.com/beautique-shop/storefront/internal/cart/repo"
	"github.com/beautique-shop/storefront/internal/cart/store"
	"github.com/beautique-shop/storefront/internal/cart/tools"
	"github.com/beautique-shop/storefront/internal/cart/widget"
	"github.com/beautique-shop/storefront/internal/catalog"
	"github.com/beautique-shop/storefront/internal/core"
	"github.com/beautique-shop/storefront/internal/httpapi"
	logx "github.com/beautique-shop/storefront/pkg/logger"
	pkgredis "github.com/beautique-shop/storefront/pkg/redis"
	pkgsqlite "github.com/beautique-shop/storefront/pkg/sqlite"
	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// AppConfig defines all configurable parameters of the storefront server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment core.Environment `default:"development"`
	LogLevel    string           `split_words:"true"`

	HTTP httpapi.Config

	// Infrastructure
	StorageBackend string `split_words:"true" default:"memory"`
	Redis          pkgredis.Config
	SQLite         pkgsqlite.Config

	Cart model.CartConfig
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logx.Fatal().Err(err).Msg("storefront stopped")
	}
}

func run(ctx context.Context, cfg AppConfig) error {
	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	confirm := model.ContextConfirmer{}
	cart := store.New(storage, store.WithConfirmer(confirm), store.WithConfig(cfg.Cart))
	detach := observers.Attach(cart, observers.NewLogObserver(logx.Component("cart")))
	defer detach()
	cart.Hydrate(ctx)

	viewLog := logx.Component("widget")
	w := widget.New(cart, widget.RenderFunc(func(v widget.View) {
		viewLog.Debug().Bool("open", v.Open).Str("counter", v.CounterLabel).Str("subtotal", v.Subtotal).Msg("cart view rendered")
	}))
	defer w.Stop()

	products := catalog.New(confirm, catalog.SeedProducts()...)

	api := httpapi.New(httpapi.Deps{
		Widget:  w,
		Catalog: products,
		Tools: tools.NewRegistry(tools.Deps{
			Catalog:   products,
			Widget:    w,
			Callbacks: []einocb.Handler{tools.NewToolCallbacks(logx.Component("tools"))},
		}),
		Logger: logx.Component("http"),
	})
	return api.ListenAndServe(ctx, cfg.HTTP)
}

// openStorage connects the configured cart storage backend.
func openStorage(ctx context.Context, cfg AppConfig) (model.Storage, func(), error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.StorageBackend)); backend {
	case BackendMemory, "":
		logx.Info().Str("backend", BackendMemory).Msg("cart storage ready")
		return repo.NewMemoryStorage(), func() {}, nil

	case BackendRedis:
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("initialise redis client: %w", err)
		}
		logx.Info().Str("backend", backend).Str("prefix", cfg.Redis.KeyPrefix).Dur("ttl", cfg.Redis.TTL).Msg("cart storage ready")
		return repo.NewRedisStorage(rdb, cfg.Redis.KeyPrefix, cfg.Redis.TTL), func() { _ = rdb.Close() }, nil

	case BackendSQLite:
		db, err := cfg.SQLite.Open(ctx)
		if err != nil {
			return nil, nil, err
		}
		storage, err := repo.NewSQLiteStorage(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logx.Info().Str("backend", backend).Str("path", cfg.SQLite.Path).Msg("cart storage ready")
		return storage, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
