package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/inventory-orders/internal/config"
	"github.com/rogerio-castellano/inventory-orders/internal/db"
	api "github.com/rogerio-castellano/inventory-orders/internal/http"
	"github.com/rogerio-castellano/inventory-orders/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-orders/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-orders/internal/logger"
	"github.com/rogerio-castellano/inventory-orders/internal/metrics"
	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/redissvc"
	"github.com/rogerio-castellano/inventory-orders/internal/repo"
	"github.com/rogerio-castellano/inventory-orders/internal/service"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
	"go.uber.org/zap"
)

// openBackend returns the storage backend for the configured driver and a
// function releasing its connection.
func openBackend(ctx context.Context, cfg config.Config) (storage.Backend, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		redisService, err := redissvc.Connect(ctx, redissvc.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to Redis: %w", err)
		}
		return storage.NewRedisBackend(redisService.Rdb(), cfg.Redis.KeyPrefix), func() { _ = redisService.Close() }, nil
	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to database: %w", err)
		}
		backend := storage.NewPostgresBackend(database)
		if err := backend.EnsureSchema(ctx); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("could not create collections table: %w", err)
		}
		return backend, func() { _ = database.Close() }, nil
	default:
		return storage.NewFileBackend(cfg.Storage.Dir), func() {}, nil
	}
}

// @title Inventory Orders API
// @version 1.0
// @description REST API for managing products and placing orders against stock.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	l, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		l.Fatal("storage unavailable", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeBackend()

	products, err := repo.NewPersistentProductRepository(ctx, storage.NewCollection[models.Product](backend, cfg.Storage.Products))
	if err != nil {
		l.Fatal("could not load products", zap.Error(err))
	}
	orders, err := repo.NewPersistentOrderRepository(ctx, storage.NewCollection[models.Order](backend, cfg.Storage.Orders))
	if err != nil {
		l.Fatal("could not load orders", zap.Error(err))
	}

	m := metrics.New(products)
	orderService := service.NewOrderService(products, orders, repo.StockPolicy(cfg.Orders.StockPolicy),
		service.WithRecorder(m),
		service.WithLogger(l),
	)

	opts := api.RouterOptions{Logger: l, Metrics: m}
	if cfg.RateLimit.Enabled {
		opts.RateLimiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go opts.RateLimiter.StartVisitorCleanupLoop(ctx, time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handlers.NewServer(products, orderService, l), opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		l.Info("server running",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("stock_policy", cfg.Orders.StockPolicy),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("http server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	l.Info("shutdown signal received", zap.String("signal", s.String()))
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("http shutdown error", zap.Error(err))
	}
	l.Info("server stopped")
}
