package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	_ "bookorders/docs"
	"bookorders/pkg/config"
	"bookorders/pkg/logger"
	"bookorders/pkg/order"
	"bookorders/pkg/order/dynamo"
	"bookorders/pkg/order/file"
	"bookorders/pkg/order/memory"
	"bookorders/pkg/order/postgres"
	orderredis "bookorders/pkg/order/redis"
	"bookorders/pkg/otel"
)

// @title Book Orders API
// @version 1.0
// @description Records and lists book purchase orders.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logger.LevelInfo
	}
	log := logger.New(os.Stdout, level, "bookorders", otel.GetTraceID)
	defer log.Sync()

	if err := run(context.Background(), log, cfg); err != nil {
		log.Error(context.Background(), "startup", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, cfg *config.Config) error {
	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "bookorders",
		Host:        cfg.Otel.Host,
		Probability: cfg.Otel.Probability,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())
	tracer := tp.Tracer("bookorders")

	backend, closeBackend, err := openBackend(ctx, log, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeBackend()

	locale, err := language.Parse(cfg.CollationLocale)
	if err != nil {
		return fmt.Errorf("collation locale: %w", err)
	}

	store := order.NewStore(backend, cfg.Storage.Key, log)
	orders := store.Load(ctx)
	log.Info(ctx, "orders loaded", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key, "orders", len(orders))

	mgr := order.NewManager(store, log, order.WithLocale(locale))
	h, err := newHandlers(mgr, log, tracer)
	if err != nil {
		return fmt.Errorf("parse page template: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.HTTPAddr, "tls", cfg.TLSCertFile != "")
		if cfg.TLSCertFile != "" {
			serverErrors <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		serverErrors <- srv.ListenAndServe()
	}()

	shutdownSig := make(chan os.Signal, 1)
	signal.Notify(shutdownSig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdownSig:
		log.Info(ctx, "shutdown", "signal", sig.String())
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

// openBackend builds the configured persistence backend and a func that
// releases it.
func openBackend(ctx context.Context, log *logger.Logger, cfg config.Storage) (order.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), func() {}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis ping", "addr", cfg.RedisAddr, "error", err)
		}
		return orderredis.New(client, cfg.RedisPrefix), func() { client.Close() }, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		b := postgres.New(db)
		if err := b.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return b, func() { db.Close() }, nil

	case config.BackendDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, nil, err
		}
		return dynamo.New(client, cfg.DynamoTable), func() {}, nil

	default:
		b, err := file.New(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return b, func() {}, nil
	}
}
