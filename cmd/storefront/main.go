package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/admin"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

const breakerOpenFor = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Fatal("run migrations", zap.Error(err))
		}
	}

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open pgx pool", zap.Error(err))
	}
	defer pool.Close()

	var storage cart.Storage = cart.NewMemoryStorage()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		storage = cart.NewRedisStorage(rdb, cfg.CartTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, carts are kept in memory")
	}

	carts, err := cart.NewRegistry(storage, cfg.CartCacheSize, logger)
	if err != nil {
		logger.Fatal("create cart registry", zap.Error(err))
	}

	var publisher order.Publisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		conn, err := events.DialRabbit(cfg.RabbitURL)
		if err != nil {
			logger.Fatal("dial rabbitmq", zap.Error(err))
		}
		defer conn.Close()

		rp, err := events.NewRabbitPublisher(conn, events.NewSequenceRepository(database))
		if err != nil {
			logger.Fatal("create order publisher", zap.Error(err))
		}
		defer func() {
			if err := rp.Close(); err != nil {
				logger.Warn("publisher close", zap.Error(err))
			}
		}()
		publisher = rp
	} else {
		logger.Warn("RABBITMQ_URL not set, order events are not published")
	}

	feed := admin.NewFeed(logger, cfg.CORSAllowOrigins)
	defer feed.Close()

	orders := order.NewService(order.NewRepository(database), publisher, logger, feed)
	products := catalog.NewPostgresRepository(pool)

	if cfg.PaymentSecretKey == "" {
		logger.Warn("PAYMENT_SECRET_KEY not set, card payments will fail")
	}
	tokenizer := payment.NewBreakerTokenizer(
		payment.NewStripeClient(cfg.PaymentAPIURL, cfg.PaymentSecretKey, cfg.PaymentTimeout),
		breakerOpenFor,
		logger,
	)

	checkouts, err := checkout.NewManager(cfg.CartCacheSize, checkout.Dependencies{
		Tokenizer: tokenizer,
		Orders:    orders,
		Pricing:   cfg.Pricing,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("create checkout manager", zap.Error(err))
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:    logger,
		Cfg:       cfg,
		Carts:     carts,
		Checkouts: checkouts,
		Orders:    orders,
		Catalog:   catalog.NewService(products),
		Products:  products,
		Auth:      admin.NewAuthenticator(cfg.AdminPassword, cfg.AdminJWTSecret, cfg.AdminTokenTTL),
		Feed:      feed,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, "storefront"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.PaymentTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}
}
