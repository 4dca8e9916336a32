package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marketcore/marketplace-api/internal/api"
	"github.com/marketcore/marketplace-api/internal/core/ports"
	"github.com/marketcore/marketplace-api/internal/core/service"
	"github.com/marketcore/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/marketcore/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/marketcore/marketplace-api/internal/infrastructure/db/redis"
	"github.com/marketcore/marketplace-api/internal/infrastructure/events"
	"github.com/marketcore/marketplace-api/internal/infrastructure/notify"
	"github.com/marketcore/marketplace-api/internal/infrastructure/queue"
	"github.com/marketcore/marketplace-api/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

// @title           Marketplace API
// @version         1.0
// @description     Mobile marketplace backend: catalog, cart, checkout, orders and user profiles.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(ctx context.Context) error
	}{authRepo, productRepo, orderRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Notification pipeline ---
	pushSender := notify.NewPushSender(notify.Config{
		URL:    cfg.Push.URL,
		APIKey: cfg.Push.APIKey,
	}, log)
	notificationService := service.NewNotificationService(userRepo, pushSender, log)
	dispatcher := queue.NewDispatcher(cfg.Workers.Notifications, notificationService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- Event streaming ---
	kafkaCfg := events.Config{
		Brokers:       cfg.Kafka.Brokers,
		OrdersTopic:   cfg.Kafka.OrdersTopic,
		PaymentsTopic: cfg.Kafka.PaymentsTopic,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}
	var publisher ports.OrderEventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(kafkaCfg, logger.Component("kafka-publisher"))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// --- Services ---
	authService := service.NewAuthService(authRepo, userRepo, redisdb.NewResetTokenStore(rdb), cfg.JWTSecret, cfg.TokenTTL, log)
	catalogService := service.NewCatalogService(productRepo, redisdb.NewProductCache(rdb), log)
	cartService := service.NewCartService(cartRepo, productRepo, service.Pricing{
		TaxRate:      cfg.Pricing.TaxRate,
		FlatShipping: cfg.Pricing.FlatShipping,
	}, log)
	orderService := service.NewOrderService(orderRepo, cartRepo, redisdb.NewCheckoutGuard(rdb), publisher, dispatcher, log)
	userService := service.NewUserService(userRepo, log)

	if cfg.Kafka.Enabled {
		consumer := events.NewPaymentConsumer(kafkaCfg, orderService, logger.Component("payments-consumer"))
		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("payment consumer stopped")
			}
		}()
		defer consumer.Close()
	}

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Catalog:   catalogService,
		Cart:      cartService,
		Orders:    orderService,
		Users:     userService,
		JWTSecret: cfg.JWTSecret,
		Mongo:     db,
		Redis:     rdb,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}
	log.Info().Msg("server exited")
}
