package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httptransport "github.com/simares/storefront/internal/api/http"
	"github.com/simares/storefront/internal/api/http/handlers"
	"github.com/simares/storefront/internal/cart"
	"github.com/simares/storefront/internal/commerce"
	"github.com/simares/storefront/internal/config"
	"github.com/simares/storefront/internal/identity"
	"github.com/simares/storefront/internal/observability"
	"github.com/simares/storefront/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Identity.Backend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("unable to reach redis", zap.Error(err))
		} else {
			logger.Info("connected to redis")
		}
	}

	metrics := observability.NewMetrics()

	sessions := httptransport.NewSessionManager(func(sid string) *handlers.ClientState {
		var backend identity.Backend
		switch cfg.Identity.Backend {
		case "redis":
			backend = identity.NewRedisBackend(redisClient, "storefront:session:"+sid, identity.State{SessionID: sid})
		default:
			// The sid cookie is the durable identity in gateway mode.
			backend = identity.NewMemoryBackend(identity.State{SessionID: sid})
		}
		store := identity.NewStore(backend, logger)
		client := commerce.NewClient(cfg.Commerce, store, logger)
		synchronizer := cart.NewSynchronizer(client, logger)
		coordinator := session.NewCoordinator(client, store, synchronizer, logger)
		return &handlers.ClientState{
			Identity: store,
			Commerce: client,
			Cart:     synchronizer,
			Session:  coordinator,
		}
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redisClient),
		Products:   handlers.NewProductsHandler(),
		Cart:       handlers.NewCartHandler(),
		Auth:       handlers.NewAuthHandler(),
		Wishlist:   handlers.NewWishlistHandler(),
		Newsletter: handlers.NewNewsletterHandler(),
		Sessions:   sessions,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
