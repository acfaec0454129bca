package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/gamehost/internal/cache/redis"
	"github.com/davidbz/gamehost/internal/config"
	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/http"
	"github.com/davidbz/gamehost/internal/http/middleware"
	"github.com/davidbz/gamehost/internal/observability"
	"github.com/davidbz/gamehost/internal/payment/registry"
	"github.com/davidbz/gamehost/internal/payment/sandbox"
	"github.com/davidbz/gamehost/internal/payment/stripe"
	"github.com/davidbz/gamehost/internal/rules"
)

const shutdownTimeout = 10 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Pricing
	if err := container.Provide(func(cfg *config.RulesConfig) (*domain.RuleTable, error) {
		return rules.Load(cfg.File)
	}); err != nil {
		log.Fatalf("Failed to provide rule table: %v", err)
	}
	if err := container.Provide(func(table *domain.RuleTable) (domain.PriceCalculator, error) {
		return domain.NewEngine(table)
	}); err != nil {
		log.Fatalf("Failed to provide pricing engine: %v", err)
	}

	// Payment gateways
	if err := container.Provide(provideGatewayRegistry); err != nil {
		log.Fatalf("Failed to provide gateway registry: %v", err)
	}
	if err := container.Provide(func(
		reg domain.GatewayRegistry,
		cfg *config.PaymentConfig,
	) (domain.PaymentGateway, error) {
		return reg.Get(context.Background(), cfg.Gateway)
	}); err != nil {
		log.Fatalf("Failed to provide payment gateway: %v", err)
	}

	// Redis
	if err := container.Provide(provideRedisClient); err != nil {
		log.Fatalf("Failed to provide redis client: %v", err)
	}
	if err := container.Provide(func(client *goredis.Client) domain.SessionStore {
		if client == nil {
			return nil
		}
		return redis.NewSessionStore(client)
	}); err != nil {
		log.Fatalf("Failed to provide session store: %v", err)
	}
	if err := container.Provide(func(client *goredis.Client) middleware.Limiter {
		return redis.NewSlidingWindowLimiter(client, "gamehost:ratelimit:")
	}); err != nil {
		log.Fatalf("Failed to provide rate limiter: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(
		calculator domain.PriceCalculator,
		gateway domain.PaymentGateway,
		store domain.SessionStore,
		events domain.EventPublisher,
		cfg *config.RedisConfig,
	) *domain.CheckoutService {
		service := domain.NewCheckoutService(calculator, gateway, store, events)
		service.SetSessionTTL(time.Duration(cfg.SessionTTL) * time.Second)
		return service
	}); err != nil {
		log.Fatalf("Failed to provide checkout service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	if err := container.Invoke(func() { observability.RegisterMetrics(nil) }); err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	return container
}

func provideGatewayRegistry(cfg *config.Config, logger *zap.Logger) (domain.GatewayRegistry, error) {
	ctx := context.Background()
	reg := registry.NewRegistry()

	if err := reg.Register(ctx, sandbox.NewGateway(cfg.Payment.SandboxPageURL)); err != nil {
		return nil, fmt.Errorf("failed to register sandbox gateway: %w", err)
	}

	if cfg.Stripe.SecretKey == "" {
		logger.Info("stripe gateway not configured")
		return reg, nil
	}

	stripeGateway, err := stripe.NewGateway(cfg.Stripe)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe gateway: %w", err)
	}
	if err := reg.Register(ctx, stripeGateway); err != nil {
		return nil, fmt.Errorf("failed to register stripe gateway: %w", err)
	}

	if !cfg.Stripe.IsTestMode() {
		logger.Warn("stripe gateway is using a live key")
	}

	return reg, nil
}

func provideRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*goredis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("redis not configured, session de-duplication disabled")
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
