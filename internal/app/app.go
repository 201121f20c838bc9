// Package app wires the PlanA client together: configuration, logging, the
// HTTP client, the Redis-backed push listener, and the interactive terminal
// front-end that drives the seat view.
package app

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/jaeyoon222/PlanA/internal/api"
	"github.com/jaeyoon222/PlanA/internal/auth"
	"github.com/jaeyoon222/PlanA/internal/payment"
	appvalidator "github.com/jaeyoon222/PlanA/internal/validator"
)

type Config struct {
	Env          string
	BaseURL      string
	RedisURL     string
	PollInterval time.Duration
	HourlyRate   int64

	// RefreshWithCookie switches the token refresh to the cookie-based
	// deployment variant.
	RefreshWithCookie bool
}

type Application struct {
	config    Config
	logger    *slog.Logger
	tokens    *auth.TokenStore
	client    *api.Client
	redis     *redis.Client
	validator *validator.Validate
	checkout  *payment.Checkout

	// sessionMu guards session against the signal-handler goroutine.
	sessionMu sync.Mutex
	session   *session
}

func Run() error {
	// A missing .env is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	var cfg Config

	flag.StringVar(&cfg.Env, "env", envOr("PLANA_ENV", "dev"), "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.BaseURL, "api-url", envOr("PLANA_API_URL", "http://localhost:8080"), "Backend base URL")
	flag.StringVar(&cfg.RedisURL, "redis-url", envOr("PLANA_REDIS_URL", "localhost:6379"), "Redis address for seat events")
	flag.DurationVar(&cfg.PollInterval, "poll-interval", 15*time.Second, "Seat snapshot polling interval")
	flag.Int64Var(&cfg.HourlyRate, "hourly-rate", payment.DefaultHourlyRate, "Price per seat-hour in won")
	flag.BoolVar(&cfg.RefreshWithCookie, "refresh-cookie", envOr("PLANA_REFRESH_USE_COOKIE", "") == "true",
		"Use cookie-based token refresh")

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tokens := auth.NewTokenStore()

	var clientOpts []api.Option
	if cfg.RefreshWithCookie {
		clientOpts = append(clientOpts, api.WithCookieRefresh())
	}
	client := api.New(cfg.BaseURL, tokens, logger, clientOpts...)

	rdb, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	app := &Application{
		config:    cfg,
		logger:    logger,
		tokens:    tokens,
		client:    client,
		redis:     rdb,
		validator: appvalidator.NewValidator(),
		checkout: payment.NewCheckout(
			client, client, payment.NewMockProvider(), logger,
			payment.WithHourlyRate(cfg.HourlyRate),
		),
	}

	return app.run()
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisURL, err)
	}

	return rdb, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
