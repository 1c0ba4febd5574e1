package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/actas/server/actas/users"
	"codeberg.org/actas/server/api/rest/health"
	"codeberg.org/actas/server/internal/auth"
	"codeberg.org/actas/server/internal/config"
	"codeberg.org/actas/server/internal/events"
	"codeberg.org/actas/server/internal/logger"
	"codeberg.org/actas/server/internal/ratelimit"
	"codeberg.org/actas/server/internal/session"
	"codeberg.org/actas/server/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	rdb, err := connectRedis(ctx, cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	limiter, err := ratelimit.New(cfg.AuthRateLimit, rdb)
	if err != nil {
		rdb.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	provider := auth.NewProvider(cfg.IdentityProvider, nil)
	auth.InitializeProviders(cfg, provider)

	emitter := events.Multi{
		events.NewLogEmitter(logger.Default()),
		events.NewRedisEmitter(rdb, cfg.EventsChannel),
	}

	sessions := session.NewStore(
		session.NewRedisBackend(rdb),
		cfg.SessionLifetime,
		cfg.SecureCookies(),
		[]byte(cfg.SessionSecret),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := NewRouter(Dependencies{
		Sessions:  sessions,
		Users:     users.NewRepository(db.Pool()),
		Exchanger: provider,
		Events:    emitter,
		AuthLimit: ratelimit.Middleware(limiter),
		HealthChecks: map[string]health.Check{
			"database": db.Ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},
		CORSOrigins: cfg.CORSOrigins,
	})

	logger.Info("server initialized",
		"environment", cfg.Environment,
		"session_lifetime", cfg.SessionLifetime,
		"auth_rate_limit", cfg.AuthRateLimit,
		"events_channel", cfg.EventsChannel,
	)

	return &Server{
		db:     db,
		redis:  rdb,
		config: cfg,
		router: router,
	}, nil
}

func connectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// releases connections held by the server
func (s *Server) Close() {
	if err := s.redis.Close(); err != nil {
		logger.Warn("failed to close redis client", "error", err)
	}

	s.db.Close()
}
