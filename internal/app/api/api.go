// Package api собирает HTTP API сервиса: хранилище, кэш, события, лимитеры,
// маршруты и необязательный gRPC health-сервер.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/oforha-backend/internal/cache"
	"github.com/magabrotheeeer/oforha-backend/internal/config"
	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
	"github.com/magabrotheeeer/oforha-backend/internal/docstore/mongo"
	"github.com/magabrotheeeer/oforha-backend/internal/docstore/postgres"
	"github.com/magabrotheeeer/oforha-backend/internal/events"
	grpchealth "github.com/magabrotheeeer/oforha-backend/internal/grpc/health"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/metrics"
	"github.com/magabrotheeeer/oforha-backend/internal/migrations"
	"github.com/magabrotheeeer/oforha-backend/internal/ratelimit"
	"github.com/magabrotheeeer/oforha-backend/internal/services/auth"
	"github.com/magabrotheeeer/oforha-backend/internal/services/form"
	"github.com/magabrotheeeer/oforha-backend/internal/services/subscriber"
	"github.com/magabrotheeeer/oforha-backend/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App — собранный процесс API.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	store   docstore.Gateway
	redis   *redis.Client
	amqp    *amqp.Connection
	health  *grpchealth.Server
	grpcLis net.Listener
}

// New подключает зависимости по cfg и собирает маршруты. Хранилище обязательно,
// redis и брокер необязательны: без них кэш и события отключаются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.api.New"

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{logger: logger, store: store}

	if cfg.RedisEnabled() {
		client, err := cache.Connect(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, cache and shared rate limit disabled", sl.Err(err))
		} else {
			app.redis = client
		}
	}

	m := metrics.New()
	publisher, err := app.openPublisher(ctx, cfg.RabbitMQ)
	if err != nil {
		logger.Warn("rabbitmq unavailable, events disabled", sl.Err(err))
		publisher = events.Noop{}
	}
	publisher = events.Instrument(publisher, m)

	var profileCache auth.Cache = cache.Noop{}
	if app.redis != nil {
		profileCache = cache.New(app.redis, "oforha:")
	}

	repo := repository.New(store)
	tokens := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	deps := Deps{
		Log:            logger,
		Auth:           auth.New(logger, repo, tokens, profileCache, cfg.RedisConnection.ProfileTTL, publisher),
		Subscribers:    subscriber.New(logger, repo, publisher),
		Forms:          form.New(logger, repo, publisher),
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if !cfg.RateLimit.Disabled {
		if deps.APILimiter, err = app.newLimiter("api", cfg.RateLimit.Default, cfg.RateLimit); err != nil {
			app.close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if deps.HealthLimiter, err = app.newLimiter("health", cfg.RateLimit.Health, cfg.RateLimit); err != nil {
			app.close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if cfg.GRPCServer.AddressGRPC != "" {
		lis, err := net.Listen("tcp", cfg.GRPCServer.AddressGRPC)
		if err != nil {
			app.close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.grpcLis = lis
		app.health = grpchealth.New(logger, store, cfg.GRPCServer.ProbeInterval)
	}

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      NewRouter(deps),
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

func openStore(ctx context.Context, cfg config.Storage) (docstore.Gateway, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(pg.DB, cfg.MigrationsPath); err != nil {
			_ = pg.Close(ctx)
			return nil, err
		}
		return pg, nil
	default:
		return mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Timeout)
	}
}

func (a *App) openPublisher(ctx context.Context, cfg config.RabbitMQ) (events.Publisher, error) {
	if cfg.URL == "" {
		return events.Noop{}, nil
	}

	conn, err := rabbitmq.Connect(ctx, cfg.URL, cfg.ConnectRetries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err = rabbitmq.DeclareExchange(ch, cfg.Exchange); err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.amqp = conn
	return events.NewAMQP(ch, cfg.Exchange), nil
}

// newLimiter выбирает хранилище счётчиков. Без доступного redis лимитер
// работает в памяти процесса.
func (a *App) newLimiter(name, rules string, cfg config.RateLimit) (ratelimit.Limiter, error) {
	parsed, err := ratelimit.ParseRules(rules)
	if err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", name, err)
	}
	if cfg.Storage == config.RateLimitRedis {
		if a.redis != nil {
			return ratelimit.NewRedis(a.redis, "ratelimit:"+name, parsed), nil
		}
		a.logger.Warn("redis rate limit storage requested without redis, using memory", slog.String("limiter", name))
	}
	mem, err := ratelimit.NewMemory(parsed, cfg.MaxKeys)
	if err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", name, err)
	}
	return mem, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает серверы
// и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()
	if a.health != nil {
		go func() {
			errCh <- a.health.Serve(ctx, a.grpcLis)
		}()
	}

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}
	cancel()

	timeoutCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	a.logger.Info("shutting down HTTP server gracefully")
	if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
		runErr = err
	}
	a.close(timeoutCtx)
	return runErr
}

func (a *App) close(ctx context.Context) {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.store.Close(ctx); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
