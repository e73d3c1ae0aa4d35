// Package gym собирает HTTP-сервис абонементов спортзала: хранилище,
// миграции, кеш каталога, сервисы и маршруты.
package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/gym-membership/internal/cache"
	"github.com/magabrotheeeer/gym-membership/internal/config"
	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/migrations"
	authservice "github.com/magabrotheeeer/gym-membership/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/gym-membership/internal/services/catalog"
	paymentservice "github.com/magabrotheeeer/gym-membership/internal/services/payment"
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type catalogCache interface {
	catalogservice.Cache
	Close() error
}

// App HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  catalogCache
}

// New подключается к хранилищу, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gym.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var catalogStore catalogCache = cache.Noop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		catalogStore = redisCache
	} else {
		logger.Info("redis address is empty, catalog cache disabled")
	}

	services := newServices(db, catalogStore, cfg, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services, RouteOptions{
		AuthLimiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		StaticDir:   cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      withCORS(router, cfg.AllowedOrigins),
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  catalogStore,
	}, nil
}

// store хранилище, общее для всех сервисов.
type store interface {
	authservice.ClientRepository
	catalogservice.Repository
	paymentservice.Repository
	Ping(ctx context.Context) error
}

// newServices собирает сервисы поверх хранилища. Срок жизни токена
// фиксирован и равен jwt.DefaultTTL.
func newServices(db store, catalogCache catalogservice.Cache, cfg *config.Config, logger *slog.Logger) Services {
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, jwt.DefaultTTL)
	return Services{
		Auth:    authservice.NewAuthService(db, jwtMaker, logger),
		Catalog: catalogservice.New(db, catalogCache, cfg.CatalogCacheTTL, logger),
		Payment: paymentservice.New(db, logger),
		Store:   db,
	}
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер
// и закрывает хранилище и кеш.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}

	a.close()
	return err
}

func (a *App) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
