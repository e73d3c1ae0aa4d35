// Package catalog отдаёт справочники: тарифные планы и расписание занятий.
// Справочники меняются редко, поэтому читаются через кеш.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-membership/internal/lib/sl"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

const (
	membershipsKey = "catalog:memberships"
	classesKey     = "catalog:classes"
)

// Repository определяет чтение каталога из хранилища.
type Repository interface {
	ListMemberships(ctx context.Context) ([]models.Membership, error)
	ListClasses(ctx context.Context) ([]models.GymClass, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service читает каталог, используя кеш или репозиторий.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// Memberships возвращает список тарифных планов.
func (s *Service) Memberships(ctx context.Context) ([]models.Membership, error) {
	const op = "services.catalog.Memberships"
	return cached(ctx, s, membershipsKey, op, s.repo.ListMemberships)
}

// Classes возвращает расписание занятий.
func (s *Service) Classes(ctx context.Context) ([]models.GymClass, error) {
	const op = "services.catalog.Classes"
	return cached(ctx, s, classesKey, op, s.repo.ListClasses)
}

// cached читает key из кеша, при промахе или ошибке кеша идёт в load
// и кладёт результат обратно. Ошибки кеша только логируются.
func cached[T any](ctx context.Context, s *Service, key, op string, load func(context.Context) ([]T, error)) ([]T, error) {
	log := s.log.With(slog.String("op", op), slog.String("key", key))

	var result []T
	found, err := s.cache.Get(ctx, key, &result)
	if err != nil {
		log.Warn("failed to read from cache", sl.Err(err))
	}
	if found && err == nil {
		return result, nil
	}

	result, err = load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		log.Warn("failed to add to cache", sl.Err(err))
	}
	return result, nil
}
