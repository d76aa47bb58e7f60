package catalog

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/carhubteam/carhub-backend/internal/cache"
)

const cacheTTL = 10 * time.Minute

// Service answers catalog reads. Slug lookups sit on the purchase path, so
// they go through the cache when one is configured.
type Service struct {
	repo  Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewService(repo Repository, c cache.Cache, log *zap.Logger) *Service {
	return &Service{repo: repo, cache: c, log: log}
}

func (s *Service) List() ([]Vehicle, error) {
	return s.repo.List()
}

func (s *Service) ListByCategory(category string) ([]Vehicle, error) {
	return s.repo.ListByCategory(category)
}

func (s *Service) GetByID(id int) (Vehicle, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Vehicle, error) {
	if s.cache != nil {
		key := s.cache.Key("vehicle", slug)
		if raw, err := s.cache.Get(ctx, key); err != nil {
			s.log.Warn("vehicle cache read failed", zap.String("slug", slug), zap.Error(err))
		} else if raw != "" {
			var v Vehicle
			if json.Unmarshal([]byte(raw), &v) == nil {
				return v, nil
			}
		}
	}

	v, err := s.repo.GetBySlug(slug)
	if err != nil {
		return Vehicle{}, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(v); err == nil {
			if err := s.cache.Set(ctx, s.cache.Key("vehicle", slug), encoded, cacheTTL); err != nil {
				s.log.Warn("vehicle cache write failed", zap.String("slug", slug), zap.Error(err))
			}
		}
	}
	return v, nil
}
