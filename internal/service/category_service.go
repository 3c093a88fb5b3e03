package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
	"github.com/liorkima5-coder/CityPulseAI/internal/repository"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

const (
	categoryCacheKey = "categories:public"
	categoryCacheTTL = 5 * time.Minute
)

// CategoryService manages complaint categories and their SLA windows. The
// public listing is cached in redis because the intake form fetches it on
// every page load.
type CategoryService struct {
	categories repository.CategoryRepository
	tickets    repository.TicketRepository
	cache      *redis.Client
	logger     *zap.Logger
}

// NewCategoryService constructs the service. cache may be nil, in which case
// every listing hits the database.
func NewCategoryService(categories repository.CategoryRepository, tickets repository.TicketRepository, cache *redis.Client, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, tickets: tickets, cache: cache, logger: logger}
}

// List returns all categories, serving from cache when possible.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, categoryCacheKey).Bytes()
		if err == nil {
			var categories []domain.Category
			if jsonErr := json.Unmarshal(cached, &categories); jsonErr == nil {
				return categories, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("category cache read failed", zap.Error(err))
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, categoryCacheKey, payload, categoryCacheTTL).Err(); err != nil {
				s.logger.Warn("category cache write failed", zap.Error(err))
			}
		}
	}
	return categories, nil
}

// Create adds a new category.
func (s *CategoryService) Create(ctx context.Context, name string, slaHours int) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name required", nil)
	}
	if slaHours <= 0 {
		return nil, apperrors.NewValidationError("sla_hours must be positive", nil)
	}

	category := &domain.Category{Name: name, SLAHours: slaHours}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return category, nil
}

// Update edits a category's name or SLA window. Last write wins.
func (s *CategoryService) Update(ctx context.Context, id string, name *string, slaHours *int) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("category name required", nil)
		}
		category.Name = trimmed
	}
	if slaHours != nil {
		if *slaHours <= 0 {
			return nil, apperrors.NewValidationError("sla_hours must be positive", nil)
		}
		category.SLAHours = *slaHours
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return category, nil
}

// Delete removes a category. Deletion is blocked while any ticket still
// references it, so existing tickets never carry dangling category ids.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	referencing, err := s.tickets.CountByCategory(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if referencing > 0 {
		return apperrors.NewConflict("category is referenced by existing tickets",
			map[string]any{"ticket_count": referencing})
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoryCacheKey).Err(); err != nil {
		s.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
