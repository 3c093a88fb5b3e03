package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

func newCategoryFixture(t *testing.T) (*CategoryService, *mockCategoryRepo, *mockTicketRepo, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	categories := new(mockCategoryRepo)
	tickets := new(mockTicketRepo)
	svc := NewCategoryService(categories, tickets, client, zap.NewNop())
	return svc, categories, tickets, server
}

func TestCategoryListPopulatesCache(t *testing.T) {
	svc, categories, _, server := newCategoryFixture(t)
	stored := []domain.Category{{ID: "cat-1", Name: "roads", SLAHours: 48}}
	categories.On("List", mock.Anything).Return(stored, nil).Once()

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.True(t, server.Exists(categoryCacheKey))

	// Second listing is served from the cache without touching the repository.
	again, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, again)
	categories.AssertNumberOfCalls(t, "List", 1)
}

func TestCategoryCreateInvalidatesCache(t *testing.T) {
	svc, categories, _, server := newCategoryFixture(t)
	require.NoError(t, server.Set(categoryCacheKey, `[{"id":"stale"}]`))

	categories.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), "lighting", 24)
	require.NoError(t, err)
	assert.False(t, server.Exists(categoryCacheKey))
}

func TestCategoryCreateValidation(t *testing.T) {
	svc, categories, _, _ := newCategoryFixture(t)

	_, err := svc.Create(context.Background(), "  ", 24)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	_, err = svc.Create(context.Background(), "lighting", 0)
	require.Error(t, err)
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryUpdatePartialFields(t *testing.T) {
	svc, categories, _, _ := newCategoryFixture(t)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1", Name: "roads", SLAHours: 48}, nil)
	categories.On("Update", mock.Anything, mock.Anything).Return(nil)

	sla := 12
	updated, err := svc.Update(context.Background(), "cat-1", nil, &sla)
	require.NoError(t, err)
	assert.Equal(t, "roads", updated.Name)
	assert.Equal(t, 12, updated.SLAHours)
}

func TestCategoryDeleteBlockedWhileReferenced(t *testing.T) {
	svc, categories, tickets, _ := newCategoryFixture(t)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("CountByCategory", mock.Anything, "cat-1").Return(3, nil)

	err := svc.Delete(context.Background(), "cat-1")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryDeleteUnreferenced(t *testing.T) {
	svc, categories, tickets, server := newCategoryFixture(t)
	require.NoError(t, server.Set(categoryCacheKey, `[{"id":"stale"}]`))
	categories.On("GetByID", mock.Anything, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
	tickets.On("CountByCategory", mock.Anything, "cat-1").Return(0, nil)
	categories.On("Delete", mock.Anything, "cat-1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "cat-1"))
	assert.False(t, server.Exists(categoryCacheKey))
}

func TestCategoryListWithoutCacheFallsThrough(t *testing.T) {
	categories := new(mockCategoryRepo)
	tickets := new(mockTicketRepo)
	svc := NewCategoryService(categories, tickets, nil, zap.NewNop())
	categories.On("List", mock.Anything).Return([]domain.Category{}, nil).Twice()

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	categories.AssertNumberOfCalls(t, "List", 2)
}
