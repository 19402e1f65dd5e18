package catalog

import (
	"context"

	"foodshare/internal/domain"
)

// CategoryRepository defines the read access the catalog needs.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type Service struct {
	categories CategoryRepository
}

func NewService(categories CategoryRepository) *Service {
	return &Service{categories: categories}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
