// File: internal/category/service.go
package category

import (
	"context"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/common"

	"go.uber.org/zap"
)

// Service exposes the category catalog with live listing counts.
type Service interface {
	List(ctx context.Context) ([]CategoryResponse, error)
	GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	carService car.Service
	logger     *zap.Logger
}

// NewService creates a new category service.
func NewService(carService car.Service, logger *zap.Logger) Service {
	return &ServiceImplementation{carService: carService, logger: logger.Named("CategoryService")}
}

func (s *ServiceImplementation) List(ctx context.Context) ([]CategoryResponse, error) {
	counts, err := s.carService.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(catalog))
	for i, info := range catalog {
		responses[i] = CategoryResponse{CategoryInfo: info, Count: counts[info.Slug]}
	}
	return responses, nil
}

func (s *ServiceImplementation) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	for _, info := range catalog {
		if string(info.Slug) == slug {
			counts, err := s.carService.CategoryCounts(ctx)
			if err != nil {
				return nil, err
			}
			return &CategoryResponse{CategoryInfo: info, Count: counts[info.Slug]}, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("Category not found.")
}
