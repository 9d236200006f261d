// File: internal/car/repository.go
package car

import (
	"context"
	"errors"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository defines persistence operations for car listings.
type Repository interface {
	Create(ctx context.Context, car *Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*Car, error)
	FindBySlug(ctx context.Context, slug string) (*Car, error)
	FindAll(ctx context.Context) ([]*Car, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Car, error)
	FindByStatus(ctx context.Context, status Status) ([]*Car, error)
	Update(ctx context.Context, car *Car) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGORMRepository creates a new GORM-based repository for cars.
func NewGORMRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{db: db, logger: logger.Named("CarRepository")}
}

func (r *gormRepository) Create(ctx context.Context, car *Car) error {
	if err := r.db.WithContext(ctx).Create(car).Error; err != nil {
		r.logger.Error("Failed to create car", zap.Error(err), zap.String("slug", car.Slug))
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrConflict.WithDetails("A listing with this slug already exists.")
		}
		return common.ErrInternalServer.WithDetails("Failed to save car listing.")
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	var car Car
	err := r.db.WithContext(ctx).Preload("Owner").First(&car, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Car listing not found.")
		}
		r.logger.Error("Failed to find car by ID", zap.Error(err), zap.String("car_id", id.String()))
		return nil, common.ErrInternalServer
	}
	return &car, nil
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Car, error) {
	var car Car
	err := r.db.WithContext(ctx).Preload("Owner").First(&car, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Car listing not found.")
		}
		r.logger.Error("Failed to find car by slug", zap.Error(err), zap.String("slug", slug))
		return nil, common.ErrInternalServer
	}
	return &car, nil
}

// FindAll returns the full snapshot in insertion order. The browse engine
// depends on this ordering being deterministic for stable-sort ties.
func (r *gormRepository) FindAll(ctx context.Context) ([]*Car, error) {
	var cars []*Car
	err := r.db.WithContext(ctx).Preload("Owner").
		Order("created_at ASC").Order("id ASC").
		Find(&cars).Error
	if err != nil {
		r.logger.Error("Failed to list cars", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return cars, nil
}

func (r *gormRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Car, error) {
	var cars []*Car
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		r.logger.Error("Failed to list cars by owner", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, common.ErrInternalServer
	}
	return cars, nil
}

func (r *gormRepository) FindByStatus(ctx context.Context, status Status) ([]*Car, error) {
	var cars []*Car
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&cars).Error
	if err != nil {
		r.logger.Error("Failed to list cars by status", zap.Error(err), zap.String("status", string(status)))
		return nil, common.ErrInternalServer
	}
	return cars, nil
}

func (r *gormRepository) Update(ctx context.Context, car *Car) error {
	if err := r.db.WithContext(ctx).Save(car).Error; err != nil {
		r.logger.Error("Failed to update car", zap.Error(err), zap.String("car_id", car.ID.String()))
		return common.ErrInternalServer.WithDetails("Failed to update car listing.")
	}
	return nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Car{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		r.logger.Error("Failed to update car status", zap.Error(result.Error), zap.String("car_id", id.String()))
		return common.ErrInternalServer
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Car listing not found.")
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Car{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("Failed to delete car", zap.Error(result.Error), zap.String("car_id", id.String()))
		return common.ErrInternalServer
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Car listing not found.")
	}
	return nil
}

func (r *gormRepository) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Car{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to count cars by status", zap.Error(err), zap.String("status", string(status)))
		return 0, common.ErrInternalServer
	}
	return count, nil
}
