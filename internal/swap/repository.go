// File: internal/swap/repository.go
package swap

import (
	"context"
	"errors"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository defines persistence operations for swap requests.
type Repository interface {
	Create(ctx context.Context, swap *Swap) error
	FindByID(ctx context.Context, id uuid.UUID) (*Swap, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*Swap, error)
	FindPendingByParticipant(ctx context.Context, userID uuid.UUID) ([]*Swap, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGORMRepository creates a new GORM-based repository for swap requests.
func NewGORMRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{db: db, logger: logger.Named("SwapRepository")}
}

func (r *gormRepository) Create(ctx context.Context, swap *Swap) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		r.logger.Error("Failed to create swap request", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to create swap request.")
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Swap, error) {
	var swap Swap
	err := r.db.WithContext(ctx).
		Preload("RequesterCar").Preload("RequestedCar").
		First(&swap, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Swap request not found.")
		}
		r.logger.Error("Failed to find swap request", zap.Error(err), zap.String("swap_id", id.String()))
		return nil, common.ErrInternalServer
	}
	return &swap, nil
}

func (r *gormRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*Swap, error) {
	var swaps []*Swap
	err := r.db.WithContext(ctx).
		Preload("RequesterCar").Preload("RequestedCar").
		Where("requester_id = ? OR owner_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&swaps).Error
	if err != nil {
		r.logger.Error("Failed to list swap requests", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrInternalServer
	}
	return swaps, nil
}

func (r *gormRepository) FindPendingByParticipant(ctx context.Context, userID uuid.UUID) ([]*Swap, error) {
	var swaps []*Swap
	err := r.db.WithContext(ctx).
		Preload("RequesterCar").Preload("RequestedCar").
		Where("(requester_id = ? OR owner_id = ?) AND status = ?", userID, userID, StatusPending).
		Order("created_at DESC").
		Find(&swaps).Error
	if err != nil {
		r.logger.Error("Failed to list pending swap requests", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrInternalServer
	}
	return swaps, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Swap{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		r.logger.Error("Failed to update swap status", zap.Error(result.Error), zap.String("swap_id", id.String()))
		return common.ErrInternalServer
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Swap request not found.")
	}
	return nil
}
