// File: internal/order/repository.go
package order

import (
	"context"
	"errors"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGORMRepository creates a new GORM-based repository for orders.
func NewGORMRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{db: db, logger: logger.Named("OrderRepository")}
}

func (r *gormRepository) Create(ctx context.Context, order *Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Failed to create order.")
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Preload("Car").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Order not found.")
		}
		r.logger.Error("Failed to find order", zap.Error(err), zap.String("order_id", id.String()))
		return nil, common.ErrInternalServer
	}
	return &order, nil
}

func (r *gormRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	var orders []*Order
	err := r.db.WithContext(ctx).Preload("Car").
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrInternalServer
	}
	return orders, nil
}

func (r *gormRepository) FindAll(ctx context.Context, offset, limit int) ([]*Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Order{}).Count(&total).Error; err != nil {
		r.logger.Error("Failed to count orders", zap.Error(err))
		return nil, 0, common.ErrInternalServer
	}

	var orders []*Order
	err := r.db.WithContext(ctx).Preload("Car").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		r.logger.Error("Failed to list all orders", zap.Error(err))
		return nil, 0, common.ErrInternalServer
	}
	return orders, total, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		r.logger.Error("Failed to update order status", zap.Error(result.Error), zap.String("order_id", id.String()))
		return common.ErrInternalServer
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Order not found.")
	}
	return nil
}
