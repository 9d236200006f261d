// File: internal/order/model.go
package order

import (
	"time"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/common"

	"github.com/google/uuid"
)

// Status is the purchase lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Order struct {
	common.BaseModel
	CarID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BuyerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Price is captured at order time so later listing edits do not change
	// what the buyer agreed to pay.
	Price  float64  `gorm:"type:numeric(12,2);not null"`
	Status Status   `gorm:"type:varchar(20);not null;default:'pending'"`
	Car    *car.Car `gorm:"foreignKey:CarID;references:ID"`
}

func (Order) TableName() string {
	return "orders"
}

// --- DTOs for API ---

type CreateOrderRequest struct {
	CarID uuid.UUID `json:"car_id" binding:"required"`
}

type OrderResponse struct {
	ID        uuid.UUID        `json:"id"`
	CarID     uuid.UUID        `json:"car_id"`
	BuyerID   uuid.UUID        `json:"buyer_id"`
	SellerID  uuid.UUID        `json:"seller_id"`
	Price     float64          `json:"price"`
	Status    Status           `json:"status"`
	Car       *car.CarResponse `json:"car,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func toOrderResponse(o *Order) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID,
		CarID:     o.CarID,
		BuyerID:   o.BuyerID,
		SellerID:  o.SellerID,
		Price:     o.Price,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.Car != nil {
		carResp := car.ToCarResponse(o.Car)
		resp.Car = &carResp
	}
	return resp
}
