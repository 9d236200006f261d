// File: internal/swap/model.go
package swap

import (
	"time"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/common"

	"github.com/google/uuid"
)

// Status is the swap request lifecycle state. Only the listing owner moves
// a request out of pending; completion requires prior acceptance.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

type Swap struct {
	common.BaseModel
	RequesterCarID uuid.UUID `gorm:"type:uuid;not null"`
	RequestedCarID uuid.UUID `gorm:"type:uuid;not null"`
	RequesterID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Message        *string   `gorm:"type:text"`
	Status         Status    `gorm:"type:varchar(20);not null;default:'pending'"`
	RequesterCar   *car.Car  `gorm:"foreignKey:RequesterCarID;references:ID"`
	RequestedCar   *car.Car  `gorm:"foreignKey:RequestedCarID;references:ID"`
}

func (Swap) TableName() string {
	return "swap_requests"
}

// --- DTOs for API ---

type CreateSwapRequest struct {
	RequesterCarID uuid.UUID `json:"requester_car_id" binding:"required"`
	RequestedCarID uuid.UUID `json:"requested_car_id" binding:"required"`
	Message        *string   `json:"message,omitempty" binding:"omitempty,max=2000"`
}

type SwapResponse struct {
	ID             uuid.UUID        `json:"id"`
	RequesterCarID uuid.UUID        `json:"requester_car_id"`
	RequestedCarID uuid.UUID        `json:"requested_car_id"`
	RequesterID    uuid.UUID        `json:"requester_id"`
	OwnerID        uuid.UUID        `json:"owner_id"`
	Message        *string          `json:"message,omitempty"`
	Status         Status           `json:"status"`
	RequesterCar   *car.CarResponse `json:"requester_car,omitempty"`
	RequestedCar   *car.CarResponse `json:"requested_car,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func toSwapResponse(s *Swap) SwapResponse {
	resp := SwapResponse{
		ID:             s.ID,
		RequesterCarID: s.RequesterCarID,
		RequestedCarID: s.RequestedCarID,
		RequesterID:    s.RequesterID,
		OwnerID:        s.OwnerID,
		Message:        s.Message,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.RequesterCar != nil {
		carResp := car.ToCarResponse(s.RequesterCar)
		resp.RequesterCar = &carResp
	}
	if s.RequestedCar != nil {
		carResp := car.ToCarResponse(s.RequestedCar)
		resp.RequestedCar = &carResp
	}
	return resp
}
