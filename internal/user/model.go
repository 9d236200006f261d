// File: internal/user/model.go
package user

import (
	"time"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
)

// User represents a marketplace account. Every seeded demo account shares the
// configured demo password; there is no real credential store.
type User struct {
	common.BaseModel
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string  `gorm:"type:varchar(150);not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	AvatarURL    *string `gorm:"type:text"`
	Phone        *string `gorm:"type:varchar(50)"`
	Location     *string `gorm:"type:varchar(150)"`
	Role         string  `gorm:"type:varchar(50);not null;default:'user'"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// --- DTOs for API ---

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=2,max=150"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Location  *string `json:"location,omitempty" binding:"omitempty,max=150"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Phone:     u.Phone,
		Location:  u.Location,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
