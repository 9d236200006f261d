// File: internal/car/model.go
package car

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"carmarket_backend/internal/common"
	"carmarket_backend/internal/user"

	"github.com/google/uuid"
)

type Transmission string

const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
	TransmissionCVT       Transmission = "CVT"
)

type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// Status is the listing lifecycle state. Transitions are monotonic and
// externally driven: pending -> approved -> {sold, swapped}.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusSold     Status = "sold"
	StatusSwapped  Status = "swapped"
)

type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingSwap ListingType = "swap"
	ListingBoth ListingType = "both"
)

// StringSlice stores an ordered list of strings as a JSON text column so the
// same model round-trips on both the sqlite and postgres drivers.
type StringSlice []string

// Value implements the driver.Valuer interface for StringSlice.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for StringSlice.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("failed to scan StringSlice: invalid type")
	}
	return json.Unmarshal(raw, s)
}

// --- Main Car Model ---

type Car struct {
	common.BaseModel
	Slug         string       `gorm:"type:varchar(255);uniqueIndex;not null"`
	Title        string       `gorm:"type:varchar(255);not null"`
	Brand        string       `gorm:"type:varchar(100);not null"`
	Model        string       `gorm:"type:varchar(100);not null"`
	Year         int          `gorm:"not null"`
	Price        float64      `gorm:"type:numeric(12,2);not null"`
	Mileage      int          `gorm:"not null"`
	Transmission Transmission `gorm:"type:varchar(20);not null"`
	FuelType     FuelType     `gorm:"type:varchar(20);not null"`
	Images       StringSlice  `gorm:"type:text;not null"`
	Description  string       `gorm:"type:text;not null"`
	OwnerID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	Owner        *user.User   `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Status       Status       `gorm:"type:varchar(20);not null;default:'pending'"`
	ListingType  ListingType  `gorm:"type:varchar(20);not null"`
	Location     string       `gorm:"type:varchar(150);not null"`
}

func (Car) TableName() string {
	return "cars"
}

// --- DTOs for API ---

type CreateCarRequest struct {
	Title        string       `json:"title" binding:"required,min=5,max=255"`
	Brand        string       `json:"brand" binding:"required,max=100"`
	Model        string       `json:"model" binding:"required,max=100"`
	Year         int          `json:"year" binding:"required,gte=1900,lte=2100"`
	Price        float64      `json:"price" binding:"gte=0"`
	Mileage      int          `json:"mileage" binding:"gte=0"`
	Transmission Transmission `json:"transmission" binding:"required,oneof=Automatic Manual CVT"`
	FuelType     FuelType     `json:"fuel_type" binding:"required,oneof=Petrol Diesel Electric Hybrid"`
	Images       []string     `json:"images" binding:"required,min=1,dive,url"`
	Description  string       `json:"description" binding:"required,min=20"`
	ListingType  ListingType  `json:"listing_type" binding:"required,oneof=sale swap both"`
	Location     string       `json:"location" binding:"required,max=150"`
}

type UpdateCarRequest struct {
	Title        *string       `json:"title,omitempty" binding:"omitempty,min=5,max=255"`
	Brand        *string       `json:"brand,omitempty" binding:"omitempty,max=100"`
	Model        *string       `json:"model,omitempty" binding:"omitempty,max=100"`
	Year         *int          `json:"year,omitempty" binding:"omitempty,gte=1900,lte=2100"`
	Price        *float64      `json:"price,omitempty" binding:"omitempty,gte=0"`
	Mileage      *int          `json:"mileage,omitempty" binding:"omitempty,gte=0"`
	Transmission *Transmission `json:"transmission,omitempty" binding:"omitempty,oneof=Automatic Manual CVT"`
	FuelType     *FuelType     `json:"fuel_type,omitempty" binding:"omitempty,oneof=Petrol Diesel Electric Hybrid"`
	Images       []string      `json:"images,omitempty" binding:"omitempty,min=1,dive,url"`
	Description  *string       `json:"description,omitempty" binding:"omitempty,min=20"`
	ListingType  *ListingType  `json:"listing_type,omitempty" binding:"omitempty,oneof=sale swap both"`
	Location     *string       `json:"location,omitempty" binding:"omitempty,max=150"`
}

// BrowseQuery carries the customer-facing browse controls. Every field is
// optional; an absent filter imposes no constraint.
type BrowseQuery struct {
	Brand        *string  `form:"brand"`
	MinPrice     *float64 `form:"min_price"`
	MaxPrice     *float64 `form:"max_price"`
	MinYear      *int     `form:"min_year"`
	MaxYear      *int     `form:"max_year"`
	Transmission *string  `form:"transmission" binding:"omitempty,oneof=Automatic Manual CVT"`
	FuelType     *string  `form:"fuel_type" binding:"omitempty,oneof=Petrol Diesel Electric Hybrid"`
	ListingType  *string  `form:"listing_type" binding:"omitempty,oneof=sale swap both"`
	Category     *string  `form:"category" binding:"omitempty,oneof=suvs sedans sports electric luxury trucks"`
	Sort         string   `form:"sort" binding:"omitempty,oneof=newest cheapest mileage"`
}

// Filters converts the bound query into the engine's filter set.
func (q BrowseQuery) Filters() Filters {
	f := Filters{
		Brand:    q.Brand,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		MinYear:  q.MinYear,
		MaxYear:  q.MaxYear,
	}
	if q.Transmission != nil {
		t := Transmission(*q.Transmission)
		f.Transmission = &t
	}
	if q.FuelType != nil {
		ft := FuelType(*q.FuelType)
		f.FuelType = &ft
	}
	if q.ListingType != nil {
		lt := ListingType(*q.ListingType)
		f.ListingType = &lt
	}
	return f
}

// CategoryTag returns the selected category, or nil when browsing all.
func (q BrowseQuery) CategoryTag() *Category {
	if q.Category == nil {
		return nil
	}
	cat := Category(*q.Category)
	return &cat
}

// SortKey returns the requested sort, defaulting to newest.
func (q BrowseQuery) SortKey() SortKey {
	if q.Sort == "" {
		return SortNewest
	}
	return SortKey(q.Sort)
}

type CarResponse struct {
	ID           uuid.UUID          `json:"id"`
	Slug         string             `json:"slug"`
	Title        string             `json:"title"`
	Brand        string             `json:"brand"`
	Model        string             `json:"model"`
	Year         int                `json:"year"`
	Price        float64            `json:"price"`
	Mileage      int                `json:"mileage"`
	Transmission Transmission       `json:"transmission"`
	FuelType     FuelType           `json:"fuel_type"`
	Images       []string           `json:"images"`
	Description  string             `json:"description"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	Owner        *user.UserResponse `json:"owner,omitempty"`
	Status       Status             `json:"status"`
	ListingType  ListingType        `json:"listing_type"`
	Category     Category           `json:"category"`
	Location     string             `json:"location"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToCarResponse converts a Car model to a CarResponse DTO. The derived
// category is computed on the way out, never stored.
func ToCarResponse(c *Car) CarResponse {
	resp := CarResponse{
		ID:           c.ID,
		Slug:         c.Slug,
		Title:        c.Title,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		Price:        c.Price,
		Mileage:      c.Mileage,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		Images:       c.Images,
		Description:  c.Description,
		OwnerID:      c.OwnerID,
		Status:       c.Status,
		ListingType:  c.ListingType,
		Category:     Classify(c),
		Location:     c.Location,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.Owner != nil {
		ownerResp := user.ToUserResponse(c.Owner)
		resp.Owner = &ownerResp
	}
	return resp
}
