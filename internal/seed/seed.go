// File: internal/seed/seed.go
package seed

import (
	"context"
	"time"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/chat"
	"carmarket_backend/internal/common"
	"carmarket_backend/internal/config"
	"carmarket_backend/internal/order"
	"carmarket_backend/internal/swap"
	"carmarket_backend/internal/user"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder migrates the schema and loads the demo marketplace data set on an
// empty database. Seeding is idempotent: it does nothing once users exist.
type Seeder struct {
	db     *gorm.DB
	cfg    *config.Config
	logger *zap.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, cfg: cfg, logger: logger.Named("Seeder")}
}

// Run migrates the schema and, when enabled and the database is empty,
// inserts the demo users, listings, conversation, orders, and swap request.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&user.User{},
		&car.Car{},
		&chat.Chat{},
		&chat.Message{},
		&swap.Swap{},
		&order.Order{},
	); err != nil {
		s.logger.Error("Schema migration failed", zap.Error(err))
		return err
	}
	s.logger.Info("Schema migrated")

	if !s.cfg.SeedDemoData {
		return nil
	}

	var userCount int64
	if err := s.db.WithContext(ctx).Model(&user.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		s.logger.Debug("Database already seeded, skipping demo data")
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := s.seedUsers(tx)
		if err != nil {
			return err
		}
		cars, err := s.seedCars(tx, users)
		if err != nil {
			return err
		}
		if err := s.seedChat(tx, users); err != nil {
			return err
		}
		if err := s.seedOrders(tx, users, cars); err != nil {
			return err
		}
		if err := s.seedSwap(tx, users, cars); err != nil {
			return err
		}
		s.logger.Info("Demo data seeded",
			zap.Int("users", len(users)),
			zap.Int("cars", len(cars)))
		return nil
	})
}

func strPtr(v string) *string { return &v }

func (s *Seeder) seedUsers(tx *gorm.DB) (map[string]*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := map[string]*user.User{
		"admin": {
			Email:        "admin@carmarket.com",
			Name:         "Admin User",
			PasswordHash: string(hash),
			Role:         common.RoleAdmin,
			AvatarURL:    strPtr("https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop"),
			Location:     strPtr("New York, NY"),
		},
		"john": {
			Email:        "john@example.com",
			Name:         "John Doe",
			PasswordHash: string(hash),
			Role:         common.RoleUser,
			AvatarURL:    strPtr("https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=100&h=100&fit=crop"),
			Phone:        strPtr("+1 555-0123"),
			Location:     strPtr("Los Angeles, CA"),
		},
		"jane": {
			Email:        "jane@example.com",
			Name:         "Jane Smith",
			PasswordHash: string(hash),
			Role:         common.RoleUser,
			AvatarURL:    strPtr("https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100&h=100&fit=crop"),
			Phone:        strPtr("+1 555-0124"),
			Location:     strPtr("Chicago, IL"),
		},
		"mike": {
			Email:        "mike@example.com",
			Name:         "Mike Johnson",
			PasswordHash: string(hash),
			Role:         common.RoleUser,
			AvatarURL:    strPtr("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop"),
			Location:     strPtr("Houston, TX"),
		},
	}
	for _, u := range users {
		if err := tx.Create(u).Error; err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *Seeder) seedCars(tx *gorm.DB, users map[string]*user.User) (map[string]*car.Car, error) {
	cars := map[string]*car.Car{
		"camry": {
			Title:        "Toyota Camry 2020 - Excellent Condition",
			Brand:        "Toyota",
			Model:        "Camry",
			Year:         2020,
			Price:        24500,
			Mileage:      45000,
			Transmission: car.TransmissionAutomatic,
			FuelType:     car.FuelPetrol,
			Images: car.StringSlice{
				"https://images.unsplash.com/photo-1621007947382-bb3c3968e3bb?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=800&h=600&fit=crop",
			},
			Description: "Well-maintained Toyota Camry with leather seats, backup camera, and Bluetooth connectivity. Single owner, no accidents.",
			OwnerID:     users["john"].ID,
			Status:      car.StatusApproved,
			ListingType: car.ListingSale,
			Location:    "Los Angeles, CA",
		},
		"civic": {
			Title:        "Honda Civic 2019 Sport",
			Brand:        "Honda",
			Model:        "Civic",
			Year:         2019,
			Price:        22000,
			Mileage:      38000,
			Transmission: car.TransmissionManual,
			FuelType:     car.FuelPetrol,
			Images: car.StringSlice{
				"https://images.unsplash.com/photo-1605816988066-b51c7e6b0b6f?w=800&h=600&fit=crop",
			},
			Description: "Sport trim with turbo engine. Great handling and fuel efficiency. Perfect for enthusiasts.",
			OwnerID:     users["jane"].ID,
			Status:      car.StatusApproved,
			ListingType: car.ListingSwap,
			Location:    "Chicago, IL",
		},
		"model3": {
			Title:        "Tesla Model 3 2021 Long Range",
			Brand:        "Tesla",
			Model:        "Model 3",
			Year:         2021,
			Price:        42000,
			Mileage:      25000,
			Transmission: car.TransmissionAutomatic,
			FuelType:     car.FuelElectric,
			Images: car.StringSlice{
				"https://images.unsplash.com/photo-1560958089-b8a1929cea89?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1617788138017-80ad40651399?w=800&h=600&fit=crop",
			},
			Description: "Long Range AWD with Autopilot. White interior, premium connectivity. Supercharger network access.",
			OwnerID:     users["mike"].ID,
			Status:      car.StatusApproved,
			ListingType: car.ListingBoth,
			Location:    "Houston, TX",
		},
		"bmw330i": {
			Title:        "BMW 3 Series 2018 330i",
			Brand:        "BMW",
			Model:        "3 Series",
			Year:         2018,
			Price:        28500,
			Mileage:      52000,
			Transmission: car.TransmissionAutomatic,
			FuelType:     car.FuelPetrol,
			Images: car.StringSlice{
				"https://images.unsplash.com/photo-1555215695-3004980ad54e?w=800&h=600&fit=crop",
			},
			Description: "Luxury sedan with premium package. Navigation, heated seats, sunroof. Certified pre-owned.",
			OwnerID:     users["john"].ID,
			Status:      car.StatusPending,
			ListingType: car.ListingSale,
			Location:    "Los Angeles, CA",
		},
		"mustang": {
			Title:        "Ford Mustang 2020 GT",
			Brand:        "Ford",
			Model:        "Mustang",
			Year:         2020,
			Price:        38000,
			Mileage:      28000,
			Transmission: car.TransmissionManual,
			FuelType:     car.FuelPetrol,
			Images: car.StringSlice{
				"https://images.unsplash.com/photo-1584345604476-8ec5e12e42dd?w=800&h=600&fit=crop",
				"https://images.unsplash.com/photo-1494976388531-d1058494cdd8?w=800&h=600&fit=crop",
			},
			Description: "5.0L V8 GT Premium. Magnetic ride suspension, Brembo brakes. American muscle at its finest.",
			OwnerID:     users["jane"].ID,
			Status:      car.StatusApproved,
			ListingType: car.ListingSwap,
			Location:    "Chicago, IL",
		},
		"cclass": {
			Title:        "Mercedes C-Class 2021 C300",
			Brand:        "Mercedes-Benz",
			Model:        "C-Class",
			Year:         2021,
			Price:        39500,
			Mileage:      22000,
			Transmission: car.TransmissionAutomatic,
			FuelType:     car.FuelHybrid,
			Images: car.StringSlice{
				"https://images.unsplash.com/photo-1618843479313-40f8afb4b4d8?w=800&h=600&fit=crop",
			},
			Description: "Mild hybrid with EQ Boost. Burmester sound system, ambient lighting. Pristine condition.",
			OwnerID:     users["mike"].ID,
			Status:      car.StatusApproved,
			ListingType: car.ListingSale,
			Location:    "Houston, TX",
		},
	}

	// Insert in a fixed order so newest-sort demos stay stable.
	names := []string{"camry", "civic", "model3", "bmw330i", "mustang", "cclass"}
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range names {
		c := cars[name]
		c.Slug = slug.Make(c.Title)
		c.CreatedAt = createdAt
		c.UpdatedAt = createdAt
		if err := tx.Create(c).Error; err != nil {
			return nil, err
		}
		createdAt = createdAt.AddDate(0, 0, 3)
	}
	return cars, nil
}

func (s *Seeder) seedChat(tx *gorm.DB, users map[string]*user.User) error {
	one, two := users["john"].ID, users["jane"].ID
	if two.String() < one.String() {
		one, two = two, one
	}
	conversation := &chat.Chat{UserOneID: one, UserTwoID: two}
	if err := tx.Create(conversation).Error; err != nil {
		return err
	}

	messages := []chat.Message{
		{ChatID: conversation.ID, SenderID: users["jane"].ID, Content: "Hi! Is the Honda Civic still available for swap?", Read: true},
		{ChatID: conversation.ID, SenderID: users["john"].ID, Content: "Yes, it is! What car do you have for swap?", Read: true},
		{ChatID: conversation.ID, SenderID: users["jane"].ID, Content: "I have a 2020 Toyota Camry. Would you be interested?", Read: false},
	}
	sentAt := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	for i := range messages {
		messages[i].CreatedAt = sentAt
		messages[i].UpdatedAt = sentAt
		if err := tx.Create(&messages[i]).Error; err != nil {
			return err
		}
		sentAt = sentAt.Add(5 * time.Minute)
	}
	return nil
}

func (s *Seeder) seedOrders(tx *gorm.DB, users map[string]*user.User, cars map[string]*car.Car) error {
	orders := []order.Order{
		{
			CarID:    cars["camry"].ID,
			BuyerID:  users["jane"].ID,
			SellerID: users["john"].ID,
			Price:    24500,
			Status:   order.StatusCompleted,
		},
		{
			CarID:    cars["model3"].ID,
			BuyerID:  users["john"].ID,
			SellerID: users["mike"].ID,
			Price:    42000,
			Status:   order.StatusPending,
		},
	}
	for i := range orders {
		if err := tx.Create(&orders[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedSwap(tx *gorm.DB, users map[string]*user.User, cars map[string]*car.Car) error {
	request := &swap.Swap{
		RequesterCarID: cars["model3"].ID,
		RequestedCarID: cars["mustang"].ID,
		RequesterID:    users["mike"].ID,
		OwnerID:        cars["mustang"].OwnerID,
		Message:        strPtr("Would love to swap my Model 3 for your Mustang!"),
		Status:         swap.StatusPending,
	}
	return tx.Create(request).Error
}
