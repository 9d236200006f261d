// File: internal/car/service.go
package car

import (
	"context"
	"fmt"
	"strings"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the business logic for car listings.
type Service interface {
	// Browse computes the customer-visible listing set from the current
	// snapshot: visibility, optional category, filters, then a stable sort.
	Browse(ctx context.Context, query BrowseQuery) ([]CarResponse, error)
	GetByIdentifier(ctx context.Context, identifier string, viewerID uuid.UUID, viewerRole string) (*CarResponse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]CarResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateCarRequest) (*CarResponse, error)
	Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string, req UpdateCarRequest) (*CarResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) error
	MarkSold(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*CarResponse, error)
	// MarkSwapped transitions an approved listing to swapped. It is invoked
	// by the swap workflow once both parties complete a trade.
	MarkSwapped(ctx context.Context, id uuid.UUID) error
	AdminApprove(ctx context.Context, id uuid.UUID) (*CarResponse, error)
	AdminReject(ctx context.Context, id uuid.UUID) error
	AdminListPending(ctx context.Context) ([]CarResponse, error)
	CategoryCounts(ctx context.Context) (map[Category]int, error)
	CountPending(ctx context.Context) (int64, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new car service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, logger: logger.Named("CarService")}
}

func (s *ServiceImplementation) Browse(ctx context.Context, query BrowseQuery) ([]CarResponse, error) {
	snapshot, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	visible := ComputeVisible(snapshot, query.CategoryTag(), query.Filters(), query.SortKey())
	return toResponses(visible), nil
}

func (s *ServiceImplementation) GetByIdentifier(ctx context.Context, identifier string, viewerID uuid.UUID, viewerRole string) (*CarResponse, error) {
	var (
		car *Car
		err error
	)
	if id, parseErr := uuid.Parse(identifier); parseErr == nil {
		car, err = s.repo.FindByID(ctx, id)
	} else {
		car, err = s.repo.FindBySlug(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	// Pending and swapped listings are hidden from the public; only the
	// owner and admins see them.
	if car.Status == StatusPending || car.Status == StatusSwapped {
		if car.OwnerID != viewerID && viewerRole != common.RoleAdmin {
			return nil, common.ErrNotFound.WithDetails("Car listing not found.")
		}
	}
	resp := ToCarResponse(car)
	return &resp, nil
}

func (s *ServiceImplementation) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]CarResponse, error) {
	cars, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toResponses(cars), nil
}

func (s *ServiceImplementation) Create(ctx context.Context, ownerID uuid.UUID, req CreateCarRequest) (*CarResponse, error) {
	car := &Car{
		Slug:         s.generateSlug(req.Title, req.Year),
		Title:        strings.TrimSpace(req.Title),
		Brand:        strings.TrimSpace(req.Brand),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		Images:       req.Images,
		Description:  req.Description,
		OwnerID:      ownerID,
		Status:       StatusPending,
		ListingType:  req.ListingType,
		Location:     strings.TrimSpace(req.Location),
	}
	if err := s.repo.Create(ctx, car); err != nil {
		return nil, err
	}
	s.logger.Info("Car listing created",
		zap.String("car_id", car.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("slug", car.Slug))

	resp := ToCarResponse(car)
	return &resp, nil
}

func (s *ServiceImplementation) Update(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string, req UpdateCarRequest) (*CarResponse, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.OwnerID != actorID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("You can only update your own listings.")
	}

	if req.Title != nil {
		car.Title = strings.TrimSpace(*req.Title)
	}
	if req.Brand != nil {
		car.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		car.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Price != nil {
		car.Price = *req.Price
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	if req.Transmission != nil {
		car.Transmission = *req.Transmission
	}
	if req.FuelType != nil {
		car.FuelType = *req.FuelType
	}
	if req.Images != nil {
		car.Images = req.Images
	}
	if req.Description != nil {
		car.Description = *req.Description
	}
	if req.ListingType != nil {
		car.ListingType = *req.ListingType
	}
	if req.Location != nil {
		car.Location = strings.TrimSpace(*req.Location)
	}

	if err := s.repo.Update(ctx, car); err != nil {
		return nil, err
	}
	resp := ToCarResponse(car)
	return &resp, nil
}

func (s *ServiceImplementation) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) error {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if car.OwnerID != actorID && actorRole != common.RoleAdmin {
		return common.ErrForbidden.WithDetails("You can only delete your own listings.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Car listing deleted", zap.String("car_id", id.String()), zap.String("actor_id", actorID.String()))
	return nil
}

func (s *ServiceImplementation) MarkSold(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole string) (*CarResponse, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.OwnerID != actorID && actorRole != common.RoleAdmin {
		return nil, common.ErrForbidden.WithDetails("You can only mark your own listings as sold.")
	}
	if car.Status != StatusApproved {
		return nil, common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only approved listings can be marked sold; current status is '%s'.", car.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusSold); err != nil {
		return nil, err
	}
	car.Status = StatusSold
	s.logger.Info("Car listing marked sold", zap.String("car_id", id.String()))
	resp := ToCarResponse(car)
	return &resp, nil
}

func (s *ServiceImplementation) MarkSwapped(ctx context.Context, id uuid.UUID) error {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if car.Status != StatusApproved {
		return common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only approved listings can be swapped; current status is '%s'.", car.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusSwapped); err != nil {
		return err
	}
	s.logger.Info("Car listing marked swapped", zap.String("car_id", id.String()))
	return nil
}

func (s *ServiceImplementation) AdminApprove(ctx context.Context, id uuid.UUID) (*CarResponse, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.Status != StatusPending {
		return nil, common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only pending listings can be approved; current status is '%s'.", car.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusApproved); err != nil {
		return nil, err
	}
	car.Status = StatusApproved
	s.logger.Info("Car listing approved", zap.String("car_id", id.String()))
	resp := ToCarResponse(car)
	return &resp, nil
}

func (s *ServiceImplementation) AdminReject(ctx context.Context, id uuid.UUID) error {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if car.Status != StatusPending {
		return common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only pending listings can be rejected; current status is '%s'.", car.Status))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Car listing rejected", zap.String("car_id", id.String()))
	return nil
}

func (s *ServiceImplementation) AdminListPending(ctx context.Context) ([]CarResponse, error) {
	cars, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return toResponses(cars), nil
}

func (s *ServiceImplementation) CategoryCounts(ctx context.Context) (map[Category]int, error) {
	snapshot, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return CountsByCategory(snapshot), nil
}

func (s *ServiceImplementation) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, StatusPending)
}

// generateSlug builds a URL identifier from the listing title and year,
// suffixed with a short random token to keep slugs unique without a
// read-before-write round trip.
func (s *ServiceImplementation) generateSlug(title string, year int) string {
	base := slug.Make(fmt.Sprintf("%s %d", title, year))
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", base, suffix)
}

func toResponses(cars []*Car) []CarResponse {
	responses := make([]CarResponse, len(cars))
	for i, c := range cars {
		responses[i] = ToCarResponse(c)
	}
	return responses
}
