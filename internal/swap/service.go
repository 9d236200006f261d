// File: internal/swap/service.go
package swap

import (
	"context"
	"fmt"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for swap requests.
type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, req CreateSwapRequest) (*SwapResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]SwapResponse, error)
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]SwapResponse, error)
	// Accept and Reject are owner decisions on a pending request.
	Accept(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*SwapResponse, error)
	Reject(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*SwapResponse, error)
	// Complete finalizes an accepted trade and retires both listings.
	Complete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*SwapResponse, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	repo       Repository
	carService car.Service
	logger     *zap.Logger
}

// NewService creates a new swap service.
func NewService(repo Repository, carService car.Service, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, carService: carService, logger: logger.Named("SwapService")}
}

func (s *ServiceImplementation) Create(ctx context.Context, requesterID uuid.UUID, req CreateSwapRequest) (*SwapResponse, error) {
	if req.RequesterCarID == req.RequestedCarID {
		return nil, common.ErrUnprocessableEntity.WithDetails("You cannot offer a car in exchange for itself.")
	}

	offered, err := s.swappableCar(ctx, req.RequesterCarID, requesterID, common.RoleUser)
	if err != nil {
		return nil, err
	}
	if offered.OwnerID != requesterID {
		return nil, common.ErrForbidden.WithDetails("You can only offer your own car in a swap.")
	}

	requested, err := s.swappableCar(ctx, req.RequestedCarID, requesterID, common.RoleUser)
	if err != nil {
		return nil, err
	}
	if requested.OwnerID == requesterID {
		return nil, common.ErrUnprocessableEntity.WithDetails("You cannot request a swap for your own car.")
	}

	swap := &Swap{
		RequesterCarID: req.RequesterCarID,
		RequestedCarID: req.RequestedCarID,
		RequesterID:    requesterID,
		OwnerID:        requested.OwnerID,
		Message:        req.Message,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, swap); err != nil {
		return nil, err
	}
	s.logger.Info("Swap request created",
		zap.String("swap_id", swap.ID.String()),
		zap.String("requester_id", requesterID.String()),
		zap.String("owner_id", swap.OwnerID.String()))

	resp := toSwapResponse(swap)
	return &resp, nil
}

func (s *ServiceImplementation) ListForUser(ctx context.Context, userID uuid.UUID) ([]SwapResponse, error) {
	swaps, err := s.repo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(swaps), nil
}

func (s *ServiceImplementation) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]SwapResponse, error) {
	swaps, err := s.repo.FindPendingByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(swaps), nil
}

func (s *ServiceImplementation) Accept(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*SwapResponse, error) {
	return s.ownerDecision(ctx, id, actorID, StatusAccepted)
}

func (s *ServiceImplementation) Reject(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*SwapResponse, error) {
	return s.ownerDecision(ctx, id, actorID, StatusRejected)
}

func (s *ServiceImplementation) ownerDecision(ctx context.Context, id uuid.UUID, actorID uuid.UUID, decision Status) (*SwapResponse, error) {
	swap, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.OwnerID != actorID {
		return nil, common.ErrForbidden.WithDetails("Only the owner of the requested car can decide on this swap.")
	}
	if swap.Status != StatusPending {
		return nil, common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only pending swap requests can be decided; current status is '%s'.", swap.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, decision); err != nil {
		return nil, err
	}
	swap.Status = decision
	s.logger.Info("Swap request decided",
		zap.String("swap_id", id.String()),
		zap.String("decision", string(decision)))

	resp := toSwapResponse(swap)
	return &resp, nil
}

func (s *ServiceImplementation) Complete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*SwapResponse, error) {
	swap, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != actorID && swap.OwnerID != actorID {
		return nil, common.ErrForbidden.WithDetails("Only a participant can complete this swap.")
	}
	if swap.Status != StatusAccepted {
		return nil, common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only accepted swap requests can be completed; current status is '%s'.", swap.Status))
	}

	// Both listings leave the marketplace together. Check both are still
	// approved before retiring either, so a listing sold between accept and
	// complete cannot strand one side as swapped.
	for _, carID := range []uuid.UUID{swap.RequesterCarID, swap.RequestedCarID} {
		found, err := s.carService.GetByIdentifier(ctx, carID.String(), actorID, common.RoleUser)
		if err != nil {
			return nil, err
		}
		if found.Status != car.StatusApproved {
			return nil, common.ErrUnprocessableEntity.WithDetails(
				fmt.Sprintf("Car '%s' is no longer available for swapping; current status is '%s'.", found.Title, found.Status))
		}
	}
	if err := s.carService.MarkSwapped(ctx, swap.RequesterCarID); err != nil {
		return nil, err
	}
	if err := s.carService.MarkSwapped(ctx, swap.RequestedCarID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCompleted); err != nil {
		return nil, err
	}
	swap.Status = StatusCompleted
	s.logger.Info("Swap completed", zap.String("swap_id", id.String()))

	resp := toSwapResponse(swap)
	return &resp, nil
}

// swappableCar loads a car and verifies it can take part in a trade:
// approved status and a listing type that allows swapping.
func (s *ServiceImplementation) swappableCar(ctx context.Context, carID uuid.UUID, viewerID uuid.UUID, viewerRole string) (*car.CarResponse, error) {
	found, err := s.carService.GetByIdentifier(ctx, carID.String(), viewerID, viewerRole)
	if err != nil {
		return nil, err
	}
	if found.Status != car.StatusApproved {
		return nil, common.ErrUnprocessableEntity.WithDetails("Both cars must be approved listings to be swapped.")
	}
	if found.ListingType != car.ListingSwap && found.ListingType != car.ListingBoth {
		return nil, common.ErrUnprocessableEntity.WithDetails("This car is not listed for swapping.")
	}
	return found, nil
}

func toResponses(swaps []*Swap) []SwapResponse {
	responses := make([]SwapResponse, len(swaps))
	for i, sw := range swaps {
		responses[i] = toSwapResponse(sw)
	}
	return responses
}
