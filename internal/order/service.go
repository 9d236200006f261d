// File: internal/order/service.go
package order

import (
	"context"
	"fmt"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for purchases.
type Service interface {
	Create(ctx context.Context, buyerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*OrderResponse, error)
	// Complete is the seller's confirmation; it retires the listing as sold.
	Complete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*OrderResponse, error)
	// Cancel may be called by either party while the order is pending.
	Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*OrderResponse, error)
	// AdminListAll pages through every order on the marketplace.
	AdminListAll(ctx context.Context, page, pageSize int) ([]OrderResponse, *common.Pagination, error)
	// AdminComplete settles any pending order on the seller's behalf.
	AdminComplete(ctx context.Context, id uuid.UUID) (*OrderResponse, error)
}

// ServiceImplementation implements the Service interface.
type ServiceImplementation struct {
	repo       Repository
	carService car.Service
	logger     *zap.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, carService car.Service, logger *zap.Logger) Service {
	return &ServiceImplementation{repo: repo, carService: carService, logger: logger.Named("OrderService")}
}

func (s *ServiceImplementation) Create(ctx context.Context, buyerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	listing, err := s.carService.GetByIdentifier(ctx, req.CarID.String(), buyerID, common.RoleUser)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID == buyerID {
		return nil, common.ErrUnprocessableEntity.WithDetails("You cannot buy your own car.")
	}
	if listing.Status != car.StatusApproved {
		return nil, common.ErrUnprocessableEntity.WithDetails("This car is not available for purchase.")
	}
	if listing.ListingType != car.ListingSale && listing.ListingType != car.ListingBoth {
		return nil, common.ErrUnprocessableEntity.WithDetails("This car is not listed for sale.")
	}

	order := &Order{
		CarID:    listing.ID,
		BuyerID:  buyerID,
		SellerID: listing.OwnerID,
		Price:    listing.Price,
		Status:   StatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("car_id", listing.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.Float64("price", order.Price))

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *ServiceImplementation) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.repo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses, nil
}

func (s *ServiceImplementation) Get(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*OrderResponse, error) {
	order, err := s.participantOrder(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *ServiceImplementation) Complete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*OrderResponse, error) {
	order, err := s.participantOrder(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != actorID {
		return nil, common.ErrForbidden.WithDetails("Only the seller can complete an order.")
	}
	return s.settle(ctx, order, common.RoleUser)
}

func (s *ServiceImplementation) AdminListAll(ctx context.Context, page, pageSize int) ([]OrderResponse, *common.Pagination, error) {
	pq := common.PaginationQuery{Page: page, PageSize: pageSize}
	orders, total, err := s.repo.FindAll(ctx, pq.Offset(), pq.Limit())
	if err != nil {
		return nil, nil, err
	}
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses, common.NewPagination(total, pq.Page, pq.PageSize), nil
}

func (s *ServiceImplementation) AdminComplete(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.settle(ctx, order, common.RoleAdmin)
}

// settle completes a pending order and retires the car as sold. The role
// decides whether the car service treats the sale as an owner or admin action.
func (s *ServiceImplementation) settle(ctx context.Context, order *Order, actorRole string) (*OrderResponse, error) {
	if order.Status != StatusPending {
		return nil, common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only pending orders can be completed; current status is '%s'.", order.Status))
	}

	if _, err := s.carService.MarkSold(ctx, order.CarID, order.SellerID, actorRole); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, order.ID, StatusCompleted); err != nil {
		return nil, err
	}
	order.Status = StatusCompleted
	s.logger.Info("Order completed", zap.String("order_id", order.ID.String()))

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *ServiceImplementation) Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*OrderResponse, error) {
	order, err := s.participantOrder(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if order.Status != StatusPending {
		return nil, common.ErrUnprocessableEntity.WithDetails(
			fmt.Sprintf("Only pending orders can be cancelled; current status is '%s'.", order.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = StatusCancelled
	s.logger.Info("Order cancelled", zap.String("order_id", id.String()), zap.String("actor_id", actorID.String()))

	resp := toOrderResponse(order)
	return &resp, nil
}

// participantOrder fetches an order and verifies the caller is the buyer or
// seller. Outsiders get not-found.
func (s *ServiceImplementation) participantOrder(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != callerID && order.SellerID != callerID {
		return nil, common.ErrNotFound.WithDetails("Order not found.")
	}
	return order, nil
}
