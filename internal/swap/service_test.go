// File: internal/swap/service_test.go
package swap

import (
	"context"
	"testing"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the swap Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, swap *Swap) error {
	args := m.Called(ctx, swap)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Swap, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Swap), args.Error(1)
}

func (m *MockRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*Swap, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Swap), args.Error(1)
}

func (m *MockRepository) FindPendingByParticipant(ctx context.Context, userID uuid.UUID) ([]*Swap, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Swap), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// stubCarService satisfies car.Service with only the methods the swap
// workflow touches.
type stubCarService struct {
	car.Service
	cars    map[uuid.UUID]*car.CarResponse
	swapped []uuid.UUID
}

func (s *stubCarService) GetByIdentifier(ctx context.Context, identifier string, viewerID uuid.UUID, viewerRole string) (*car.CarResponse, error) {
	id, err := uuid.Parse(identifier)
	if err != nil {
		return nil, common.ErrBadRequest
	}
	found, ok := s.cars[id]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Car listing not found.")
	}
	return found, nil
}

func (s *stubCarService) MarkSwapped(ctx context.Context, id uuid.UUID) error {
	s.swapped = append(s.swapped, id)
	return nil
}

func swappable(ownerID uuid.UUID, listingType car.ListingType, status car.Status) *car.CarResponse {
	return &car.CarResponse{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Status:      status,
		ListingType: listingType,
	}
}

func TestService_Create_HappyPath(t *testing.T) {
	mockRepo := new(MockRepository)
	requesterID := uuid.New()
	ownerID := uuid.New()

	offered := swappable(requesterID, car.ListingSwap, car.StatusApproved)
	requested := swappable(ownerID, car.ListingBoth, car.StatusApproved)
	carStub := &stubCarService{cars: map[uuid.UUID]*car.CarResponse{
		offered.ID:   offered,
		requested.ID: requested,
	}}
	service := NewService(mockRepo, carStub, zap.NewNop())

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*swap.Swap")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Swap).ID = uuid.New()
		}).Return(nil)

	resp, err := service.Create(context.Background(), requesterID, CreateSwapRequest{
		RequesterCarID: offered.ID,
		RequestedCarID: requested.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, ownerID, resp.OwnerID)
	assert.Equal(t, requesterID, resp.RequesterID)
	mockRepo.AssertExpectations(t)
}

func TestService_Create_RejectsSaleOnlyListing(t *testing.T) {
	mockRepo := new(MockRepository)
	requesterID := uuid.New()

	offered := swappable(requesterID, car.ListingSale, car.StatusApproved)
	carStub := &stubCarService{cars: map[uuid.UUID]*car.CarResponse{offered.ID: offered}}
	service := NewService(mockRepo, carStub, zap.NewNop())

	_, err := service.Create(context.Background(), requesterID, CreateSwapRequest{
		RequesterCarID: offered.ID,
		RequestedCarID: uuid.New(),
	})

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrUnprocessableEntity.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_RejectsOwnCarRequest(t *testing.T) {
	mockRepo := new(MockRepository)
	requesterID := uuid.New()

	offered := swappable(requesterID, car.ListingSwap, car.StatusApproved)
	requested := swappable(requesterID, car.ListingSwap, car.StatusApproved)
	carStub := &stubCarService{cars: map[uuid.UUID]*car.CarResponse{
		offered.ID:   offered,
		requested.ID: requested,
	}}
	service := NewService(mockRepo, carStub, zap.NewNop())

	_, err := service.Create(context.Background(), requesterID, CreateSwapRequest{
		RequesterCarID: offered.ID,
		RequestedCarID: requested.ID,
	})

	require.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Accept_OnlyOwnerDecides(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, &stubCarService{}, zap.NewNop())

	swapID := uuid.New()
	ownerID := uuid.New()
	pending := &Swap{OwnerID: ownerID, RequesterID: uuid.New(), Status: StatusPending}
	pending.ID = swapID
	mockRepo.On("FindByID", mock.Anything, swapID).Return(pending, nil)

	_, err := service.Accept(context.Background(), swapID, pending.RequesterID)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Accept_TransitionsPending(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, &stubCarService{}, zap.NewNop())

	swapID := uuid.New()
	ownerID := uuid.New()
	pending := &Swap{OwnerID: ownerID, RequesterID: uuid.New(), Status: StatusPending}
	pending.ID = swapID
	mockRepo.On("FindByID", mock.Anything, swapID).Return(pending, nil)
	mockRepo.On("UpdateStatus", mock.Anything, swapID, StatusAccepted).Return(nil)

	resp, err := service.Accept(context.Background(), swapID, ownerID)

	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, resp.Status)
	mockRepo.AssertExpectations(t)
}

func TestService_Complete_RequiresAcceptedAndRetiresBothCars(t *testing.T) {
	mockRepo := new(MockRepository)
	requesterID := uuid.New()
	ownerID := uuid.New()

	offered := swappable(requesterID, car.ListingSwap, car.StatusApproved)
	requested := swappable(ownerID, car.ListingBoth, car.StatusApproved)
	carStub := &stubCarService{cars: map[uuid.UUID]*car.CarResponse{
		offered.ID:   offered,
		requested.ID: requested,
	}}
	service := NewService(mockRepo, carStub, zap.NewNop())

	swapID := uuid.New()
	accepted := &Swap{
		RequesterCarID: offered.ID,
		RequestedCarID: requested.ID,
		RequesterID:    requesterID,
		OwnerID:        ownerID,
		Status:         StatusAccepted,
	}
	accepted.ID = swapID
	mockRepo.On("FindByID", mock.Anything, swapID).Return(accepted, nil)
	mockRepo.On("UpdateStatus", mock.Anything, swapID, StatusCompleted).Return(nil)

	resp, err := service.Complete(context.Background(), swapID, accepted.OwnerID)

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.ElementsMatch(t, []uuid.UUID{accepted.RequesterCarID, accepted.RequestedCarID}, carStub.swapped)
	mockRepo.AssertExpectations(t)
}

func TestService_Complete_LeavesBothCarsWhenOneWasSold(t *testing.T) {
	mockRepo := new(MockRepository)
	requesterID := uuid.New()
	ownerID := uuid.New()

	// The requested car was sold between accept and complete.
	offered := swappable(requesterID, car.ListingSwap, car.StatusApproved)
	requested := swappable(ownerID, car.ListingBoth, car.StatusSold)
	carStub := &stubCarService{cars: map[uuid.UUID]*car.CarResponse{
		offered.ID:   offered,
		requested.ID: requested,
	}}
	service := NewService(mockRepo, carStub, zap.NewNop())

	swapID := uuid.New()
	accepted := &Swap{
		RequesterCarID: offered.ID,
		RequestedCarID: requested.ID,
		RequesterID:    requesterID,
		OwnerID:        ownerID,
		Status:         StatusAccepted,
	}
	accepted.ID = swapID
	mockRepo.On("FindByID", mock.Anything, swapID).Return(accepted, nil)

	_, err := service.Complete(context.Background(), swapID, requesterID)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrUnprocessableEntity.Code, apiErr.Code)
	// Neither listing was retired and the swap stays accepted.
	assert.Empty(t, carStub.swapped)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Complete_RejectsPending(t *testing.T) {
	mockRepo := new(MockRepository)
	carStub := &stubCarService{}
	service := NewService(mockRepo, carStub, zap.NewNop())

	swapID := uuid.New()
	pending := &Swap{OwnerID: uuid.New(), RequesterID: uuid.New(), Status: StatusPending}
	pending.ID = swapID
	mockRepo.On("FindByID", mock.Anything, swapID).Return(pending, nil)

	_, err := service.Complete(context.Background(), swapID, pending.OwnerID)

	require.Error(t, err)
	assert.Empty(t, carStub.swapped)
}
