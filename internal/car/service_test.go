// File: internal/car/service_test.go
package car

import (
	"context"
	"strings"
	"testing"

	"carmarket_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the car Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, car *Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Car), args.Error(1)
}

func (m *MockRepository) FindBySlug(ctx context.Context, slug string) (*Car, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Car), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]*Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Car), args.Error(1)
}

func (m *MockRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Car, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Car), args.Error(1)
}

func (m *MockRepository) FindByStatus(ctx context.Context, status Status) ([]*Car, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Car), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, car *Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CountByStatus(ctx context.Context, status Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo Repository) Service {
	return NewService(repo, zap.NewNop())
}

func validCreateRequest() CreateCarRequest {
	return CreateCarRequest{
		Title:        "Toyota Camry 2020",
		Brand:        "Toyota",
		Model:        "Camry",
		Year:         2020,
		Price:        24500,
		Mileage:      30000,
		Transmission: TransmissionAutomatic,
		FuelType:     FuelPetrol,
		Images:       []string{"https://example.com/camry.jpg"},
		Description:  "Well maintained, single owner, full service history.",
		ListingType:  ListingSale,
		Location:     "Seattle, WA",
	}
}

func TestService_Create_StartsPendingWithSlug(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ownerID := uuid.New()

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*car.Car")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Car).ID = uuid.New()
		}).Return(nil)

	resp, err := service.Create(context.Background(), ownerID, validCreateRequest())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, ownerID, resp.OwnerID)
	assert.True(t, strings.HasPrefix(resp.Slug, "toyota-camry-2020-2020-"), "unexpected slug %q", resp.Slug)
	assert.Equal(t, CategorySedans, resp.Category)
	mockRepo.AssertExpectations(t)
}

func TestService_Update_RejectsNonOwner(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	carID := uuid.New()
	ownerID := uuid.New()
	stranger := uuid.New()
	existing := &Car{OwnerID: ownerID, Status: StatusApproved}
	existing.ID = carID
	mockRepo.On("FindByID", mock.Anything, carID).Return(existing, nil)

	newTitle := "Updated Toyota Camry"
	_, err := service.Update(context.Background(), carID, stranger, common.RoleUser, UpdateCarRequest{Title: &newTitle})

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_AdminBypassesOwnership(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	carID := uuid.New()
	existing := &Car{Title: "Old Title Here", OwnerID: uuid.New(), Status: StatusApproved}
	existing.ID = carID
	mockRepo.On("FindByID", mock.Anything, carID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, existing).Return(nil)

	newTitle := "Admin Adjusted Title"
	resp, err := service.Update(context.Background(), carID, uuid.New(), common.RoleAdmin, UpdateCarRequest{Title: &newTitle})

	require.NoError(t, err)
	assert.Equal(t, "Admin Adjusted Title", resp.Title)
	mockRepo.AssertExpectations(t)
}

func TestService_MarkSold_RequiresApprovedStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	carID := uuid.New()
	ownerID := uuid.New()
	pending := &Car{OwnerID: ownerID, Status: StatusPending}
	pending.ID = carID
	mockRepo.On("FindByID", mock.Anything, carID).Return(pending, nil)

	_, err := service.MarkSold(context.Background(), carID, ownerID, common.RoleUser)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrUnprocessableEntity.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_MarkSold_TransitionsApprovedListing(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	carID := uuid.New()
	ownerID := uuid.New()
	approved := &Car{OwnerID: ownerID, Status: StatusApproved}
	approved.ID = carID
	mockRepo.On("FindByID", mock.Anything, carID).Return(approved, nil)
	mockRepo.On("UpdateStatus", mock.Anything, carID, StatusSold).Return(nil)

	resp, err := service.MarkSold(context.Background(), carID, ownerID, common.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, StatusSold, resp.Status)
	mockRepo.AssertExpectations(t)
}

func TestService_AdminApprove_OnlyPending(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	carID := uuid.New()
	sold := &Car{OwnerID: uuid.New(), Status: StatusSold}
	sold.ID = carID
	mockRepo.On("FindByID", mock.Anything, carID).Return(sold, nil)

	_, err := service.AdminApprove(context.Background(), carID)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrUnprocessableEntity.Code, apiErr.Code)
}

func TestService_Browse_RunsEngineOverSnapshot(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	approved := &Car{Title: "Toyota Camry", Brand: "Toyota", Price: 24500, Status: StatusApproved, FuelType: FuelPetrol}
	pending := &Car{Title: "Honda Civic", Brand: "Honda", Price: 18000, Status: StatusPending, FuelType: FuelPetrol}
	mockRepo.On("FindAll", mock.Anything).Return([]*Car{approved, pending}, nil)

	results, err := service.Browse(context.Background(), BrowseQuery{})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Toyota Camry", results[0].Title)
	assert.Equal(t, CategorySedans, results[0].Category)
}

func TestService_GetByIdentifier_HidesPendingFromStrangers(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	carID := uuid.New()
	ownerID := uuid.New()
	pending := &Car{OwnerID: ownerID, Status: StatusPending}
	pending.ID = carID
	mockRepo.On("FindByID", mock.Anything, carID).Return(pending, nil)

	// Strangers get not-found, never forbidden, so pending listings do not leak.
	_, err := service.GetByIdentifier(context.Background(), carID.String(), uuid.New(), common.RoleUser)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)

	// The owner still sees it.
	resp, err := service.GetByIdentifier(context.Background(), carID.String(), ownerID, common.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)

	// So does an admin.
	resp, err = service.GetByIdentifier(context.Background(), carID.String(), uuid.New(), common.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
}
