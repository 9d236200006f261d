// File: internal/car/handler_integration_test.go
package car

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carmarket_backend/internal/auth"
	"carmarket_backend/internal/common"
	"carmarket_backend/internal/config"
	"carmarket_backend/internal/middleware"
	"carmarket_backend/internal/platform/database"
	"carmarket_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupCarAPI wires the car routes against a real in-memory sqlite database
// and real JWT middleware, mirroring the production wiring in internal/app.
func setupCarAPI(t *testing.T) (*gin.Engine, auth.TokenService, func(email, role string) *user.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DBDriver:  "sqlite",
		SQLiteDSN: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		LogLevel:  "silent",
		JWTSecret: "integration-test-secret",
		JWTExpiry: time.Hour,
	}

	db, err := database.NewGORM(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseGORMDB(db) })
	require.NoError(t, db.AutoMigrate(&user.User{}, &Car{}))

	logger := zap.NewNop()
	tokenService := auth.NewTokenService(cfg)
	repo := NewGORMRepository(db, logger)
	service := NewService(repo, logger)
	handler := NewHandler(service, logger)

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1,
		middleware.OptionalAuthMiddleware(tokenService, logger),
		middleware.AuthMiddleware(tokenService, logger),
		middleware.RoleAuthMiddleware(common.RoleAdmin),
	)

	seedUser := func(email, role string) *user.User {
		u := &user.User{Email: email, Name: "Test " + role, PasswordHash: "x", Role: role}
		require.NoError(t, db.Create(u).Error)
		return u
	}

	return router, tokenService, seedUser
}

func bearerFor(t *testing.T, tokenService auth.TokenService, u *user.User) string {
	t.Helper()
	token, _, err := tokenService.Generate(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return common.AuthorizationTypeBearer + " " + token
}

func doJSON(router *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeader, bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "success", envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func camryCreateRequest() CreateCarRequest {
	return CreateCarRequest{
		Title:        "Toyota Camry 2020",
		Brand:        "Toyota",
		Model:        "Camry",
		Year:         2020,
		Price:        24500,
		Mileage:      35000,
		Transmission: TransmissionAutomatic,
		FuelType:     FuelPetrol,
		Images:       []string{"https://example.com/camry.jpg"},
		Description:  "Well maintained sedan with a full service history.",
		ListingType:  ListingSale,
		Location:     "Los Angeles, CA",
	}
}

func TestCarLifecycleAPI(t *testing.T) {
	router, tokenService, seedUser := setupCarAPI(t)

	owner := seedUser("owner@test.com", common.RoleUser)
	stranger := seedUser("stranger@test.com", common.RoleUser)
	admin := seedUser("admin@test.com", common.RoleAdmin)

	ownerBearer := bearerFor(t, tokenService, owner)
	strangerBearer := bearerFor(t, tokenService, stranger)
	adminBearer := bearerFor(t, tokenService, admin)

	// Creating without a token is rejected before the handler runs.
	w := doJSON(router, http.MethodPost, "/api/v1/cars", "", camryCreateRequest())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The owner submits a listing; it enters review as pending.
	w = doJSON(router, http.MethodPost, "/api/v1/cars", ownerBearer, camryCreateRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	var created CarResponse
	decodeData(t, w, &created)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, CategorySedans, created.Category)
	assert.Equal(t, owner.ID, created.OwnerID)
	require.NotEmpty(t, created.Slug)

	// Pending listings are invisible to the public browse.
	w = doJSON(router, http.MethodGet, "/api/v1/cars", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var visible []CarResponse
	decodeData(t, w, &visible)
	assert.Empty(t, visible)

	// A stranger probing the pending listing by ID gets a 404, not a 403.
	detailPath := "/api/v1/cars/" + created.ID.String()
	w = doJSON(router, http.MethodGet, detailPath, strangerBearer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner can still see their own pending listing.
	w = doJSON(router, http.MethodGet, detailPath, ownerBearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The review queue is admin-only.
	w = doJSON(router, http.MethodGet, "/api/v1/cars/admin/pending", strangerBearer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/cars/admin/pending", adminBearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []CarResponse
	decodeData(t, w, &pending)
	require.Len(t, pending, 1)

	// Approval publishes the listing.
	w = doJSON(router, http.MethodPost, "/api/v1/cars/admin/"+created.ID.String()+"/approve", adminBearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var approved CarResponse
	decodeData(t, w, &approved)
	assert.Equal(t, StatusApproved, approved.Status)

	w = doJSON(router, http.MethodGet, "/api/v1/cars", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &visible)
	require.Len(t, visible, 1)
	assert.Equal(t, created.ID, visible[0].ID)

	// The public detail endpoint resolves slugs as well as IDs.
	w = doJSON(router, http.MethodGet, "/api/v1/cars/"+created.Slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bySlug CarResponse
	decodeData(t, w, &bySlug)
	assert.Equal(t, created.ID, bySlug.ID)

	// Only the owner may mark it sold.
	w = doJSON(router, http.MethodPost, detailPath+"/sold", strangerBearer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, detailPath+"/sold", ownerBearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sold CarResponse
	decodeData(t, w, &sold)
	assert.Equal(t, StatusSold, sold.Status)

	// Sold listings stay browsable.
	w = doJSON(router, http.MethodGet, "/api/v1/cars", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &visible)
	require.Len(t, visible, 1)
	assert.Equal(t, StatusSold, visible[0].Status)
}

func TestBrowseFiltersAndSortAPI(t *testing.T) {
	router, tokenService, seedUser := setupCarAPI(t)

	owner := seedUser("browse-owner@test.com", common.RoleUser)
	admin := seedUser("browse-admin@test.com", common.RoleAdmin)
	ownerBearer := bearerFor(t, tokenService, owner)
	adminBearer := bearerFor(t, tokenService, admin)

	submit := func(mutate func(*CreateCarRequest)) CarResponse {
		req := camryCreateRequest()
		mutate(&req)
		w := doJSON(router, http.MethodPost, "/api/v1/cars", ownerBearer, req)
		require.Equal(t, http.StatusCreated, w.Code)
		var created CarResponse
		decodeData(t, w, &created)

		w = doJSON(router, http.MethodPost, "/api/v1/cars/admin/"+created.ID.String()+"/approve", adminBearer, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var approved CarResponse
		decodeData(t, w, &approved)
		return approved
	}

	camry := submit(func(r *CreateCarRequest) {})
	tesla := submit(func(r *CreateCarRequest) {
		r.Title = "Tesla Model 3 2022"
		r.Brand = "Tesla"
		r.Model = "Model 3"
		r.Year = 2022
		r.Price = 42000
		r.FuelType = FuelElectric
	})
	civic := submit(func(r *CreateCarRequest) {
		r.Title = "Honda Civic 2019"
		r.Brand = "Honda"
		r.Model = "Civic"
		r.Year = 2019
		r.Price = 22000
		r.Transmission = TransmissionManual
	})

	var results []CarResponse

	// Category filter isolates the derived electric class.
	w := doJSON(router, http.MethodGet, "/api/v1/cars?category=electric", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &results)
	require.Len(t, results, 1)
	assert.Equal(t, tesla.ID, results[0].ID)

	// Price range bounds are inclusive.
	w = doJSON(router, http.MethodGet, "/api/v1/cars?min_price=22000&max_price=24500&sort=cheapest", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &results)
	require.Len(t, results, 2)
	assert.Equal(t, civic.ID, results[0].ID)
	assert.Equal(t, camry.ID, results[1].ID)

	// Brand matching is exact and case-sensitive.
	w = doJSON(router, http.MethodGet, "/api/v1/cars?brand=toyota", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &results)
	assert.Empty(t, results)

	w = doJSON(router, http.MethodGet, "/api/v1/cars?brand=Toyota", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &results)
	require.Len(t, results, 1)
	assert.Equal(t, camry.ID, results[0].ID)

	// An unknown sort key is rejected at binding time as a validation error.
	w = doJSON(router, http.MethodGet, "/api/v1/cars?sort=priceiest", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
