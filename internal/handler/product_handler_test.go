package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"supermarket-prices/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService is a mock implementation of catalog.Service.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, id, name string) (*model.Product, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func testProducts() []model.Product {
	now := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	return []model.Product{
		{
			ID:           "282780",
			Name:         "Fresh Orange Juice",
			Size:         "250ml",
			CurrentPrice: 4.00,
			SourceSite:   "countdown.co.nz",
			Category:     []string{"juice"},
			PriceHistory: []model.DatedPrice{{Date: now, Price: 4.00}},
		},
		{
			ID:           "123456",
			Name:         "Wheat Crackers",
			Size:         "200g",
			CurrentPrice: 3.20,
			SourceSite:   "countdown.co.nz",
			Category:     []string{"biscuits-crackers"},
			PriceHistory: []model.DatedPrice{{Date: now, Price: 3.20}},
		},
	}
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		method         string
		queryParams    string
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectService  bool
		limit          int
		offset         int
	}{
		{
			name:           "Success with default pagination",
			method:         http.MethodGet,
			mockReturn:     testProducts(),
			expectedStatus: http.StatusOK,
			expectService:  true,
			limit:          10,
			offset:         0,
		},
		{
			name:           "Success with custom pagination",
			method:         http.MethodGet,
			queryParams:    "?limit=5&offset=10",
			mockReturn:     testProducts(),
			expectedStatus: http.StatusOK,
			expectService:  true,
			limit:          5,
			offset:         10,
		},
		{
			name:           "Invalid limit parameter",
			method:         http.MethodGet,
			queryParams:    "?limit=invalid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid offset parameter",
			method:         http.MethodGet,
			queryParams:    "?offset=invalid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Service error",
			method:         http.MethodGet,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
			limit:          10,
			offset:         0,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockCatalogService)
			if tt.expectService {
				service.On("List", mock.Anything, tt.limit, tt.offset).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewProductHandler(service, logger)
			req := httptest.NewRequest(tt.method, "/api/products"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			h.List(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}

func TestProductHandler_ListEmptyIsArray(t *testing.T) {
	service := new(MockCatalogService)
	service.On("List", mock.Anything, 10, 0).Return([]model.Product(nil), nil)

	h := NewProductHandler(service, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestProductHandler_Get(t *testing.T) {
	logger := zerolog.Nop()
	product := testProducts()[0]

	tests := []struct {
		name           string
		path           string
		mockID         string
		mockName       string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success by bare id",
			path:           "/api/products/282780",
			mockID:         "282780",
			mockName:       "",
			mockReturn:     &product,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Success by identity",
			path:           "/api/products/282780?name=Fresh+Orange+Juice",
			mockID:         "282780",
			mockName:       "Fresh Orange Juice",
			mockReturn:     &product,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			path:           "/api/products/999999",
			mockID:         "999999",
			mockName:       "",
			mockError:      model.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Service error",
			path:           "/api/products/282780",
			mockID:         "282780",
			mockName:       "",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
		{
			name:           "Missing product id",
			path:           "/api/products/",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Nested path rejected",
			path:           "/api/products/282780/history",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockCatalogService)
			if tt.expectService {
				service.On("Get", mock.Anything, tt.mockID, tt.mockName).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewProductHandler(service, logger)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			h.Get(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetResponseBody(t *testing.T) {
	product := testProducts()[0]
	service := new(MockCatalogService)
	service.On("Get", mock.Anything, "282780", "").Return(&product, nil)

	h := NewProductHandler(service, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/products/282780", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Fresh Orange Juice", got.Name)
	assert.Equal(t, 4.00, got.CurrentPrice)
	require.Len(t, got.PriceHistory, 1)
}
