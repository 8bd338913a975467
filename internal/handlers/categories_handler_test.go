package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/repository"
)

// MockCatalogRepository is a mock implementation of CatalogRepositoryInterface
type MockCatalogRepository struct {
	mock.Mock
}

var _ repository.CatalogRepositoryInterface = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) FindProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogRepository) SKUExists(ctx context.Context, sku string, excludeProductID uint) (bool, error) {
	args := m.Called(ctx, sku, excludeProductID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) ManufacturerExists(ctx context.Context, manufacturerID int64) (bool, error) {
	args := m.Called(ctx, manufacturerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CreateProduct(ctx context.Context, rec *models.ImportRecord, languageID int) (uint, error) {
	args := m.Called(ctx, rec, languageID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockCatalogRepository) UpdateProduct(ctx context.Context, productID uint, rec *models.ImportRecord, languageID int) error {
	args := m.Called(ctx, productID, rec, languageID)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context, languageID int) ([]models.CategorySummary, error) {
	args := m.Called(ctx, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategorySummary), args.Error(1)
}

func (m *MockCatalogRepository) GetCategory(ctx context.Context, categoryID uint) (*models.CategoryDetail, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CategoryDetail), args.Error(1)
}

func (m *MockCatalogRepository) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest, languageID int) (uint, error) {
	args := m.Called(ctx, req, languageID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockCatalogRepository) UpdateCategory(ctx context.Context, categoryID uint, req *models.UpdateCategoryRequest, languageID int) error {
	args := m.Called(ctx, categoryID, req, languageID)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCategory(ctx context.Context, categoryID uint) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func setupCategoriesRouter(repo repository.CatalogRepositoryInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	handler := NewCategoriesHandler(repo, 1, logger)

	router := gin.New()
	router.GET("/api/v1/categories", handler.ListCategories)
	router.GET("/api/v1/categories/:id", handler.GetCategory)
	router.POST("/api/v1/categories", handler.CreateCategory)
	router.PUT("/api/v1/categories/:id", handler.UpdateCategory)
	router.DELETE("/api/v1/categories/:id", handler.DeleteCategory)
	return router
}

func TestListCategories(t *testing.T) {
	repo := new(MockCatalogRepository)
	summaries := []models.CategorySummary{
		{CategoryID: 1, Name: "Electronics", ProductCount: 12},
		{CategoryID: 2, Name: "Accessories", ParentID: 1, ProductCount: 5},
	}
	repo.On("ListCategories", mock.Anything, 1).Return(summaries, nil)

	router := setupCategoriesRouter(repo)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestGetCategory_NotFound(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("GetCategory", mock.Anything, uint(99)).Return(nil, repository.ErrNotFound)

	router := setupCategoriesRouter(repo)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Category not found")
}

func TestCreateCategory(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("CreateCategory", mock.Anything, mock.Anything, 1).Return(uint(10), nil)

	router := setupCategoriesRouter(repo)
	body := `{"name":"Electronics"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCategory_MissingName(t *testing.T) {
	repo := new(MockCatalogRepository)
	router := setupCategoriesRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `Field \"name\" is required`)
	repo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("UpdateCategory", mock.Anything, uint(44), mock.Anything, 1).Return(repository.ErrNotFound)

	router := setupCategoriesRouter(repo)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/categories/44", bytes.NewBufferString(`{"name":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategory(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("DeleteCategory", mock.Anything, uint(7)).Return(nil)

	router := setupCategoriesRouter(repo)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}
