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
	"catalog-import-service/internal/services"
)

// MockImportService is a mock implementation of ImportServiceInterface
type MockImportService struct {
	mock.Mock
}

var _ services.ImportServiceInterface = (*MockImportService)(nil)

func (m *MockImportService) Import(ctx context.Context, records []json.RawMessage, opts services.ImportOptions) (*models.ImportSummary, error) {
	args := m.Called(ctx, records, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportSummary), args.Error(1)
}

func (m *MockImportService) GetBatchStatus(ctx context.Context, batchID uint) (*models.ImportBatch, []models.ImportLog, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.ImportBatch), args.Get(1).([]models.ImportLog), args.Error(2)
}

func setupImportRouter(service services.ImportServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	handler := NewImportHandler(service, 1, 100, logger)

	router := gin.New()
	router.POST("/api/v1/products/import", handler.ImportProducts)
	router.GET("/api/v1/products/import/template", handler.GetImportTemplate)
	router.GET("/api/v1/products/import/:id", handler.GetImportStatus)
	return router
}

func TestImportProducts_Success(t *testing.T) {
	service := new(MockImportService)
	summary := &models.ImportSummary{
		BatchID:      1,
		TotalRecords: 2,
		Succeeded:    2,
		Added:        2,
		Message:      "Import completed. Added: 2, Updated: 0, Failed: 0",
	}
	service.On("Import", mock.Anything, mock.Anything, mock.Anything).Return(summary, nil)

	router := setupImportRouter(service)
	body := `{"mode":"add","products":[{"name":"A","price":1},{"name":"B","price":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestImportProducts_InvalidJSON(t *testing.T) {
	service := new(MockImportService)
	router := setupImportRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", bytes.NewBufferString(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid JSON", resp.Error)
	service.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportProducts_MissingProducts(t *testing.T) {
	service := new(MockImportService)
	router := setupImportRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", bytes.NewBufferString(`{"mode":"add"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, `Field "products" is required and must be an array`, resp.Error)
}

func TestImportProducts_InvalidMode(t *testing.T) {
	service := new(MockImportService)
	router := setupImportRouter(service)

	body := `{"mode":"upsert","products":[{"name":"A","price":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, `Field "mode" must be add, update, or merge`, resp.Error)
}

func TestImportProducts_DefaultsToMerge(t *testing.T) {
	service := new(MockImportService)
	summary := &models.ImportSummary{BatchID: 1, TotalRecords: 1, Succeeded: 1}
	service.On("Import", mock.Anything, mock.Anything, mock.MatchedBy(func(opts services.ImportOptions) bool {
		return opts.Mode == models.ModeMerge
	})).Return(summary, nil)

	router := setupImportRouter(service)
	body := `{"products":[{"name":"A","price":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/import", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestGetImportStatus_NotFound(t *testing.T) {
	service := new(MockImportService)
	service.On("GetBatchStatus", mock.Anything, uint(99)).Return(nil, nil, services.ErrBatchNotFound)

	router := setupImportRouter(service)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/import/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Import batch not found", resp.Error)
}

func TestGetImportStatus_InvalidID(t *testing.T) {
	service := new(MockImportService)
	router := setupImportRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/import/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetImportStatus_Success(t *testing.T) {
	service := new(MockImportService)
	batch := &models.ImportBatch{ID: 3, Status: models.BatchStatusCompleted}
	logs := []models.ImportLog{{ID: 1, ImportBatchID: 3, Status: models.LogStatusSuccess}}
	service.On("GetBatchStatus", mock.Anything, uint(3)).Return(batch, logs, nil)

	router := setupImportRouter(service)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/import/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetImportTemplate_JSON(t *testing.T) {
	service := new(MockImportService)
	router := setupImportRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/import/template", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestGetImportTemplate_CSV(t *testing.T) {
	service := new(MockImportService)
	router := setupImportRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/import/template?format=csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "name")
	assert.Contains(t, w.Body.String(), "price")
}

func TestGetImportTemplate_XLSX(t *testing.T) {
	service := new(MockImportService)
	router := setupImportRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/import/template?format=xlsx", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}
