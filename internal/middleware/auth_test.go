package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalog-import-service/internal/repository"
)

// MockTokenRepository is a mock implementation of TokenRepositoryInterface
type MockTokenRepository struct {
	mock.Mock
}

var _ repository.TokenRepositoryInterface = (*MockTokenRepository)(nil)

func (m *MockTokenRepository) IsValidToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func setupAuthRouter(tokens repository.TokenRepositoryInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	router := gin.New()
	router.Use(APITokenAuth(tokens, logger))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAPITokenAuth_MissingHeader(t *testing.T) {
	tokens := new(MockTokenRepository)
	router := setupAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API token required")
	tokens.AssertNotCalled(t, "IsValidToken", mock.Anything, mock.Anything)
}

func TestAPITokenAuth_InvalidToken(t *testing.T) {
	tokens := new(MockTokenRepository)
	tokens.On("IsValidToken", mock.Anything, "bad-token").Return(false, nil)
	router := setupAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API token")
}

func TestAPITokenAuth_LookupErrorRejects(t *testing.T) {
	tokens := new(MockTokenRepository)
	tokens.On("IsValidToken", mock.Anything, "any-token").Return(false, errors.New("db down"))
	router := setupAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "any-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPITokenAuth_ValidToken(t *testing.T) {
	tokens := new(MockTokenRepository)
	tokens.On("IsValidToken", mock.Anything, "good-token").Return(true, nil)
	router := setupAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	tokens.AssertExpectations(t)
}
