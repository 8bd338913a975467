package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/repository"
)

// CategoriesHandler handles category CRUD requests
type CategoriesHandler struct {
	repo       repository.CatalogRepositoryInterface
	languageID int
	logger     *logrus.Logger
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(repo repository.CatalogRepositoryInterface, languageID int, logger *logrus.Logger) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, languageID: languageID, logger: logger}
}

// ListCategories godoc
// @Summary List categories
// @Description Returns all categories with product counts
// @Tags categories
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/categories [get]
func (h *CategoriesHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context(), h.languageID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list categories")
		respondError(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetCategory godoc
// @Summary Get a category
// @Description Returns a category with its descriptions and children
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/categories/{id} [get]
func (h *CategoriesHandler) GetCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	detail, err := h.repo.GetCategory(c.Request.Context(), uint(categoryID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get category")
		respondError(c, http.StatusInternalServerError, "Failed to get category")
		return
	}
	respondOK(c, http.StatusOK, detail)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/categories [post]
func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, `Field "name" is required`)
		return
	}

	categoryID, err := h.repo.CreateCategory(c.Request.Context(), &req, h.languageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusBadRequest, "Parent category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to create category")
		respondError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"category_id": categoryID})
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/categories/{id} [put]
func (h *CategoriesHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.repo.UpdateCategory(c.Request.Context(), uint(categoryID), &req, h.languageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update category")
		respondError(c, http.StatusInternalServerError, "Failed to update category")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"category_id": uint(categoryID)})
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/categories/{id} [delete]
func (h *CategoriesHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.repo.DeleteCategory(c.Request.Context(), uint(categoryID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete category")
		respondError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
