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

// LogsHandler handles import log and statistics requests
type LogsHandler struct {
	repo   repository.ImportLogRepositoryInterface
	logger *logrus.Logger
}

// NewLogsHandler creates a new logs handler
func NewLogsHandler(repo repository.ImportLogRepositoryInterface, logger *logrus.Logger) *LogsHandler {
	return &LogsHandler{repo: repo, logger: logger}
}

// ListBatches godoc
// @Summary List import batches
// @Description Returns import batches newest first, optionally filtered by status
// @Tags logs
// @Produce json
// @Param status query string false "Batch status filter"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/import-logs [get]
func (h *LogsHandler) ListBatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	status := c.Query("status")

	batches, total, err := h.repo.ListBatches(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list import batches")
		respondError(c, http.StatusInternalServerError, "Failed to list import batches")
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"batches": batches,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetBatchLogs godoc
// @Summary Get batch logs
// @Description Returns the per-record log rows for a batch
// @Tags logs
// @Produce json
// @Param id path int true "Batch ID"
// @Param status query string false "Log status filter (success, error)"
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/import-logs/{id} [get]
func (h *LogsHandler) GetBatchLogs(c *gin.Context) {
	batchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	if _, err := h.repo.GetBatch(c.Request.Context(), uint(batchID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Import batch not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get import batch")
		respondError(c, http.StatusInternalServerError, "Failed to get import batch")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	logs, err := h.repo.GetBatchLogs(c.Request.Context(), uint(batchID), c.Query("status"), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get batch logs")
		respondError(c, http.StatusInternalServerError, "Failed to get batch logs")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"logs": logs, "total": len(logs)})
}

// GetBatchErrors godoc
// @Summary Get batch errors
// @Description Returns only the failed log rows for a batch
// @Tags logs
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/import-logs/{id}/errors [get]
func (h *LogsHandler) GetBatchErrors(c *gin.Context) {
	batchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	if _, err := h.repo.GetBatch(c.Request.Context(), uint(batchID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Import batch not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get import batch")
		respondError(c, http.StatusInternalServerError, "Failed to get import batch")
		return
	}

	logs, err := h.repo.GetBatchLogs(c.Request.Context(), uint(batchID), models.LogStatusError, 1000)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get batch errors")
		respondError(c, http.StatusInternalServerError, "Failed to get batch errors")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"errors": logs, "total": len(logs)})
}

// GetBatchStats godoc
// @Summary Get batch statistics
// @Description Aggregates a batch's log rows by status and action
// @Tags logs
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/import-logs/{id}/stats [get]
func (h *LogsHandler) GetBatchStats(c *gin.Context) {
	batchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	if _, err := h.repo.GetBatch(c.Request.Context(), uint(batchID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Import batch not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get import batch")
		respondError(c, http.StatusInternalServerError, "Failed to get import batch")
		return
	}

	stats, err := h.repo.GetBatchStats(c.Request.Context(), uint(batchID))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get batch stats")
		respondError(c, http.StatusInternalServerError, "Failed to get batch stats")
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// GetOverallStats godoc
// @Summary Get overall import statistics
// @Description Aggregates batch counters per day over a window
// @Tags logs
// @Produce json
// @Param days query int false "Window size in days" default(30)
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/import-logs/stats [get]
func (h *LogsHandler) GetOverallStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 || days > 365 {
		days = 30
	}

	stats, err := h.repo.OverallStats(c.Request.Context(), days)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get import stats")
		respondError(c, http.StatusInternalServerError, "Failed to get import stats")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"days": days, "stats": stats})
}

// DeleteBatch godoc
// @Summary Delete an import batch
// @Description Removes a batch and its log rows
// @Tags logs
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/import-logs/{id} [delete]
func (h *LogsHandler) DeleteBatch(c *gin.Context) {
	batchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	if err := h.repo.DeleteBatch(c.Request.Context(), uint(batchID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Import batch not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete import batch")
		respondError(c, http.StatusInternalServerError, "Failed to delete import batch")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
