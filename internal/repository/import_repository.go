package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"catalog-import-service/internal/models"
)

// ImportLogRepositoryInterface defines the interface for import batch
// and log persistence
type ImportLogRepositoryInterface interface {
	CreateBatch(ctx context.Context, batch *models.ImportBatch) error
	MarkBatchProcessing(ctx context.Context, batchID uint) error
	AppendLog(ctx context.Context, log *models.ImportLog) error
	FinalizeBatch(ctx context.Context, batchID uint, processed, succeeded, failed int) error
	GetBatch(ctx context.Context, batchID uint) (*models.ImportBatch, error)
	ListBatches(ctx context.Context, status string, limit, offset int) ([]models.ImportBatch, int64, error)
	GetBatchLogs(ctx context.Context, batchID uint, status string, limit int) ([]models.ImportLog, error)
	GetBatchStats(ctx context.Context, batchID uint) (*models.BatchStats, error)
	OverallStats(ctx context.Context, days int) ([]models.DailyImportStats, error)
	DeleteBatch(ctx context.Context, batchID uint) error
	CleanOldLogs(ctx context.Context, retention time.Duration) (int64, error)
}

// ImportLogRepository implements ImportLogRepositoryInterface backed by gorm
type ImportLogRepository struct {
	db *gorm.DB
}

// NewImportLogRepository creates a new import log repository
func NewImportLogRepository(db *gorm.DB) *ImportLogRepository {
	return &ImportLogRepository{db: db}
}

// CreateBatch persists a new batch row.
func (r *ImportLogRepository) CreateBatch(ctx context.Context, batch *models.ImportBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// MarkBatchProcessing transitions a batch from pending to processing.
func (r *ImportLogRepository) MarkBatchProcessing(ctx context.Context, batchID uint) error {
	return r.db.WithContext(ctx).Model(&models.ImportBatch{}).
		Where("id = ? AND status = ?", batchID, models.BatchStatusPending).
		Update("status", models.BatchStatusProcessing).Error
}

// AppendLog writes one per-record outcome row.
func (r *ImportLogRepository) AppendLog(ctx context.Context, log *models.ImportLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FinalizeBatch records the final counters and marks the batch completed.
func (r *ImportLogRepository) FinalizeBatch(ctx context.Context, batchID uint, processed, succeeded, failed int) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.ImportBatch{}).
		Where("id = ?", batchID).
		Updates(map[string]interface{}{
			"status":            models.BatchStatusCompleted,
			"processed_records": processed,
			"success_records":   succeeded,
			"failed_records":    failed,
			"updated_at":        now,
		}).Error
}

// GetBatch returns a batch by ID.
func (r *ImportLogRepository) GetBatch(ctx context.Context, batchID uint) (*models.ImportBatch, error) {
	var batch models.ImportBatch
	err := r.db.WithContext(ctx).First(&batch, "id = ?", batchID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// ListBatches returns batches newest first, optionally filtered by status.
func (r *ImportLogRepository) ListBatches(ctx context.Context, status string, limit, offset int) ([]models.ImportBatch, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ImportBatch{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var batches []models.ImportBatch
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&batches).Error
	if err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}

// GetBatchLogs returns a batch's log rows, optionally filtered by status.
func (r *ImportLogRepository) GetBatchLogs(ctx context.Context, batchID uint, status string, limit int) ([]models.ImportLog, error) {
	query := r.db.WithContext(ctx).Where("import_batch_id = ?", batchID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var logs []models.ImportLog
	err := query.Order("row_number").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// GetBatchStats aggregates a batch's log rows by status and action.
func (r *ImportLogRepository) GetBatchStats(ctx context.Context, batchID uint) (*models.BatchStats, error) {
	stats := models.BatchStats{BatchID: batchID}
	row := r.db.WithContext(ctx).Model(&models.ImportLog{}).
		Select(`COUNT(*) AS total_logs,
			COUNT(*) FILTER (WHERE status = ?) AS success_count,
			COUNT(*) FILTER (WHERE status = ?) AS error_count,
			COUNT(*) FILTER (WHERE action = ?) AS insert_count,
			COUNT(*) FILTER (WHERE action = ?) AS update_count`,
			models.LogStatusSuccess, models.LogStatusError,
			models.ActionInsert, models.ActionUpdate).
		Where("import_batch_id = ?", batchID).
		Row()
	if err := row.Scan(&stats.TotalLogs, &stats.SuccessCount, &stats.ErrorCount, &stats.InsertCount, &stats.UpdateCount); err != nil {
		return nil, err
	}
	return &stats, nil
}

// OverallStats aggregates batch counters per day over the given window.
func (r *ImportLogRepository) OverallStats(ctx context.Context, days int) ([]models.DailyImportStats, error) {
	since := time.Now().AddDate(0, 0, -days)
	var stats []models.DailyImportStats
	err := r.db.WithContext(ctx).Model(&models.ImportBatch{}).
		Select(`TO_CHAR(created_at, 'YYYY-MM-DD') AS date,
			COUNT(*) AS batch_count,
			COALESCE(SUM(total_records), 0) AS total_records,
			COALESCE(SUM(success_records), 0) AS succeeded,
			COALESCE(SUM(failed_records), 0) AS failed`).
		Where("created_at >= ?", since).
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteBatch removes a batch and its logs in one transaction.
func (r *ImportLogRepository) DeleteBatch(ctx context.Context, batchID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ImportBatch{}).Where("id = ?", batchID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Where("import_batch_id = ?", batchID).Delete(&models.ImportLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ImportBatch{}, "id = ?", batchID).Error
	})
}

// CleanOldLogs deletes batches older than the retention window along
// with their log rows, and returns how many log rows were removed.
func (r *ImportLogRepository) CleanOldLogs(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batchIDs []uint
		if err := tx.Model(&models.ImportBatch{}).
			Where("created_at < ?", cutoff).
			Pluck("id", &batchIDs).Error; err != nil {
			return err
		}
		if len(batchIDs) == 0 {
			return nil
		}
		result := tx.Where("import_batch_id IN ?", batchIDs).Delete(&models.ImportLog{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return tx.Where("id IN ?", batchIDs).Delete(&models.ImportBatch{}).Error
	})
	return removed, err
}
