package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/repository"
)

// Sentinel errors returned by the import pipeline
var (
	ErrNoRecords       = errors.New("no records to import")
	ErrInvalidMode     = errors.New("invalid import mode")
	ErrProductExists   = errors.New("Product already exists")
	ErrProductNotFound = errors.New("Product not found")
	ErrBatchNotFound   = errors.New("import batch not found")
)

const defaultChunkSize = 100

// FailureKind classifies why a record failed.
type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureReference  FailureKind = "reference"
	FailureConflict   FailureKind = "conflict"
	FailureExecution  FailureKind = "execution"
)

// RecordFailure describes a single record's failure.
type RecordFailure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// RecordOutcome is the result of processing one record.
type RecordOutcome struct {
	RowNumber int            `json:"row_number"`
	ProductID uint           `json:"product_id"`
	SKU       string         `json:"sku"`
	Name      string         `json:"name"`
	Action    string         `json:"action"`
	Failure   *RecordFailure `json:"failure,omitempty"`
}

// ImportOptions carries the per-request import settings.
type ImportOptions struct {
	Mode         models.ImportMode
	AdminID      int64
	LanguageID   int
	ChunkSize    int
	ValidateOnly bool
	Source       string
}

// BatchEventPublisher publishes batch lifecycle events. A nil publisher
// is valid and disables event emission.
type BatchEventPublisher interface {
	PublishBatchCompleted(ctx context.Context, summary *models.ImportSummary)
}

// ImportServiceInterface defines the interface for import operations
type ImportServiceInterface interface {
	Import(ctx context.Context, records []json.RawMessage, opts ImportOptions) (*models.ImportSummary, error)
	GetBatchStatus(ctx context.Context, batchID uint) (*models.ImportBatch, []models.ImportLog, error)
}

// ImportService orchestrates the product import pipeline: decode,
// validate, locate, resolve mode, execute, and log, one record at a
// time with per-record failure isolation.
type ImportService struct {
	catalog   repository.CatalogRepositoryInterface
	logs      repository.ImportLogRepositoryInterface
	publisher BatchEventPublisher
	logger    *logrus.Logger
}

// NewImportService creates a new import service
func NewImportService(
	catalog repository.CatalogRepositoryInterface,
	logs repository.ImportLogRepositoryInterface,
	publisher BatchEventPublisher,
	logger *logrus.Logger,
) *ImportService {
	return &ImportService{
		catalog:   catalog,
		logs:      logs,
		publisher: publisher,
		logger:    logger,
	}
}

// resolveAction decides what to do with a record given the mode and
// whether a product with the record's SKU already exists.
func resolveAction(mode models.ImportMode, exists bool) (string, error) {
	switch mode {
	case models.ModeAdd:
		if exists {
			return "", ErrProductExists
		}
		return models.ActionInsert, nil
	case models.ModeUpdate:
		if !exists {
			return "", ErrProductNotFound
		}
		return models.ActionUpdate, nil
	case models.ModeMerge:
		if exists {
			return models.ActionUpdate, nil
		}
		return models.ActionInsert, nil
	default:
		return "", ErrInvalidMode
	}
}

// Import runs the full pipeline over the supplied raw records. Records
// are processed sequentially in chunks; a failing record never aborts
// the batch. Exactly one log row is written per record.
func (s *ImportService) Import(ctx context.Context, records []json.RawMessage, opts ImportOptions) (*models.ImportSummary, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	switch opts.Mode {
	case models.ModeAdd, models.ModeUpdate, models.ModeMerge:
	default:
		return nil, ErrInvalidMode
	}
	if opts.LanguageID <= 0 {
		opts.LanguageID = 1
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	if opts.ValidateOnly {
		return s.validateAll(ctx, records, opts)
	}

	source := opts.Source
	if source == "" {
		source = "api"
	}
	batch := &models.ImportBatch{
		AdminID:      opts.AdminID,
		Filename:     fmt.Sprintf("%s_import_%s", source, time.Now().Format("2006-01-02_15-04-05")),
		FileType:     "json",
		Mode:         string(opts.Mode),
		Status:       models.BatchStatusPending,
		TotalRecords: len(records),
	}
	if err := s.logs.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create import batch: %w", err)
	}
	if err := s.logs.MarkBatchProcessing(ctx, batch.ID); err != nil {
		return nil, fmt.Errorf("failed to start import batch: %w", err)
	}

	var added, updated, failed int
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}
		for i, raw := range records[start:end] {
			rowNumber := start + i + 1
			outcome := s.processRecord(ctx, raw, rowNumber, opts)

			log := models.ImportLog{
				ImportBatchID: batch.ID,
				ProductID:     outcome.ProductID,
				SKU:           outcome.SKU,
				Name:          outcome.Name,
				Action:        outcome.Action,
				Status:        models.LogStatusSuccess,
				RowNumber:     rowNumber,
			}
			if outcome.Failure != nil {
				log.Action = models.ActionError
				log.Status = models.LogStatusError
				log.ErrorMessage = outcome.Failure.Message
				failed++
			} else if outcome.Action == models.ActionInsert {
				added++
			} else {
				updated++
			}
			if err := s.logs.AppendLog(ctx, &log); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"batch_id": batch.ID,
					"row":      rowNumber,
				}).Error("Failed to append import log")
			}
		}
	}

	succeeded := added + updated
	if err := s.logs.FinalizeBatch(ctx, batch.ID, len(records), succeeded, failed); err != nil {
		s.logger.WithError(err).WithField("batch_id", batch.ID).Error("Failed to finalize import batch")
	}

	summary := &models.ImportSummary{
		BatchID:      batch.ID,
		TotalRecords: len(records),
		Succeeded:    succeeded,
		Failed:       failed,
		Added:        added,
		Updated:      updated,
		Message:      fmt.Sprintf("Import completed. Added: %d, Updated: %d, Failed: %d", added, updated, failed),
	}

	if s.publisher != nil {
		s.publisher.PublishBatchCompleted(ctx, summary)
	}

	s.logger.WithFields(logrus.Fields{
		"batch_id": batch.ID,
		"total":    summary.TotalRecords,
		"added":    added,
		"updated":  updated,
		"failed":   failed,
	}).Info("Import batch completed")

	return summary, nil
}

// processRecord runs one record through decode, validation, reference
// checks, mode resolution, and execution. Any failure is captured in
// the outcome rather than returned.
func (s *ImportService) processRecord(ctx context.Context, raw json.RawMessage, rowNumber int, opts ImportOptions) RecordOutcome {
	outcome := RecordOutcome{RowNumber: rowNumber}

	var rec models.ImportRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		outcome.Failure = &RecordFailure{Kind: FailureValidation, Message: "Invalid record format"}
		return outcome
	}
	outcome.SKU = rec.SKUValue()
	outcome.Name = rec.NameValue()

	if result := ValidateRecord(&rec); !result.OK {
		outcome.Failure = &RecordFailure{Kind: FailureValidation, Message: strings.Join(result.Errors, "; ")}
		return outcome
	}

	if failure := s.checkReferences(ctx, &rec); failure != nil {
		outcome.Failure = failure
		return outcome
	}

	existing, err := s.locateExisting(ctx, &rec)
	if err != nil {
		outcome.Failure = &RecordFailure{Kind: FailureExecution, Message: "Failed to look up product: " + err.Error()}
		return outcome
	}

	action, err := resolveAction(opts.Mode, existing != nil)
	if err != nil {
		outcome.Failure = &RecordFailure{Kind: FailureConflict, Message: err.Error()}
		return outcome
	}
	outcome.Action = action

	switch action {
	case models.ActionInsert:
		productID, err := s.catalog.CreateProduct(ctx, &rec, opts.LanguageID)
		if err != nil {
			s.logger.WithError(err).WithField("row", rowNumber).Error("Failed to insert product")
			outcome.Failure = &RecordFailure{Kind: FailureExecution, Message: "Failed to insert product: " + err.Error()}
			return outcome
		}
		outcome.ProductID = productID
	case models.ActionUpdate:
		if err := s.catalog.UpdateProduct(ctx, existing.ID, &rec, opts.LanguageID); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"row":        rowNumber,
				"product_id": existing.ID,
			}).Error("Failed to update product")
			outcome.Failure = &RecordFailure{Kind: FailureExecution, Message: "Failed to update product: " + err.Error()}
			return outcome
		}
		outcome.ProductID = existing.ID
	}

	return outcome
}

// checkReferences verifies that category and manufacturer references
// point at existing rows.
func (s *ImportService) checkReferences(ctx context.Context, rec *models.ImportRecord) *RecordFailure {
	if rec.CategoryID != nil && *rec.CategoryID > 0 {
		exists, err := s.catalog.CategoryExists(ctx, *rec.CategoryID)
		if err != nil {
			return &RecordFailure{Kind: FailureExecution, Message: "Failed to verify category: " + err.Error()}
		}
		if !exists {
			return &RecordFailure{Kind: FailureReference, Message: fmt.Sprintf("Category %d does not exist", *rec.CategoryID)}
		}
	}
	if rec.ManufacturerID != nil && *rec.ManufacturerID > 0 {
		exists, err := s.catalog.ManufacturerExists(ctx, *rec.ManufacturerID)
		if err != nil {
			return &RecordFailure{Kind: FailureExecution, Message: "Failed to verify manufacturer: " + err.Error()}
		}
		if !exists {
			return &RecordFailure{Kind: FailureReference, Message: fmt.Sprintf("Manufacturer %d does not exist", *rec.ManufacturerID)}
		}
	}
	return nil
}

// locateExisting finds the product matching the record's SKU. An empty
// SKU never matches an existing product.
func (s *ImportService) locateExisting(ctx context.Context, rec *models.ImportRecord) (*models.Product, error) {
	sku := rec.SKUValue()
	if sku == "" {
		return nil, nil
	}
	product, err := s.catalog.FindProductBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

// validateAll runs the read-only checks over every record without
// creating a batch or touching the catalog.
func (s *ImportService) validateAll(ctx context.Context, records []json.RawMessage, opts ImportOptions) (*models.ImportSummary, error) {
	var passed, failed int
	for _, raw := range records {
		var rec models.ImportRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			failed++
			continue
		}
		if result := ValidateRecord(&rec); !result.OK {
			failed++
			continue
		}
		if failure := s.checkReferences(ctx, &rec); failure != nil {
			failed++
			continue
		}
		exists := false
		if sku := rec.SKUValue(); sku != "" {
			var err error
			exists, err = s.catalog.SKUExists(ctx, sku, 0)
			if err != nil {
				failed++
				continue
			}
		}
		if _, err := resolveAction(opts.Mode, exists); err != nil {
			failed++
			continue
		}
		passed++
	}
	return &models.ImportSummary{
		TotalRecords: len(records),
		Succeeded:    passed,
		Failed:       failed,
		Message:      fmt.Sprintf("Validation completed. Passed: %d, Failed: %d", passed, failed),
	}, nil
}

// GetBatchStatus returns a batch and its log rows.
func (s *ImportService) GetBatchStatus(ctx context.Context, batchID uint) (*models.ImportBatch, []models.ImportLog, error) {
	batch, err := s.logs.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrBatchNotFound
		}
		return nil, nil, err
	}
	logs, err := s.logs.GetBatchLogs(ctx, batchID, "", 1000)
	if err != nil {
		return nil, nil, err
	}
	return batch, logs, nil
}
