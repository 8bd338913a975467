package services

import (
	"fmt"

	"catalog-import-service/internal/models"
)

const (
	maxNameLength        = 255
	maxSKULength         = 64
	maxDescriptionLength = 65535
)

// ValidationResult carries every rule violation found in a record.
// All rules are evaluated; the first failure does not stop the rest.
type ValidationResult struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

// ValidateRecord checks an import record against the catalog field
// rules and returns all violations.
func ValidateRecord(rec *models.ImportRecord) ValidationResult {
	var errs []string

	if rec.Name == nil || *rec.Name == "" {
		errs = append(errs, `Field "name" is required`)
	}
	if rec.Price == nil || *rec.Price < 0 {
		errs = append(errs, `Field "price" must be a positive number`)
	}
	if rec.Quantity == nil || *rec.Quantity < 0 || *rec.Quantity != float64(int64(*rec.Quantity)) {
		errs = append(errs, `Field "quantity" must be a positive integer`)
	}
	if rec.CategoryID == nil || *rec.CategoryID < 0 {
		errs = append(errs, `Field "category_id" must be a positive integer`)
	}
	if rec.SKU != nil && len(*rec.SKU) > maxSKULength {
		errs = append(errs, fmt.Sprintf(`Field "sku" cannot exceed %d characters`, maxSKULength))
	}
	if rec.Status != nil && *rec.Status != 0 && *rec.Status != 1 {
		errs = append(errs, `Field "status" must be 0 or 1`)
	}
	if rec.Weight != nil && *rec.Weight < 0 {
		errs = append(errs, `Field "weight" must be a positive number`)
	}
	if rec.Length != nil && *rec.Length < 0 {
		errs = append(errs, `Field "length" must be a positive number`)
	}
	if rec.Width != nil && *rec.Width < 0 {
		errs = append(errs, `Field "width" must be a positive number`)
	}
	if rec.Height != nil && *rec.Height < 0 {
		errs = append(errs, `Field "height" must be a positive number`)
	}
	if rec.Name != nil && len(*rec.Name) > maxNameLength {
		errs = append(errs, fmt.Sprintf(`Field "name" cannot exceed %d characters`, maxNameLength))
	}
	if rec.Description != nil && len(*rec.Description) > maxDescriptionLength {
		errs = append(errs, fmt.Sprintf(`Field "description" cannot exceed %d characters`, maxDescriptionLength))
	}

	return ValidationResult{OK: len(errs) == 0, Errors: errs}
}
