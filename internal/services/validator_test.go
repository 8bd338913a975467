package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-import-service/internal/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func int64Ptr(i int64) *int64 { return &i }

func validRecord() *models.ImportRecord {
	return &models.ImportRecord{
		Name:       strPtr("Wireless Mouse"),
		Price:      floatPtr(29.99),
		Quantity:   floatPtr(10),
		CategoryID: int64Ptr(1),
	}
}

func TestValidateRecord_Valid(t *testing.T) {
	rec := validRecord()
	rec.SKU = strPtr("MOUSE-001")
	rec.Quantity = floatPtr(10)
	rec.Status = intPtr(1)

	result := ValidateRecord(rec)

	assert.True(t, result.OK)
	assert.Empty(t, result.Errors)
}

func TestValidateRecord_MissingName(t *testing.T) {
	rec := validRecord()
	rec.Name = nil

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "name" is required`)
}

func TestValidateRecord_EmptyName(t *testing.T) {
	rec := validRecord()
	rec.Name = strPtr("")

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "name" is required`)
}

func TestValidateRecord_MissingPrice(t *testing.T) {
	rec := validRecord()
	rec.Price = nil

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "price" must be a positive number`)
}

func TestValidateRecord_NegativePrice(t *testing.T) {
	rec := validRecord()
	rec.Price = floatPtr(-5)

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "price" must be a positive number`)
}

func TestValidateRecord_ZeroPriceAllowed(t *testing.T) {
	rec := validRecord()
	rec.Price = floatPtr(0)

	result := ValidateRecord(rec)

	assert.True(t, result.OK)
}

func TestValidateRecord_MissingQuantity(t *testing.T) {
	rec := validRecord()
	rec.Quantity = nil

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "quantity" must be a positive integer`)
}

func TestValidateRecord_MissingCategoryID(t *testing.T) {
	rec := validRecord()
	rec.CategoryID = nil

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "category_id" must be a positive integer`)
}

func TestValidateRecord_ZeroCategoryIDAllowed(t *testing.T) {
	rec := validRecord()
	rec.CategoryID = int64Ptr(0)

	result := ValidateRecord(rec)

	assert.True(t, result.OK)
}

func TestValidateRecord_FractionalQuantity(t *testing.T) {
	rec := validRecord()
	rec.Quantity = floatPtr(1.5)

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "quantity" must be a positive integer`)
}

func TestValidateRecord_NegativeQuantity(t *testing.T) {
	rec := validRecord()
	rec.Quantity = floatPtr(-1)

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "quantity" must be a positive integer`)
}

func TestValidateRecord_ZeroQuantityAllowed(t *testing.T) {
	rec := validRecord()
	rec.Quantity = floatPtr(0)

	result := ValidateRecord(rec)

	assert.True(t, result.OK)
}

func TestValidateRecord_NegativeCategoryID(t *testing.T) {
	rec := validRecord()
	rec.CategoryID = int64Ptr(-3)

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "category_id" must be a positive integer`)
}

func TestValidateRecord_SKUTooLong(t *testing.T) {
	rec := validRecord()
	rec.SKU = strPtr(strings.Repeat("A", 65))

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "sku" cannot exceed 64 characters`)
}

func TestValidateRecord_SKUAtLimit(t *testing.T) {
	rec := validRecord()
	rec.SKU = strPtr(strings.Repeat("A", 64))

	result := ValidateRecord(rec)

	assert.True(t, result.OK)
}

func TestValidateRecord_InvalidStatus(t *testing.T) {
	rec := validRecord()
	rec.Status = intPtr(2)

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "status" must be 0 or 1`)
}

func TestValidateRecord_NegativeDimensions(t *testing.T) {
	rec := validRecord()
	rec.Weight = floatPtr(-1)
	rec.Length = floatPtr(-1)
	rec.Width = floatPtr(-1)
	rec.Height = floatPtr(-1)

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "weight" must be a positive number`)
	assert.Contains(t, result.Errors, `Field "length" must be a positive number`)
	assert.Contains(t, result.Errors, `Field "width" must be a positive number`)
	assert.Contains(t, result.Errors, `Field "height" must be a positive number`)
}

func TestValidateRecord_NameTooLong(t *testing.T) {
	rec := validRecord()
	rec.Name = strPtr(strings.Repeat("x", 256))

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "name" cannot exceed 255 characters`)
}

func TestValidateRecord_DescriptionTooLong(t *testing.T) {
	rec := validRecord()
	rec.Description = strPtr(strings.Repeat("x", 65536))

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, `Field "description" cannot exceed 65535 characters`)
}

func TestValidateRecord_CollectsAllErrors(t *testing.T) {
	rec := &models.ImportRecord{
		Price:    floatPtr(-1),
		Quantity: floatPtr(-1),
		Status:   intPtr(5),
	}

	result := ValidateRecord(rec)

	assert.False(t, result.OK)
	assert.Len(t, result.Errors, 5)
}
