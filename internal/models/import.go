package models

import (
	"fmt"
	"strings"
	"time"
)

// Import batch statuses
const (
	BatchStatusPending    = "pending"
	BatchStatusProcessing = "processing"
	BatchStatusCompleted  = "completed"
)

// Per-record import actions recorded in the import log
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionError  = "error"
)

// Import log statuses
const (
	LogStatusSuccess = "success"
	LogStatusError   = "error"
)

// ImportMode determines how each record is applied against the catalog.
type ImportMode string

const (
	// ModeAdd only inserts; an existing SKU is a conflict.
	ModeAdd ImportMode = "add"
	// ModeUpdate only updates; a missing SKU is an error.
	ModeUpdate ImportMode = "update"
	// ModeMerge inserts or updates depending on whether the SKU exists.
	ModeMerge ImportMode = "merge"
)

// ParseImportMode normalizes a mode string. An empty mode defaults to
// merge; anything else unrecognized is rejected.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeMerge, nil
	case ModeAdd:
		return ModeAdd, nil
	case ModeUpdate:
		return ModeUpdate, nil
	case ModeMerge:
		return ModeMerge, nil
	default:
		return "", fmt.Errorf("invalid import mode: %q", s)
	}
}

// ImportBatch tracks one import request end to end.
type ImportBatch struct {
	ID               uint      `json:"batch_id" gorm:"primaryKey;autoIncrement"`
	AdminID          int64     `json:"admin_id" gorm:"not null;default:0"`
	Filename         string    `json:"filename" gorm:"type:varchar(255);not null"`
	FileType         string    `json:"file_type" gorm:"type:varchar(16);not null;default:'json'"`
	Mode             string    `json:"mode" gorm:"type:varchar(16);not null"`
	Status           string    `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	TotalRecords     int       `json:"total_records" gorm:"not null;default:0"`
	ProcessedRecords int       `json:"processed_records" gorm:"not null;default:0"`
	SuccessRecords   int       `json:"success_records" gorm:"not null;default:0"`
	FailedRecords    int       `json:"failed_records" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the ImportBatch model
func (ImportBatch) TableName() string {
	return "import_batches"
}

// ImportLog records the outcome of a single record within a batch.
// Exactly one row is written per processed record.
type ImportLog struct {
	ID            uint      `json:"log_id" gorm:"primaryKey;autoIncrement"`
	ImportBatchID uint      `json:"import_batch_id" gorm:"not null;index"`
	ProductID     uint      `json:"product_id" gorm:"not null;default:0"`
	SKU           string    `json:"sku" gorm:"type:varchar(64);not null;default:''"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null;default:''"`
	Action        string    `json:"action" gorm:"type:varchar(16);not null"`
	Status        string    `json:"status" gorm:"type:varchar(16);not null;index"`
	ErrorMessage  string    `json:"error_message" gorm:"type:text;not null;default:''"`
	RowNumber     int       `json:"row_number" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`

	Batch ImportBatch `json:"-" gorm:"foreignKey:ImportBatchID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the ImportLog model
func (ImportLog) TableName() string {
	return "product_import_logs"
}

// ImportAttribute is an attribute value carried by an import record.
type ImportAttribute struct {
	AttributeID int64  `json:"attribute_id"`
	Text        string `json:"text"`
}

// ImportRecord is one product row supplied to the import endpoint.
// All fields are pointers so absent and zero-valued input can be told
// apart during validation and partial updates.
type ImportRecord struct {
	Name            *string           `json:"name"`
	Model           *string           `json:"model"`
	SKU             *string           `json:"sku"`
	Price           *float64          `json:"price"`
	Quantity        *float64          `json:"quantity"`
	CategoryID      *int64            `json:"category_id"`
	ManufacturerID  *int64            `json:"manufacturer_id"`
	Status          *int              `json:"status"`
	Weight          *float64          `json:"weight"`
	Length          *float64          `json:"length"`
	Width           *float64          `json:"width"`
	Height          *float64          `json:"height"`
	Description     *string           `json:"description"`
	MetaTitle       *string           `json:"meta_title"`
	MetaDescription *string           `json:"meta_description"`
	MetaKeyword     *string           `json:"meta_keyword"`
	Tag             *string           `json:"tag"`
	Attributes      []ImportAttribute `json:"attributes"`
}

// SKUValue returns the record's SKU or "" when absent.
func (r *ImportRecord) SKUValue() string {
	if r.SKU == nil {
		return ""
	}
	return *r.SKU
}

// NameValue returns the record's name or "" when absent.
func (r *ImportRecord) NameValue() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// ImportSummary is the aggregate result returned once a batch finishes.
type ImportSummary struct {
	BatchID      uint   `json:"batch_id"`
	TotalRecords int    `json:"total"`
	Succeeded    int    `json:"success"`
	Failed       int    `json:"failed"`
	Added        int    `json:"added"`
	Updated      int    `json:"updated"`
	Message      string `json:"message"`
}

// BatchStats aggregates log outcomes for a single batch.
type BatchStats struct {
	BatchID      uint  `json:"batch_id"`
	TotalLogs    int64 `json:"total_logs"`
	SuccessCount int64 `json:"success_count"`
	ErrorCount   int64 `json:"error_count"`
	InsertCount  int64 `json:"insert_count"`
	UpdateCount  int64 `json:"update_count"`
}

// DailyImportStats is one row of the overall stats report.
type DailyImportStats struct {
	Date         string `json:"date"`
	BatchCount   int64  `json:"batch_count"`
	TotalRecords int64  `json:"total_records"`
	Succeeded    int64  `json:"succeeded"`
	Failed       int64  `json:"failed"`
}

// ImportTemplateColumn describes a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// ImportTemplate describes the downloadable import template
type ImportTemplate struct {
	Columns []ImportTemplateColumn `json:"columns"`
}

// ProductImportColumns returns the columns accepted by the product import
func ProductImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "Name", Key: "name", Required: true, Type: "string", Description: "Product name (max 255 characters)", Example: "Wireless Mouse"},
		{Name: "Price", Key: "price", Required: true, Type: "number", Description: "Product price, must be positive", Example: "29.99"},
		{Name: "Model", Key: "model", Required: false, Type: "string", Description: "Product model", Example: "WM-100"},
		{Name: "SKU", Key: "sku", Required: false, Type: "string", Description: "Stock keeping unit (max 64 characters)", Example: "MOUSE-001"},
		{Name: "Quantity", Key: "quantity", Required: false, Type: "integer", Description: "Stock quantity, must be a positive integer", Example: "150"},
		{Name: "Category ID", Key: "category_id", Required: false, Type: "integer", Description: "Existing category identifier", Example: "12"},
		{Name: "Manufacturer ID", Key: "manufacturer_id", Required: false, Type: "integer", Description: "Existing manufacturer identifier", Example: "3"},
		{Name: "Status", Key: "status", Required: false, Type: "integer", Description: "1 enabled, 0 disabled", Example: "1"},
		{Name: "Weight", Key: "weight", Required: false, Type: "number", Description: "Weight, must be positive", Example: "0.25"},
		{Name: "Length", Key: "length", Required: false, Type: "number", Description: "Length, must be positive", Example: "10.5"},
		{Name: "Width", Key: "width", Required: false, Type: "number", Description: "Width, must be positive", Example: "6.2"},
		{Name: "Height", Key: "height", Required: false, Type: "number", Description: "Height, must be positive", Example: "3.8"},
		{Name: "Description", Key: "description", Required: false, Type: "string", Description: "Product description", Example: "Ergonomic wireless mouse"},
	}
}

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      int    `json:"code"`
	Timestamp string `json:"timestamp"`
}
