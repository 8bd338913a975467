package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"catalog-import-service/internal/models"
	"catalog-import-service/internal/services"
)

// ImportHandler handles product import requests
type ImportHandler struct {
	service    services.ImportServiceInterface
	languageID int
	chunkSize  int
	logger     *logrus.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(service services.ImportServiceInterface, languageID, chunkSize int, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{service: service, languageID: languageID, chunkSize: chunkSize, logger: logger}
}

// importRequest is the JSON body accepted by ImportProducts. Products
// are kept raw so a malformed record fails alone instead of failing
// the whole request.
type importRequest struct {
	Products     []json.RawMessage `json:"products"`
	Mode         string            `json:"mode"`
	AdminID      int64             `json:"admin_id"`
	LanguageID   int               `json:"language_id"`
	ValidateOnly bool              `json:"validate_only"`
}

// ImportProducts godoc
// @Summary Import products
// @Description Imports a batch of products in add, update, or merge mode
// @Tags import
// @Accept json
// @Produce json
// @Param request body importRequest true "Import request"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/products/import [post]
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Products) == 0 {
		respondError(c, http.StatusBadRequest, `Field "products" is required and must be an array`)
		return
	}

	mode, err := models.ParseImportMode(req.Mode)
	if err != nil {
		respondError(c, http.StatusBadRequest, `Field "mode" must be add, update, or merge`)
		return
	}

	languageID := req.LanguageID
	if languageID <= 0 {
		languageID = h.languageID
	}

	summary, err := h.service.Import(c.Request.Context(), req.Products, services.ImportOptions{
		Mode:         mode,
		AdminID:      req.AdminID,
		LanguageID:   languageID,
		ChunkSize:    h.chunkSize,
		ValidateOnly: req.ValidateOnly,
		Source:       "api",
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoRecords):
			respondError(c, http.StatusBadRequest, `Field "products" is required and must be an array`)
		case errors.Is(err, services.ErrInvalidMode):
			respondError(c, http.StatusBadRequest, `Field "mode" must be add, update, or merge`)
		default:
			h.logger.WithError(err).Error("Import failed")
			respondError(c, http.StatusInternalServerError, "Import failed")
		}
		return
	}

	respondOK(c, http.StatusOK, summary)
}

// GetImportStatus godoc
// @Summary Get import batch status
// @Description Returns a batch with its per-record log rows
// @Tags import
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/products/import/{id} [get]
func (h *ImportHandler) GetImportStatus(c *gin.Context) {
	batchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid batch ID")
		return
	}

	batch, logs, err := h.service.GetBatchStatus(c.Request.Context(), uint(batchID))
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			respondError(c, http.StatusNotFound, "Import batch not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get import status")
		respondError(c, http.StatusInternalServerError, "Failed to get import status")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"batch": batch,
		"logs":  logs,
	})
}

// GetImportTemplate godoc
// @Summary Download import template
// @Description Returns the import template as json, csv, or xlsx
// @Tags import
// @Produce json
// @Param format query string false "Template format (json, csv, xlsx)" default(json)
// @Success 200 {object} models.SuccessResponse
// @Router /api/v1/products/import/template [get]
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	template := models.ImportTemplate{Columns: models.ProductImportColumns()}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		h.writeCSVTemplate(c, template)
	case "xlsx":
		h.writeXLSXTemplate(c, template)
	default:
		respondOK(c, http.StatusOK, template)
	}
}

// writeCSVTemplate streams a headers-only CSV template.
func (h *ImportHandler) writeCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=product_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Key
	}
	writer.Write(headers)
}

// writeXLSXTemplate streams an Excel template with a styled header row
// and an Instructions sheet.
func (h *ImportHandler) writeXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Products"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Key
		if col.Required {
			headerText = col.Key + " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Product Import Instructions")
	f.SetCellValue("Instructions", "A3", "IMPORT MODES:")
	f.SetCellValue("Instructions", "A4", "- add: only inserts new products; a record whose SKU already exists is rejected.")
	f.SetCellValue("Instructions", "A5", "- update: only updates existing products; a record whose SKU is unknown is rejected.")
	f.SetCellValue("Instructions", "A6", "- merge: inserts new products and updates existing ones (default).")
	f.SetCellValue("Instructions", "A8", "Records without a SKU are always treated as new products.")

	f.SetCellValue("Instructions", "A10", "Column Definitions:")
	f.SetCellValue("Instructions", "A11", "Column")
	f.SetCellValue("Instructions", "B11", "Description")
	f.SetCellValue("Instructions", "C11", "Required")
	f.SetCellValue("Instructions", "D11", "Type")
	f.SetCellValue("Instructions", "E11", "Example")

	for i, col := range template.Columns {
		row := i + 12
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Key)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 25)
	f.SetColWidth("Instructions", "B", "B", 60)
	f.SetColWidth("Instructions", "C", "C", 15)
	f.SetColWidth("Instructions", "D", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 20)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=product_import_template.xlsx")
	if err := f.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to write xlsx template")
	}
}
