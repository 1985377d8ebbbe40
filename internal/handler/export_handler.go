package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invox/internal/domain"
	"invox/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportRequest carries the invoice records to flatten into a table.
type ExportRequest struct {
	Invoices []domain.InvoiceRecord `json:"invoices"`
}

// ExportHandler handles tabular export downloads.
type ExportHandler struct{}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// CSV handles POST /api/v1/exports/csv
// @Summary Export invoice records as CSV
// @Description Flattens the submitted records into one row per line item and returns the CSV as an attachment
// @Tags exports
// @Accept json
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} APIResponse "Malformed request body"
// @Router /exports/csv [post]
func (h *ExportHandler) CSV(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with invoices")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, req.Invoices); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] csv export failed: %v", requestID, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "could not generate CSV export")
		return
	}

	filename := export.CSVFilename(len(req.Invoices))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// XLSX handles POST /api/v1/exports/xlsx
// @Summary Export invoice records as an XLSX workbook
// @Tags exports
// @Accept json
// @Success 200 {string} string "XLSX file"
// @Failure 400 {object} APIResponse "Malformed request body"
// @Router /exports/xlsx [post]
func (h *ExportHandler) XLSX(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with invoices")
		return
	}

	data, err := export.WriteXLSX(req.Invoices)
	if err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] xlsx export failed: %v", requestID, err)
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "could not generate XLSX export")
		return
	}

	filename := export.XLSXFilename(len(req.Invoices))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
