package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"invox/internal/domain"
)

// BatchProcessor runs pre-flight validation and the sequential
// extract-and-normalize loop over a batch of documents.
type BatchProcessor interface {
	Process(ctx context.Context, docs []domain.RawDocument) (*domain.BatchResult, error)
}

// BatchHandler handles batch extraction requests.
type BatchHandler struct {
	processor BatchProcessor
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(processor BatchProcessor) *BatchHandler {
	return &BatchHandler{processor: processor}
}

// Extract handles POST /api/v1/batches
// @Summary Extract invoices from uploaded documents
// @Description Accepts 1-50 PDF documents (max 10 MiB each) and returns the extracted invoice records plus the names of any documents that failed
// @Tags batches
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "PDF documents to extract"
// @Success 200 {object} APIResponse "Extraction result"
// @Failure 400 {object} APIResponse "Validation failure"
// @Failure 413 {object} APIResponse "A document exceeds the size limit"
// @Router /batches [post]
func (h *BatchHandler) Extract(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		RespondError(c, http.StatusBadRequest, "BATCH_EMPTY", "at least one document is required")
		return
	}

	docs := make([]domain.RawDocument, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file: "+fh.Filename)
			return
		}
		docs = append(docs, domain.RawDocument{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        data,
		})
	}

	result, err := h.processor.Process(c.Request.Context(), docs)
	if err != nil {
		// A canceled context mid-batch still carries the partial result;
		// the client is gone, so just stop.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.Abort()
			return
		}
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
