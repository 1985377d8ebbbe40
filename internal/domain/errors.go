package domain

import "errors"

var (
	// Batch pre-flight validation errors. These abort the whole batch
	// before any extraction request is sent.
	ErrBatchEmpty          = errors.New("batch contains no documents")
	ErrBatchTooLarge       = errors.New("batch exceeds maximum document count")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")

	// Normalization errors. Per-document; the orchestrator isolates them.
	ErrNoStructuredPayload = errors.New("model reply contains no structured payload")
	ErrMalformedPayload    = errors.New("model reply payload is malformed")
)
