package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"invox/internal/config"
	"invox/internal/domain"
	"invox/internal/extract"
)

// PDFContentType is the only declared media type accepted for extraction.
const PDFContentType = "application/pdf"

// Extractor is the external document-understanding call: document bytes in,
// raw model reply text out.
type Extractor interface {
	Extract(ctx context.Context, doc domain.RawDocument) (string, error)
}

// Orchestrator drives validation, extraction, and normalization across a
// batch of documents. Processing is strictly sequential with a fixed
// quiescence delay between documents; the external API enforces a coarse
// rate limit and parallel calls would break that contract.
type Orchestrator struct {
	extractor Extractor
	maxDocs   int
	maxSize   int64
	delay     time.Duration
}

// NewOrchestrator creates an Orchestrator from config.
func NewOrchestrator(extractor Extractor, cfg *config.BatchConfig) *Orchestrator {
	maxDocs := cfg.MaxDocuments
	if maxDocs <= 0 {
		maxDocs = 50
	}
	maxSize := cfg.MaxFileSize()
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	return &Orchestrator{
		extractor: extractor,
		maxDocs:   maxDocs,
		maxSize:   maxSize,
		delay:     cfg.Delay(),
	}
}

// Validate runs the pre-flight checks: 1..max documents, each declaring
// application/pdf and a size within the cap. Any violation fails the whole
// batch before a single extraction request is sent.
func (o *Orchestrator) Validate(docs []domain.RawDocument) error {
	if len(docs) == 0 {
		return domain.ErrBatchEmpty
	}
	if len(docs) > o.maxDocs {
		return fmt.Errorf("%w: %d documents (max %d)", domain.ErrBatchTooLarge, len(docs), o.maxDocs)
	}
	for i := range docs {
		doc := &docs[i]
		if doc.ContentType != PDFContentType {
			return fmt.Errorf("document %q: %w (%s)", doc.Name, domain.ErrUnsupportedFileType, doc.ContentType)
		}
		if doc.Size > o.maxSize {
			return fmt.Errorf("document %q: %w (%d bytes)", doc.Name, domain.ErrFileTooLarge, doc.Size)
		}
	}
	return nil
}

// Process validates the batch, then extracts and normalizes each document
// in order. One document's failure never aborts the batch: it is recorded
// by name and processing continues. Successes keep input order and carry
// the originating filename.
//
// Cancellation is honored only between documents, never mid-flight; on
// cancellation the partial result is returned alongside ctx.Err().
func (o *Orchestrator) Process(ctx context.Context, docs []domain.RawDocument) (*domain.BatchResult, error) {
	if err := o.Validate(docs); err != nil {
		return nil, err
	}

	result := &domain.BatchResult{
		Invoices: make([]domain.InvoiceRecord, 0, len(docs)),
		Failures: make([]string, 0),
	}

	for i := range docs {
		if i > 0 {
			if err := o.pause(ctx); err != nil {
				return result, err
			}
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		doc := &docs[i]
		rec, err := o.processOne(ctx, *doc)
		if err != nil {
			log.Printf("batch: document %q failed: %v", doc.Name, err)
			result.Failures = append(result.Failures, doc.Name)
			continue
		}
		result.Invoices = append(result.Invoices, *rec)
	}

	return result, nil
}

func (o *Orchestrator) processOne(ctx context.Context, doc domain.RawDocument) (*domain.InvoiceRecord, error) {
	reply, err := o.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}
	rec, err := extract.Normalize(reply)
	if err != nil {
		return nil, err
	}
	rec.Filename = doc.Name
	return rec, nil
}

// pause waits the configured inter-document delay, or returns early when
// the context is canceled.
func (o *Orchestrator) pause(ctx context.Context) error {
	if o.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(o.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
