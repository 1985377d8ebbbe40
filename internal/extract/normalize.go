package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"invox/internal/domain"
)

// tagLike matches markup-tag-like runs. Stripping them is a defensive
// measure against the payload later being rendered as HTML; it is not
// entity decoding.
var tagLike = regexp.MustCompile(`<[^>]*>`)

// Normalize parses the model's free-text reply into an InvoiceRecord.
//
// An object-shaped reply is tried as strict JSON first; anything else falls
// back to the outer-brace scan (first '{' through last '}'). The scan can
// merge multiple JSON-like fragments if the model embeds example objects in
// prose before the real payload; the strict-first order keeps that
// fragility off the common path.
//
// Normalization is all-or-nothing: on error no partial record is returned.
// Absent fields stay nil, except a line item's quantity, which defaults
// to 1.
func Normalize(reply string) (*domain.InvoiceRecord, error) {
	trimmed := strings.TrimSpace(reply)

	var rec domain.InvoiceRecord
	parsed := false
	// json.Unmarshal treats "null" as a successful no-op against a struct,
	// so only a reply that is itself an object may take the strict path.
	if strings.HasPrefix(trimmed, "{") {
		parsed = json.Unmarshal([]byte(trimmed), &rec) == nil
	}
	if !parsed {
		start := strings.Index(reply, "{")
		end := strings.LastIndex(reply, "}")
		if start == -1 || end == -1 || end < start {
			return nil, domain.ErrNoStructuredPayload
		}
		rec = domain.InvoiceRecord{}
		if err := json.Unmarshal([]byte(reply[start:end+1]), &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
		}
	}

	// Traceability is owned by the orchestrator; a reply claiming a
	// filename is ignored.
	rec.Filename = ""

	sanitizeRecord(&rec)

	for i := range rec.LineItems {
		if rec.LineItems[i].Quantity == nil {
			rec.LineItems[i].Quantity = domain.FloatPtr(1)
		}
	}

	return &rec, nil
}

func sanitizeRecord(rec *domain.InvoiceRecord) {
	for _, p := range []*string{
		rec.InvoiceNumber,
		rec.VendorName,
		rec.VendorAddress,
		rec.VendorEmail,
		rec.VendorPhone,
		rec.InvoiceDate,
		rec.DueDate,
		rec.PurchaseOrderNumber,
	} {
		sanitizePtr(p)
	}
	for i := range rec.LineItems {
		rec.LineItems[i].Description = sanitizeString(rec.LineItems[i].Description)
	}
}

func sanitizePtr(p *string) {
	if p == nil {
		return
	}
	*p = sanitizeString(*p)
}

func sanitizeString(s string) string {
	return strings.TrimSpace(tagLike.ReplaceAllString(s, ""))
}
