// Package ledger holds the editable in-memory collection of invoice
// records for a session and keeps the subtotal/tax/total accounting model
// consistent as fields are edited.
package ledger

import (
	"math"
	"strconv"
	"strings"

	"invox/internal/domain"
)

// Ledger is the ordered sequence of invoice records under edit. All
// mutation operations are total: out-of-range indexes are silent no-ops
// and malformed numeric input is coerced to 0 before arithmetic.
type Ledger struct {
	records []domain.InvoiceRecord
}

// New creates a Ledger over a copy of the given records. Line-item slices
// are copied too, so no edit ever writes through to the caller's data.
func New(records []domain.InvoiceRecord) *Ledger {
	l := &Ledger{records: make([]domain.InvoiceRecord, len(records))}
	copy(l.records, records)
	for i := range l.records {
		if len(l.records[i].LineItems) == 0 {
			continue
		}
		items := make([]domain.LineItem, len(l.records[i].LineItems))
		copy(items, l.records[i].LineItems)
		l.records[i].LineItems = items
	}
	return l
}

// Records returns the current records.
func (l *Ledger) Records() []domain.InvoiceRecord {
	return l.records
}

// Len returns the number of records held.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Reset discards all records.
func (l *Ledger) Reset() {
	l.records = nil
}

// UpdateField overwrites one top-level scalar field. No recomputation is
// triggered for subtotal or total_amount: a direct edit there is a user
// override that stands until the next line-item or tax edit. Editing
// tax_amount recomputes total_amount.
func (l *Ledger) UpdateField(invoice int, field string, value any) {
	if invoice < 0 || invoice >= len(l.records) {
		return
	}
	rec := &l.records[invoice]

	switch field {
	case "invoice_number":
		rec.InvoiceNumber = domain.StringPtr(coerceString(value))
	case "vendor_name":
		rec.VendorName = domain.StringPtr(coerceString(value))
	case "vendor_address":
		rec.VendorAddress = domain.StringPtr(coerceString(value))
	case "vendor_email":
		rec.VendorEmail = domain.StringPtr(coerceString(value))
	case "vendor_phone":
		rec.VendorPhone = domain.StringPtr(coerceString(value))
	case "invoice_date":
		rec.InvoiceDate = domain.StringPtr(coerceString(value))
	case "due_date":
		rec.DueDate = domain.StringPtr(coerceString(value))
	case "purchase_order_number":
		rec.PurchaseOrderNumber = domain.StringPtr(coerceString(value))
	case "subtotal":
		rec.Subtotal = domain.FloatPtr(coerceNumber(value))
	case "total_amount":
		rec.TotalAmount = domain.FloatPtr(coerceNumber(value))
	case "tax_amount":
		rec.TaxAmount = domain.FloatPtr(coerceNumber(value))
		rec.TotalAmount = domain.FloatPtr(domain.FloatOrZero(rec.Subtotal) + domain.FloatOrZero(rec.TaxAmount))
	}
}

// UpdateLineItemField overwrites one line-item field. Editing quantity or
// unit_price recomputes that item's line_total as their product; a direct
// line_total edit stands as-is (last write wins, no back-solving). Either
// way the invoice's subtotal and total_amount are re-derived.
func (l *Ledger) UpdateLineItemField(invoice, item int, field string, value any) {
	if invoice < 0 || invoice >= len(l.records) {
		return
	}
	rec := &l.records[invoice]
	if item < 0 || item >= len(rec.LineItems) {
		return
	}
	li := &rec.LineItems[item]

	switch field {
	case "description":
		li.Description = coerceString(value)
		return
	case "quantity":
		li.Quantity = domain.FloatPtr(coerceNumber(value))
	case "unit_price":
		li.UnitPrice = domain.FloatPtr(coerceNumber(value))
	case "line_total":
		li.LineTotal = domain.FloatPtr(coerceNumber(value))
	default:
		return
	}

	if field == "quantity" || field == "unit_price" {
		li.LineTotal = domain.FloatPtr(domain.FloatOrZero(li.Quantity) * domain.FloatOrZero(li.UnitPrice))
	}
	l.recompute(rec)
}

// AddLineItem appends a placeholder item to the invoice and re-derives its
// totals.
func (l *Ledger) AddLineItem(invoice int) {
	if invoice < 0 || invoice >= len(l.records) {
		return
	}
	rec := &l.records[invoice]
	rec.LineItems = append(rec.LineItems, domain.LineItem{
		Description: "New Item",
		Quantity:    domain.FloatPtr(1),
		UnitPrice:   domain.FloatPtr(0),
		LineTotal:   domain.FloatPtr(0),
	})
	l.recompute(rec)
}

// DeleteLineItem removes one item by position and re-derives the invoice's
// totals. Out-of-range indexes are ignored.
func (l *Ledger) DeleteLineItem(invoice, item int) {
	if invoice < 0 || invoice >= len(l.records) {
		return
	}
	rec := &l.records[invoice]
	if item < 0 || item >= len(rec.LineItems) {
		return
	}
	rec.LineItems = append(rec.LineItems[:item], rec.LineItems[item+1:]...)
	l.recompute(rec)
}

// recompute re-establishes subtotal = sum of line totals and
// total_amount = subtotal + tax_amount.
func (l *Ledger) recompute(rec *domain.InvoiceRecord) {
	var sum float64
	for i := range rec.LineItems {
		sum += domain.FloatOrZero(rec.LineItems[i].LineTotal)
	}
	rec.Subtotal = domain.FloatPtr(sum)
	rec.TotalAmount = domain.FloatPtr(sum + domain.FloatOrZero(rec.TaxAmount))
}

// coerceNumber turns edit-surface input into a finite float64. Anything
// unusable becomes 0; NaN and infinities never enter the arithmetic.
func coerceNumber(value any) float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
