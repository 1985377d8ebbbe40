package domain

// RawDocument is one uploaded invoice document as received from the caller.
// ContentType and Size are the declared values from the upload; pre-flight
// validation checks them before any extraction request is built.
type RawDocument struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// LineItem is one purchased product or service row within an invoice.
// Quantity, UnitPrice and LineTotal are pointers so that a value the model
// never produced stays absent instead of silently becoming zero; defaults
// are applied only at export/display time.
type LineItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	LineTotal   *float64 `json:"line_total"`
}

// InvoiceRecord is the canonical normalized representation of one invoice.
// Nullable fields are pointers; normalization preserves absence rather than
// filling defaults. Filename is attached by the batch orchestrator for
// traceability and is not produced by normalization itself.
type InvoiceRecord struct {
	InvoiceNumber       *string    `json:"invoice_number"`
	VendorName          *string    `json:"vendor_name"`
	VendorAddress       *string    `json:"vendor_address"`
	VendorEmail         *string    `json:"vendor_email"`
	VendorPhone         *string    `json:"vendor_phone"`
	InvoiceDate         *string    `json:"invoice_date"`
	DueDate             *string    `json:"due_date"`
	PurchaseOrderNumber *string    `json:"purchase_order_number"`
	Subtotal            *float64   `json:"subtotal"`
	TaxAmount           *float64   `json:"tax_amount"`
	TotalAmount         *float64   `json:"total_amount"`
	LineItems           []LineItem `json:"line_items"`
	Filename            string     `json:"_filename,omitempty"`
}

// BatchResult aggregates the outcome of one batch extraction run. Invoices
// keeps the input ordering restricted to the documents that succeeded;
// Failures lists the display names of the documents that did not.
type BatchResult struct {
	Invoices []InvoiceRecord `json:"successes"`
	Failures []string        `json:"failures"`
}

// FloatOrZero returns the pointed-to value, or 0 when absent.
func FloatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// StringOrEmpty returns the pointed-to value, or "" when absent.
func StringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
