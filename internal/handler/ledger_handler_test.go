package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invox/internal/domain"
)

func ledgerRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/ledger/apply", NewLedgerHandler().Apply)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func applyResultInvoices(t *testing.T, w *httptest.ResponseRecorder) []domain.InvoiceRecord {
	t.Helper()
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Invoices []domain.InvoiceRecord `json:"invoices"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data.Invoices
}

func editableInvoice() domain.InvoiceRecord {
	return domain.InvoiceRecord{
		VendorName:  domain.StringPtr("Acme"),
		Subtotal:    domain.FloatPtr(50),
		TaxAmount:   domain.FloatPtr(5),
		TotalAmount: domain.FloatPtr(55),
		LineItems: []domain.LineItem{{
			Description: "Widget",
			Quantity:    domain.FloatPtr(2),
			UnitPrice:   domain.FloatPtr(25),
			LineTotal:   domain.FloatPtr(50),
		}},
	}
}

func TestLedgerHandler_Apply_EditsInOrder(t *testing.T) {
	r := ledgerRouter()

	w := postJSON(t, r, "/api/v1/ledger/apply", ApplyRequest{
		Invoices: []domain.InvoiceRecord{editableInvoice()},
		Edits: []EditOp{
			{Op: OpSetItemField, Invoice: 0, Item: 0, Field: "quantity", Value: 3},
			{Op: OpSetField, Invoice: 0, Field: "tax_amount", Value: 10},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	invoices := applyResultInvoices(t, w)
	require.Len(t, invoices, 1)

	rec := invoices[0]
	assert.InDelta(t, 75, domain.FloatOrZero(rec.LineItems[0].LineTotal), 1e-9)
	assert.InDelta(t, 75, domain.FloatOrZero(rec.Subtotal), 1e-9)
	assert.InDelta(t, 10, domain.FloatOrZero(rec.TaxAmount), 1e-9)
	assert.InDelta(t, 85, domain.FloatOrZero(rec.TotalAmount), 1e-9)
}

func TestLedgerHandler_Apply_AddAndDeleteItems(t *testing.T) {
	r := ledgerRouter()

	w := postJSON(t, r, "/api/v1/ledger/apply", ApplyRequest{
		Invoices: []domain.InvoiceRecord{editableInvoice()},
		Edits: []EditOp{
			{Op: OpAddItem, Invoice: 0},
			{Op: OpDeleteItem, Invoice: 0, Item: 0},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	invoices := applyResultInvoices(t, w)
	require.Len(t, invoices, 1)

	rec := invoices[0]
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, "New Item", rec.LineItems[0].Description)
	assert.InDelta(t, 0, domain.FloatOrZero(rec.Subtotal), 1e-9)
	assert.InDelta(t, 5, domain.FloatOrZero(rec.TotalAmount), 1e-9)
}

func TestLedgerHandler_Apply_UnknownOpRejectedBeforeApplying(t *testing.T) {
	r := ledgerRouter()

	w := postJSON(t, r, "/api/v1/ledger/apply", ApplyRequest{
		Invoices: []domain.InvoiceRecord{editableInvoice()},
		Edits: []EditOp{
			{Op: OpSetField, Invoice: 0, Field: "vendor_name", Value: "Changed"},
			{Op: "explode", Invoice: 0},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_EDIT_OP", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "explode")
}

func TestLedgerHandler_Apply_OutOfRangeEditIsNoOp(t *testing.T) {
	r := ledgerRouter()

	w := postJSON(t, r, "/api/v1/ledger/apply", ApplyRequest{
		Invoices: []domain.InvoiceRecord{editableInvoice()},
		Edits: []EditOp{
			{Op: OpSetField, Invoice: 9, Field: "vendor_name", Value: "ghost"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	invoices := applyResultInvoices(t, w)
	require.Len(t, invoices, 1)
	assert.Equal(t, "Acme", domain.StringOrEmpty(invoices[0].VendorName))
}

func TestLedgerHandler_Apply_NoEditsEchoesInvoices(t *testing.T) {
	r := ledgerRouter()

	w := postJSON(t, r, "/api/v1/ledger/apply", ApplyRequest{
		Invoices: []domain.InvoiceRecord{editableInvoice()},
	})

	require.Equal(t, http.StatusOK, w.Code)
	invoices := applyResultInvoices(t, w)
	require.Len(t, invoices, 1)
	assert.InDelta(t, 55, domain.FloatOrZero(invoices[0].TotalAmount), 1e-9)
}

func TestLedgerHandler_Apply_MalformedBody(t *testing.T) {
	r := ledgerRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/apply", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_BODY", resp.Error.Code)
}
