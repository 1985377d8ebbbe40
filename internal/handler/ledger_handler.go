package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invox/internal/domain"
	"invox/internal/ledger"
)

// Edit operation names accepted by the ledger apply endpoint.
const (
	OpSetField     = "set_field"
	OpSetItemField = "set_item_field"
	OpAddItem      = "add_item"
	OpDeleteItem   = "delete_item"
)

// EditOp is one mutation to apply against the submitted invoices.
type EditOp struct {
	Op      string `json:"op"`
	Invoice int    `json:"invoice"`
	Item    int    `json:"item"`
	Field   string `json:"field"`
	Value   any    `json:"value"`
}

// ApplyRequest carries the caller-owned invoice state plus the edits to
// apply. The server holds no session state: every call is a pure
// transformation of the submitted records.
type ApplyRequest struct {
	Invoices []domain.InvoiceRecord `json:"invoices"`
	Edits    []EditOp               `json:"edits"`
}

// LedgerHandler handles stateless ledger mutations.
type LedgerHandler struct{}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler() *LedgerHandler {
	return &LedgerHandler{}
}

// Apply handles POST /api/v1/ledger/apply
// @Summary Apply edit operations to invoice records
// @Description Applies the given edits in order and returns the records with subtotal/tax/total re-derived
// @Tags ledger
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Recomputed invoice records"
// @Failure 400 {object} APIResponse "Malformed request body or unknown edit op"
// @Router /ledger/apply [post]
func (h *LedgerHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with invoices and edits")
		return
	}

	// Reject unknown ops before touching anything; index or value problems
	// within a known op are silent no-ops per the ledger contract.
	for _, e := range req.Edits {
		switch e.Op {
		case OpSetField, OpSetItemField, OpAddItem, OpDeleteItem:
		default:
			RespondError(c, http.StatusBadRequest, "INVALID_EDIT_OP", "unknown edit op: "+e.Op)
			return
		}
	}

	l := ledger.New(req.Invoices)
	for _, e := range req.Edits {
		switch e.Op {
		case OpSetField:
			l.UpdateField(e.Invoice, e.Field, e.Value)
		case OpSetItemField:
			l.UpdateLineItemField(e.Invoice, e.Item, e.Field, e.Value)
		case OpAddItem:
			l.AddLineItem(e.Invoice)
		case OpDeleteItem:
			l.DeleteLineItem(e.Invoice, e.Item)
		}
	}

	RespondOK(c, gin.H{"invoices": l.Records()})
}
