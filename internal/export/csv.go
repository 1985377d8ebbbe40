// Package export flattens invoice records into one tabular row per line
// item for download as CSV or XLSX.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"invox/internal/domain"
)

// Columns defines the header row. Order and text are contract surface for
// downstream consumers.
var Columns = []string{
	"Vendor",
	"Invoice Number",
	"Invoice Date",
	"Due Date",
	"PO Number",
	"Description",
	"Quantity",
	"Unit Price",
	"Line Total",
	"Subtotal",
	"Tax",
	"Total",
}

// PlaceholderDescription is the description cell for invoices that carry
// no line items.
const PlaceholderDescription = "No line items"

// Cells are typed so the CSV and XLSX writers can render them differently:
// text is always double-quoted in CSV, numbers never are, and blank cells
// stay empty rather than becoming 0.
type cell struct {
	kind cellKind
	text string
	num  float64
}

type cellKind int

const (
	textCell cellKind = iota
	numCell
	blankCell
)

func txt(p *string) cell  { return cell{kind: textCell, text: domain.StringOrEmpty(p)} }
func num(p *float64) cell { return cell{kind: numCell, num: domain.FloatOrZero(p)} }
func blank() cell         { return cell{kind: blankCell} }

// flatten produces the data rows for a set of invoices: one row per line
// item with the invoice-level totals only on the first row, or a single
// placeholder row for an invoice without items.
func flatten(invoices []domain.InvoiceRecord) [][]cell {
	var rows [][]cell
	for i := range invoices {
		inv := &invoices[i]

		if len(inv.LineItems) == 0 {
			rows = append(rows, []cell{
				txt(inv.VendorName),
				txt(inv.InvoiceNumber),
				txt(inv.InvoiceDate),
				txt(inv.DueDate),
				txt(inv.PurchaseOrderNumber),
				{kind: textCell, text: PlaceholderDescription},
				blank(),
				blank(),
				blank(),
				num(inv.Subtotal),
				num(inv.TaxAmount),
				num(inv.TotalAmount),
			})
			continue
		}

		for j := range inv.LineItems {
			item := &inv.LineItems[j]
			row := []cell{
				txt(inv.VendorName),
				txt(inv.InvoiceNumber),
				txt(inv.InvoiceDate),
				txt(inv.DueDate),
				txt(inv.PurchaseOrderNumber),
				{kind: textCell, text: item.Description},
				num(item.Quantity),
				num(item.UnitPrice),
				num(item.LineTotal),
				blank(),
				blank(),
				blank(),
			}
			// Invoice totals appear only on the first item row; repeating
			// them would read as per-item subtotals.
			if j == 0 {
				row[9] = num(inv.Subtotal)
				row[10] = num(inv.TaxAmount)
				row[11] = num(inv.TotalAmount)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteCSV renders the invoices as the full CSV document: header row then
// one row per line item (or placeholder row). Text cells are always
// double-quoted with embedded quotes doubled; numeric cells are unquoted.
// encoding/csv is deliberately not used here: it quotes minimally, and the
// always-quote layout is part of the file contract.
func WriteCSV(w io.Writer, invoices []domain.InvoiceRecord) error {
	if _, err := io.WriteString(w, strings.Join(Columns, ",")+"\n"); err != nil {
		return err
	}
	for _, row := range flatten(invoices) {
		fields := make([]string, len(row))
		for i, c := range row {
			fields[i] = renderCSVCell(c)
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func renderCSVCell(c cell) string {
	switch c.kind {
	case textCell:
		return `"` + strings.ReplaceAll(c.text, `"`, `""`) + `"`
	case numCell:
		return formatNumber(c.num)
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CSVFilename returns the suggested download name:
// invoices-<YYYY-MM-DD>-<count>-items.csv, where count is the number of
// invoices, not rows.
func CSVFilename(count int) string {
	return buildFilename(count, "csv")
}

// XLSXFilename is CSVFilename for the workbook variant.
func XLSXFilename(count int) string {
	return buildFilename(count, "xlsx")
}

func buildFilename(count int, ext string) string {
	return fmt.Sprintf("invoices-%s-%d-items.%s", time.Now().Format("2006-01-02"), count, ext)
}
