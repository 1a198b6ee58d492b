package payments

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptData is the payment information laid out on a printed receipt.
type ReceiptData struct {
	ReceiptID   string
	StudentName string
	StudentID   string
	Amount      float64
	Currency    string
	Method      string
	RecordedBy  string
	Note        string
}

// RenderResult is the outcome of a render attempt. Rendering is
// best-effort: a failed render reports OK=false with the error message
// instead of propagating, because the receipt document is not essential
// to the correctness of the payment record itself.
type RenderResult struct {
	OK        bool   `json:"ok"`
	ReceiptID string `json:"receipt_id"`
	Error     string `json:"error,omitempty"`
	PDF       []byte `json:"-"`
}

// ReceiptRenderer turns one payment into a printable document.
type ReceiptRenderer interface {
	Render(ReceiptData) RenderResult
}

// NewReceiptRenderer selects the rendering backend at construction time.
// Headless contexts (tests, environments without the PDF toolchain
// enabled) get the placeholder so the payment path never depends on a
// document engine being present.
func NewReceiptRenderer(pdfEnabled bool) ReceiptRenderer {
	if pdfEnabled {
		return &PDFRenderer{}
	}
	return &PlaceholderRenderer{}
}

// PlaceholderRenderer stands in when no document engine is available.
// It echoes the receipt id so callers can still confirm which payment
// the (non-)render was for.
type PlaceholderRenderer struct{}

func (r *PlaceholderRenderer) Render(d ReceiptData) RenderResult {
	return RenderResult{OK: true, ReceiptID: d.ReceiptID}
}

// PDFRenderer lays out the fixed receipt template with gofpdf.
type PDFRenderer struct{}

func (r *PDFRenderer) Render(d ReceiptData) (result RenderResult) {
	result = RenderResult{ReceiptID: d.ReceiptID}

	// gofpdf reports some failures by panicking inside layout calls.
	defer func() {
		if rec := recover(); rec != nil {
			result = RenderResult{ReceiptID: d.ReceiptID, Error: fmt.Sprint(rec)}
		}
	}()

	currency := d.Currency
	if currency == "" {
		currency = "UGX"
	}
	student := d.StudentName
	if student == "" {
		student = d.StudentID
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(20, 20, "Payment Receipt")

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(20, 35, "Receipt No: "+d.ReceiptID)
	pdf.Text(20, 45, "Student: "+student)
	pdf.Text(20, 55, fmt.Sprintf("Amount: %s %s", currency, strconv.FormatFloat(d.Amount, 'f', -1, 64)))
	pdf.Text(20, 65, "Method: "+d.Method)
	pdf.Text(20, 75, "Recorded by: "+d.RecordedBy)
	if d.Note != "" {
		pdf.Text(20, 85, "Note: "+d.Note)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return RenderResult{ReceiptID: d.ReceiptID, Error: err.Error()}
	}

	result.OK = true
	result.PDF = buf.Bytes()
	return result
}
