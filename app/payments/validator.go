package payments

import (
	"context"
	"math"
	"strings"
	"time"

	"kisima-schools/app/models"
)

// MaxPaymentAmount is the policy ceiling for a single payment, in whole
// currency units. School fees at any branch sit far below this; anything
// above it is taken as a data-entry error rather than a real payment.
const MaxPaymentAmount = 100_000_000

// sanitizer strips characters that could enable injection into downstream
// consumers of free-text fields (HTML, quotes, shell metacharacters).
var sanitizer = strings.NewReplacer(
	"<", "", ">", "", "'", "", `"`, "", ";", "", "&", "", "|", "", "`", "", "$", "",
)

func sanitizeText(s string) string {
	return strings.TrimSpace(sanitizer.Replace(s))
}

// CreateInput is the raw payment form submission.
type CreateInput struct {
	StudentID  string  `json:"student_id"`
	BranchID   string  `json:"branch_id"`
	RecordedBy string  `json:"recorded_by"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Note       string  `json:"note"`
	ReceiptID  string  `json:"receipt_id"`
}

// NewPayment is a fully normalized payload ready for persistence: method
// lowercased, note sanitized or nil, receipt id resolved.
type NewPayment struct {
	StudentID  string
	BranchID   string
	RecordedBy string
	Amount     float64
	Method     models.PaymentMethod
	Note       *string
	ReceiptID  string
}

// UpdateInput carries the amendable fields of a payment; nil means
// "leave untouched". studentID, branchID, recordedBy and receiptID are
// not amendable through the update path.
type UpdateInput struct {
	Amount *float64 `json:"amount"`
	Method *string  `json:"method"`
	Note   *string  `json:"note"`
}

// PaymentPatch is a validated partial update plus its timestamp.
type PaymentPatch struct {
	Amount *float64
	Method *models.PaymentMethod
	// NoteSet distinguishes "clear the note" (NoteSet true, Note nil)
	// from "leave the note alone" (NoteSet false).
	Note      *string
	NoteSet   bool
	UpdatedAt time.Time
}

func checkAmount(amount float64) error {
	switch {
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		return invalidAmount("amount must be a finite number")
	case amount <= 0:
		return invalidAmount("amount must be greater than zero")
	case amount > MaxPaymentAmount:
		return invalidAmount("amount exceeds the maximum allowed")
	}
	return nil
}

func normalizeMethod(method string) (models.PaymentMethod, error) {
	if method == "" {
		return models.MethodCash, nil
	}
	m := models.PaymentMethod(strings.ToLower(strings.TrimSpace(method)))
	if !m.IsValid() {
		return "", invalidMethod(method)
	}
	return m, nil
}

func normalizeNote(note string) *string {
	cleaned := sanitizeText(note)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// ValidateAndSanitizeForCreate guarantees that no payment reaches
// persistence in an invalid state. It performs no writes; the receipt
// uniqueness lookup is the only store access.
func ValidateAndSanitizeForCreate(ctx context.Context, store Store, in CreateInput) (*NewPayment, error) {
	if strings.TrimSpace(in.StudentID) == "" {
		return nil, missingField("student_id")
	}
	if strings.TrimSpace(in.BranchID) == "" {
		return nil, missingField("branch_id")
	}
	if strings.TrimSpace(in.RecordedBy) == "" {
		return nil, missingField("recorded_by")
	}

	if err := checkAmount(in.Amount); err != nil {
		return nil, err
	}

	method, err := normalizeMethod(in.Method)
	if err != nil {
		return nil, err
	}

	receiptID, err := ResolveReceiptID(ctx, store, in.ReceiptID)
	if err != nil {
		return nil, err
	}

	return &NewPayment{
		StudentID:  strings.TrimSpace(in.StudentID),
		BranchID:   strings.TrimSpace(in.BranchID),
		RecordedBy: strings.TrimSpace(in.RecordedBy),
		Amount:     in.Amount,
		Method:     method,
		Note:       normalizeNote(in.Note),
		ReceiptID:  receiptID,
	}, nil
}

// ValidateAndSanitizeForUpdate validates only the fields present in the
// partial input. An empty patch is legal and changes nothing but the
// update timestamp.
func ValidateAndSanitizeForUpdate(ctx context.Context, store Store, paymentID string, in UpdateInput) (*PaymentPatch, error) {
	if strings.TrimSpace(paymentID) == "" {
		return nil, missingField("payment_id")
	}

	if _, err := store.GetPayment(ctx, paymentID); err != nil {
		return nil, err
	}

	patch := &PaymentPatch{UpdatedAt: time.Now()}

	if in.Amount != nil {
		if err := checkAmount(*in.Amount); err != nil {
			return nil, err
		}
		patch.Amount = in.Amount
	}

	if in.Method != nil {
		method, err := normalizeMethod(*in.Method)
		if err != nil {
			return nil, err
		}
		patch.Method = &method
	}

	if in.Note != nil {
		patch.Note = normalizeNote(*in.Note)
		patch.NoteSet = true
	}

	return patch, nil
}
