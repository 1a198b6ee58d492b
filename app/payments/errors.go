package payments

import "fmt"

// Kind classifies a validation failure so callers can map it to a
// form message or an HTTP status.
type Kind string

const (
	KindMissingField         Kind = "missing_field"
	KindInvalidAmount        Kind = "invalid_amount"
	KindInvalidMethod        Kind = "invalid_method"
	KindInvalidReceiptFormat Kind = "invalid_receipt_format"
	KindDuplicateReceipt     Kind = "duplicate_receipt"
	KindNotFound             Kind = "not_found"
)

// Error is a validation failure raised by the payment pipeline.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidAmount)
// works regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel values for errors.Is checks.
var (
	ErrMissingField         = &Error{Kind: KindMissingField, Message: "required field missing"}
	ErrInvalidAmount        = &Error{Kind: KindInvalidAmount, Message: "invalid amount"}
	ErrInvalidMethod        = &Error{Kind: KindInvalidMethod, Message: "invalid payment method"}
	ErrInvalidReceiptFormat = &Error{Kind: KindInvalidReceiptFormat, Message: "invalid receipt id format"}
	ErrDuplicateReceipt     = &Error{Kind: KindDuplicateReceipt, Message: "receipt id already exists"}
	ErrNotFound             = &Error{Kind: KindNotFound, Message: "payment not found"}
)

func missingField(field string) *Error {
	return &Error{Kind: KindMissingField, Message: fmt.Sprintf("%s is required", field)}
}

func invalidAmount(reason string) *Error {
	return &Error{Kind: KindInvalidAmount, Message: fmt.Sprintf("invalid amount: %s", reason)}
}

func invalidMethod(method string) *Error {
	return &Error{Kind: KindInvalidMethod, Message: fmt.Sprintf("invalid payment method %q", method)}
}
