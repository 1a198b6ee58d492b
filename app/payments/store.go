package payments

import (
	"context"

	"kisima-schools/app/models"
)

// Store is the slice of the persistence layer the validation pipeline
// reads from. The SQL implementation lives in app/database; tests use
// in-memory fakes.
type Store interface {
	// ReceiptIDExists reports whether a payment already carries the
	// given receipt id.
	ReceiptIDExists(ctx context.Context, receiptID string) (bool, error)

	// GetPayment returns the payment with the given internal id, or
	// ErrNotFound when no such record exists.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
}
