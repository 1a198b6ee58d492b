package payments

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

// Receipt ids are UUID-v4 shaped: version nibble 4, variant in [89ab].
var receiptIDPattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// IsValidReceiptID reports whether s has the expected receipt id shape.
func IsValidReceiptID(s string) bool {
	return receiptIDPattern.MatchString(s)
}

// ResolveReceiptID mints or polices the human-facing receipt key.
//
// With no supplied id a fresh UUID-v4 is returned without a uniqueness
// lookup: a brand-new id cannot realistically collide. A supplied id is
// shape-checked and then looked up in the store; an existing match is
// rejected with ErrDuplicateReceipt.
//
// The check-then-act here is advisory, not transactional: two concurrent
// creates with the same supplied id can both pass. The payments table's
// UNIQUE constraint on receipt_id is the hard guarantee; this pre-check
// only gives the caller an early, friendlier failure.
func ResolveReceiptID(ctx context.Context, store Store, supplied string) (string, error) {
	if supplied == "" {
		return uuid.NewString(), nil
	}

	if !IsValidReceiptID(supplied) {
		return "", &Error{Kind: KindInvalidReceiptFormat, Message: "receipt id must be a UUID"}
	}

	exists, err := store.ReceiptIDExists(ctx, supplied)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateReceipt
	}
	return supplied, nil
}
