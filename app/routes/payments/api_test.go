package payments

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"kisima-schools/app/payments"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{payments.ErrNotFound, fiber.StatusNotFound},
		{payments.ErrDuplicateReceipt, fiber.StatusConflict},
		{payments.ErrMissingField, fiber.StatusBadRequest},
		{payments.ErrInvalidAmount, fiber.StatusBadRequest},
		{payments.ErrInvalidMethod, fiber.StatusBadRequest},
		{payments.ErrInvalidReceiptFormat, fiber.StatusBadRequest},
		{fmt.Errorf("lookup failed: %w", payments.ErrNotFound), fiber.StatusNotFound},
		{errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.status, statusForError(tc.err), "%v", tc.err)
	}
}
