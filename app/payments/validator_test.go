package payments

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisima-schools/app/models"
)

type fakeStore struct {
	receipts map[string]bool
	payments map[string]*models.Payment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		receipts: make(map[string]bool),
		payments: make(map[string]*models.Payment),
	}
}

func (f *fakeStore) ReceiptIDExists(_ context.Context, receiptID string) (bool, error) {
	return f.receipts[receiptID], nil
}

func (f *fakeStore) GetPayment(_ context.Context, paymentID string) (*models.Payment, error) {
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		StudentID:  "s1",
		BranchID:   "b1",
		RecordedBy: "u1",
		Amount:     500,
		Method:     "CASH",
	}
}

func TestValidateAndSanitizeForCreate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	t.Run("normalizes a valid submission", func(t *testing.T) {
		got, err := ValidateAndSanitizeForCreate(ctx, store, validCreateInput())
		require.NoError(t, err)
		assert.Equal(t, models.MethodCash, got.Method)
		assert.Equal(t, "s1", got.StudentID)
		assert.True(t, IsValidReceiptID(got.ReceiptID), "expected a minted UUID receipt id")
		assert.Nil(t, got.Note)
	})

	t.Run("defaults method to cash", func(t *testing.T) {
		in := validCreateInput()
		in.Method = ""
		got, err := ValidateAndSanitizeForCreate(ctx, store, in)
		require.NoError(t, err)
		assert.Equal(t, models.MethodCash, got.Method)
	})

	t.Run("sanitizes the note", func(t *testing.T) {
		in := validCreateInput()
		in.Note = `term 1 <script>'fees'"; paid & cleared | ` + "`echo`" + ` $HOME`
		got, err := ValidateAndSanitizeForCreate(ctx, store, in)
		require.NoError(t, err)
		require.NotNil(t, got.Note)
		for _, banned := range []string{"<", ">", "'", `"`, ";", "&", "|", "`", "$"} {
			assert.NotContains(t, *got.Note, banned)
		}
		assert.Contains(t, *got.Note, "term 1")
	})

	t.Run("note that sanitizes to nothing becomes nil", func(t *testing.T) {
		in := validCreateInput()
		in.Note = `<>"";;`
		got, err := ValidateAndSanitizeForCreate(ctx, store, in)
		require.NoError(t, err)
		assert.Nil(t, got.Note)
	})

	t.Run("missing required fields", func(t *testing.T) {
		for _, tc := range []struct {
			name   string
			mutate func(*CreateInput)
		}{
			{"student_id", func(in *CreateInput) { in.StudentID = "" }},
			{"branch_id", func(in *CreateInput) { in.BranchID = "  " }},
			{"recorded_by", func(in *CreateInput) { in.RecordedBy = "" }},
		} {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := ValidateAndSanitizeForCreate(ctx, store, in)
			assert.ErrorIs(t, err, ErrMissingField, tc.name)
		}
	})

	t.Run("rejects bad amounts", func(t *testing.T) {
		for _, amount := range []float64{0, -10, math.NaN(), math.Inf(1), math.Inf(-1), MaxPaymentAmount + 1} {
			in := validCreateInput()
			in.Amount = amount
			_, err := ValidateAndSanitizeForCreate(ctx, store, in)
			assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amount)
		}
	})

	t.Run("rejects unknown methods", func(t *testing.T) {
		in := validCreateInput()
		in.Method = "paypal"
		_, err := ValidateAndSanitizeForCreate(ctx, store, in)
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("accepts every method case-insensitively", func(t *testing.T) {
		for _, m := range []string{"cash", "Bank_Transfer", "CHEQUE", "card", "Online"} {
			in := validCreateInput()
			in.Method = m
			got, err := ValidateAndSanitizeForCreate(ctx, store, in)
			require.NoError(t, err, m)
			assert.True(t, got.Method.IsValid())
		}
	})

	t.Run("keeps a valid supplied receipt id", func(t *testing.T) {
		in := validCreateInput()
		in.ReceiptID = "9e107d9d-4e5f-4f11-8f3a-1b2c3d4e5f60"
		got, err := ValidateAndSanitizeForCreate(ctx, store, in)
		require.NoError(t, err)
		assert.Equal(t, in.ReceiptID, got.ReceiptID)
	})

	t.Run("rejects a duplicate supplied receipt id", func(t *testing.T) {
		store.receipts["9e107d9d-4e5f-4f11-8f3a-1b2c3d4e5f60"] = true
		in := validCreateInput()
		in.ReceiptID = "9e107d9d-4e5f-4f11-8f3a-1b2c3d4e5f60"
		_, err := ValidateAndSanitizeForCreate(ctx, store, in)
		assert.ErrorIs(t, err, ErrDuplicateReceipt)
	})
}

func TestValidateAndSanitizeForUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.payments["p1"] = &models.Payment{ID: "p1", StudentID: "s1", Amount: 500}

	t.Run("unknown payment", func(t *testing.T) {
		_, err := ValidateAndSanitizeForUpdate(ctx, store, "missing", UpdateInput{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty patch only touches the timestamp", func(t *testing.T) {
		before := time.Now()
		patch, err := ValidateAndSanitizeForUpdate(ctx, store, "p1", UpdateInput{})
		require.NoError(t, err)
		assert.Nil(t, patch.Amount)
		assert.Nil(t, patch.Method)
		assert.False(t, patch.NoteSet)
		assert.False(t, patch.UpdatedAt.Before(before))
	})

	t.Run("validates only the fields present", func(t *testing.T) {
		amount := -5.0
		_, err := ValidateAndSanitizeForUpdate(ctx, store, "p1", UpdateInput{Amount: &amount})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		method := "mobile_money"
		_, err = ValidateAndSanitizeForUpdate(ctx, store, "p1", UpdateInput{Method: &method})
		assert.ErrorIs(t, err, ErrInvalidMethod)
	})

	t.Run("normalizes amended fields", func(t *testing.T) {
		amount := 750.0
		method := "Bank_Transfer"
		note := "second <installment>"
		patch, err := ValidateAndSanitizeForUpdate(ctx, store, "p1", UpdateInput{
			Amount: &amount,
			Method: &method,
			Note:   &note,
		})
		require.NoError(t, err)
		require.NotNil(t, patch.Amount)
		assert.Equal(t, 750.0, *patch.Amount)
		require.NotNil(t, patch.Method)
		assert.Equal(t, models.MethodBankTransfer, *patch.Method)
		assert.True(t, patch.NoteSet)
		require.NotNil(t, patch.Note)
		assert.Equal(t, "second installment", *patch.Note)
	})

	t.Run("clears the note when asked", func(t *testing.T) {
		empty := ""
		patch, err := ValidateAndSanitizeForUpdate(ctx, store, "p1", UpdateInput{Note: &empty})
		require.NoError(t, err)
		assert.True(t, patch.NoteSet)
		assert.Nil(t, patch.Note)
	})
}
