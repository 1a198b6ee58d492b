package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReceiptID(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	t.Run("mints distinct ids", func(t *testing.T) {
		first, err := ResolveReceiptID(ctx, store, "")
		require.NoError(t, err)
		second, err := ResolveReceiptID(ctx, store, "")
		require.NoError(t, err)

		assert.True(t, IsValidReceiptID(first))
		assert.True(t, IsValidReceiptID(second))
		assert.NotEqual(t, first, second)
	})

	t.Run("returns an unused supplied id unchanged", func(t *testing.T) {
		supplied := "9e107d9d-4e5f-4f11-8f3a-1b2c3d4e5f60"
		got, err := ResolveReceiptID(ctx, store, supplied)
		require.NoError(t, err)
		assert.Equal(t, supplied, got)
	})

	t.Run("rejects a malformed supplied id", func(t *testing.T) {
		for _, bad := range []string{
			"not-a-uuid",
			"9e107d9d4e5f4f118f3a1b2c3d4e5f60",
			// version nibble is 1, not 4
			"9e107d9d-4e5f-1f11-8f3a-1b2c3d4e5f60",
		} {
			_, err := ResolveReceiptID(ctx, store, bad)
			assert.ErrorIs(t, err, ErrInvalidReceiptFormat, bad)
		}
	})

	t.Run("rejects an id already in the store", func(t *testing.T) {
		existing := "c2d4e6f8-1a2b-4c5d-9e8f-0a1b2c3d4e5f"
		store.receipts[existing] = true
		_, err := ResolveReceiptID(ctx, store, existing)
		assert.ErrorIs(t, err, ErrDuplicateReceipt)
	})
}
