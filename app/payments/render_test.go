package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceiptRenderer(t *testing.T) {
	assert.IsType(t, &PDFRenderer{}, NewReceiptRenderer(true))
	assert.IsType(t, &PlaceholderRenderer{}, NewReceiptRenderer(false))
}

func TestPlaceholderRenderer(t *testing.T) {
	r := &PlaceholderRenderer{}
	result := r.Render(ReceiptData{ReceiptID: "r1", StudentName: "Alice", Amount: 500})

	assert.True(t, result.OK)
	assert.Equal(t, "r1", result.ReceiptID)
	assert.Empty(t, result.PDF)
	assert.Empty(t, result.Error)
}

func TestPDFRenderer(t *testing.T) {
	r := &PDFRenderer{}
	result := r.Render(ReceiptData{
		ReceiptID:   "9e107d9d-4e5f-4f11-8f3a-1b2c3d4e5f60",
		StudentName: "Alice Nansubuga",
		Amount:      500,
		Method:      "cash",
		RecordedBy:  "Bursar",
		Note:        "term one",
	})

	require.True(t, result.OK, "render failed: %s", result.Error)
	assert.Equal(t, "9e107d9d-4e5f-4f11-8f3a-1b2c3d4e5f60", result.ReceiptID)
	require.NotEmpty(t, result.PDF)
	assert.Equal(t, "%PDF", string(result.PDF[:4]))
}
