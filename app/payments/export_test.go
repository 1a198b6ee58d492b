package payments

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportToCSV(t *testing.T) {
	t.Run("empty input yields exactly the header", func(t *testing.T) {
		assert.Equal(t, ExportHeader, ExportToCSV(nil))
		assert.Equal(t, ExportHeader, ExportToCSV([]ExportRow{}))
	})

	t.Run("renders one row per payment", func(t *testing.T) {
		createdAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
		note := "first installment"
		out := ExportToCSV([]ExportRow{
			{
				ID:          "1",
				StudentID:   "s1",
				StudentName: "Alice",
				Amount:      500,
				Method:      "cash",
				Note:        &note,
				RecordedBy:  "u1",
				CreatedAt:   &createdAt,
				ReceiptID:   "r1",
			},
			{
				ID:         "2",
				StudentID:  "s2",
				Amount:     1250.5,
				Method:     "cheque",
				RecordedBy: "u1",
				ReceiptID:  "r2",
			},
		})

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, ExportHeader, lines[0])

		assert.Contains(t, lines[1], "Alice")
		assert.Contains(t, lines[1], "500")
		assert.Contains(t, lines[1], "2026-02-14T09:30:00Z")

		// absent name, note and timestamp render as empty fields
		assert.Equal(t, "2,s2,,1250.5,cheque,,u1,,r2", lines[2])
	})
}
