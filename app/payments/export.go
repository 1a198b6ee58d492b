package payments

import (
	"strconv"
	"strings"
	"time"
)

// ExportHeader is the fixed column order of the payments export. The
// byte layout is consumed by existing spreadsheet imports, so the names
// and order must not change.
const ExportHeader = "id,student_id,student_name,amount,method,note,recorded_by,created_at,receipt_id"

// ExportRow is one payment flattened for export, with the student name
// already joined in.
type ExportRow struct {
	ID          string
	StudentID   string
	StudentName string
	Amount      float64
	Method      string
	Note        *string
	RecordedBy  string
	CreatedAt   *time.Time
	ReceiptID   string
}

// ExportToCSV renders payments as a fixed-column comma-delimited block.
// The header row is always emitted, even for an empty input. Timestamps
// render as RFC 3339; absent fields render as empty strings.
//
// Field values are NOT escaped: a note containing a comma or newline
// will break the row. The export feeds an internal spreadsheet import,
// not a public interchange format, and notes are already sanitized of
// quote characters, so this is accepted.
func ExportToCSV(rows []ExportRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, ExportHeader)

	for _, r := range rows {
		note := ""
		if r.Note != nil {
			note = *r.Note
		}
		createdAt := ""
		if r.CreatedAt != nil {
			createdAt = r.CreatedAt.Format(time.RFC3339)
		}
		lines = append(lines, strings.Join([]string{
			r.ID,
			r.StudentID,
			r.StudentName,
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			r.Method,
			note,
			r.RecordedBy,
			createdAt,
			r.ReceiptID,
		}, ","))
	}

	return strings.Join(lines, "\n")
}
