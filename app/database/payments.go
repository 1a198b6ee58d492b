package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"kisima-schools/app/models"
	"kisima-schools/app/payments"
)

const pgUniqueViolation = "23505"
const pgInvalidTextRepresentation = "22P02"

// InsertPayment persists a validated payment and fills in the
// server-assigned id and timestamps. A receipt_id collision that slipped
// past the advisory pre-check surfaces as payments.ErrDuplicateReceipt,
// backed by the UNIQUE constraint on the column.
func InsertPayment(ctx context.Context, db *sql.DB, p *models.Payment) error {
	query := `INSERT INTO payments (student_id, branch_id, recorded_by, amount, method, note, receipt_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := db.QueryRowContext(ctx, query,
		p.StudentID, p.BranchID, p.RecordedBy,
		p.Amount, string(p.Method), p.Note, p.ReceiptID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation && strings.Contains(pqErr.Constraint, "receipt") {
			return payments.ErrDuplicateReceipt
		}
		return fmt.Errorf("failed to insert payment: %v", err)
	}
	return nil
}

// GetPaymentByID fetches one payment. Missing records and malformed
// uuids both map to payments.ErrNotFound.
func GetPaymentByID(ctx context.Context, db *sql.DB, paymentID string) (*models.Payment, error) {
	p := &models.Payment{}
	query := `SELECT id, student_id, branch_id, recorded_by, amount, method, note, receipt_id, created_at, updated_at
			  FROM payments WHERE id = $1 AND deleted_at IS NULL`

	var method string
	err := db.QueryRowContext(ctx, query, paymentID).Scan(
		&p.ID, &p.StudentID, &p.BranchID, &p.RecordedBy,
		&p.Amount, &method, &p.Note, &p.ReceiptID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || isInvalidUUID(err) {
			return nil, payments.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment: %v", err)
	}
	p.Method = models.PaymentMethod(method)
	return p, nil
}

// ReceiptIDExists reports whether any payment, including soft-deleted
// ones, carries the given receipt id. Deleted payments keep their
// receipt id reserved so a reissued receipt can never alias an old one.
func ReceiptIDExists(ctx context.Context, db *sql.DB, receiptID string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE receipt_id = $1)`, receiptID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check receipt id: %v", err)
	}
	return exists, nil
}

// UpdatePayment applies a validated partial update. Only amount, method
// and note are amendable; the patch carries which of them to touch.
func UpdatePayment(ctx context.Context, db *sql.DB, paymentID string, patch *payments.PaymentPatch) error {
	sets := []string{}
	args := []interface{}{}
	argIndex := 1

	if patch.Amount != nil {
		sets = append(sets, fmt.Sprintf("amount = $%d", argIndex))
		args = append(args, *patch.Amount)
		argIndex++
	}
	if patch.Method != nil {
		sets = append(sets, fmt.Sprintf("method = $%d", argIndex))
		args = append(args, string(*patch.Method))
		argIndex++
	}
	if patch.NoteSet {
		sets = append(sets, fmt.Sprintf("note = $%d", argIndex))
		args = append(args, patch.Note)
		argIndex++
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, patch.UpdatedAt)
	argIndex++

	query := fmt.Sprintf("UPDATE payments SET %s WHERE id = $%d AND deleted_at IS NULL",
		strings.Join(sets, ", "), argIndex)
	args = append(args, paymentID)

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return payments.ErrNotFound
		}
		return fmt.Errorf("failed to update payment: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil || rowsAffected == 0 {
		return payments.ErrNotFound
	}
	return nil
}

// PaymentFilters narrows payment listings; zero values mean "no filter".
type PaymentFilters struct {
	StudentID string
	BranchID  string
	Method    string
}

// PaymentRow is one payment joined with its student for display and export.
type PaymentRow struct {
	models.Payment
	StudentName string `json:"student_name,omitempty"`
	StudentCode string `json:"student_code,omitempty"`
}

func paymentFilterClause(f PaymentFilters, args *[]interface{}) string {
	var conditions []string
	if f.StudentID != "" {
		*args = append(*args, f.StudentID)
		conditions = append(conditions, fmt.Sprintf("p.student_id = $%d", len(*args)))
	}
	if f.BranchID != "" {
		*args = append(*args, f.BranchID)
		conditions = append(conditions, fmt.Sprintf("p.branch_id = $%d", len(*args)))
	}
	if f.Method != "" {
		*args = append(*args, strings.ToLower(f.Method))
		conditions = append(conditions, fmt.Sprintf("p.method = $%d", len(*args)))
	}
	if len(conditions) == 0 {
		return ""
	}
	return " AND " + strings.Join(conditions, " AND ")
}

// ListPayments returns payments newest first, joined with student names.
func ListPayments(ctx context.Context, db *sql.DB, f PaymentFilters) ([]*PaymentRow, error) {
	args := []interface{}{}
	query := `SELECT p.id, p.student_id, p.branch_id, p.recorded_by, p.amount, p.method, p.note,
			  p.receipt_id, p.created_at, p.updated_at,
			  s.first_name, s.last_name, s.student_id as student_code
			  FROM payments p
			  JOIN students s ON p.student_id = s.id
			  WHERE p.deleted_at IS NULL AND s.is_active = true`
	query += paymentFilterClause(f, &args)
	query += " ORDER BY p.created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %v", err)
	}
	defer rows.Close()

	var results []*PaymentRow
	for rows.Next() {
		row := &PaymentRow{}
		var method, firstName, lastName string
		err := rows.Scan(
			&row.ID, &row.StudentID, &row.BranchID, &row.RecordedBy,
			&row.Amount, &method, &row.Note, &row.ReceiptID,
			&row.CreatedAt, &row.UpdatedAt,
			&firstName, &lastName, &row.StudentCode,
		)
		if err != nil {
			continue
		}
		row.Method = models.PaymentMethod(method)
		row.StudentName = firstName + " " + lastName
		results = append(results, row)
	}
	return results, nil
}

// ListPaymentExportRows flattens payments into the fixed export shape.
func ListPaymentExportRows(ctx context.Context, db *sql.DB, f PaymentFilters) ([]payments.ExportRow, error) {
	listed, err := ListPayments(ctx, db, f)
	if err != nil {
		return nil, err
	}

	rows := make([]payments.ExportRow, 0, len(listed))
	for _, p := range listed {
		createdAt := p.CreatedAt
		rows = append(rows, payments.ExportRow{
			ID:          p.ID,
			StudentID:   p.StudentCode,
			StudentName: p.StudentName,
			Amount:      p.Amount,
			Method:      string(p.Method),
			Note:        p.Note,
			RecordedBy:  p.RecordedBy,
			CreatedAt:   &createdAt,
			ReceiptID:   p.ReceiptID,
		})
	}
	return rows, nil
}

// PaymentStats aggregates payments for the accountant dashboard.
type PaymentStats struct {
	TotalPayments int                `json:"total_payments"`
	TotalAmount   float64            `json:"total_amount"`
	ByMethod      map[string]float64 `json:"by_method"`
}

// GetPaymentStats totals payments, optionally scoped to one branch.
func GetPaymentStats(ctx context.Context, db *sql.DB, branchID string) (*PaymentStats, error) {
	args := []interface{}{}
	query := `SELECT method, COUNT(*), COALESCE(SUM(amount), 0)
			  FROM payments WHERE deleted_at IS NULL`
	if branchID != "" {
		args = append(args, branchID)
		query += " AND branch_id = $1"
	}
	query += " GROUP BY method"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment stats: %v", err)
	}
	defer rows.Close()

	stats := &PaymentStats{ByMethod: make(map[string]float64)}
	for rows.Next() {
		var method string
		var count int
		var amount float64
		if err := rows.Scan(&method, &count, &amount); err != nil {
			continue
		}
		stats.TotalPayments += count
		stats.TotalAmount += amount
		stats.ByMethod[method] = amount
	}
	return stats, nil
}

func isInvalidUUID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgInvalidTextRepresentation
}

// PaymentStore adapts the SQL layer to the payments.Store interface the
// validation pipeline consumes.
type PaymentStore struct {
	DB *sql.DB
}

func NewPaymentStore(db *sql.DB) *PaymentStore {
	return &PaymentStore{DB: db}
}

func (s *PaymentStore) ReceiptIDExists(ctx context.Context, receiptID string) (bool, error) {
	return ReceiptIDExists(ctx, s.DB, receiptID)
}

func (s *PaymentStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	return GetPaymentByID(ctx, s.DB, paymentID)
}
