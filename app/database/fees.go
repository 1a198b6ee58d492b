package database

import (
	"database/sql"
	"fmt"

	"kisima-schools/app/models"
)

// FeeRow is one fee joined with its student and fee type for display.
type FeeRow struct {
	models.Fee
	StudentName string `json:"student_name,omitempty"`
	StudentCode string `json:"student_code,omitempty"`
	FeeTypeName string `json:"fee_type_name,omitempty"`
}

// ListFees returns fees newest first, optionally filtered by student,
// branch and paid status ("paid", "unpaid" or "").
func ListFees(db *sql.DB, studentID, branchID, status string) ([]*FeeRow, error) {
	args := []interface{}{}
	query := `SELECT f.id, f.student_id, f.fee_type_id, f.branch_id, f.title, f.amount, f.balance,
			  f.currency, f.paid, f.due_date, f.paid_at, f.created_at, f.updated_at,
			  s.first_name, s.last_name, s.student_id as student_code, ft.name
			  FROM fees f
			  JOIN students s ON f.student_id = s.id
			  JOIN fee_types ft ON f.fee_type_id = ft.id
			  WHERE s.is_active = true AND f.deleted_at IS NULL`

	if studentID != "" {
		args = append(args, studentID)
		query += fmt.Sprintf(" AND f.student_id = $%d", len(args))
	}
	if branchID != "" {
		args = append(args, branchID)
		query += fmt.Sprintf(" AND f.branch_id = $%d", len(args))
	}
	if status == "paid" {
		query += " AND f.paid = true"
	} else if status == "unpaid" {
		query += " AND f.paid = false"
	}
	query += " ORDER BY f.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fees: %v", err)
	}
	defer rows.Close()

	var fees []*FeeRow
	for rows.Next() {
		fee := &FeeRow{}
		var firstName, lastName string
		err := rows.Scan(
			&fee.ID, &fee.StudentID, &fee.FeeTypeID, &fee.BranchID, &fee.Title,
			&fee.Amount, &fee.Balance, &fee.Currency, &fee.Paid,
			&fee.DueDate, &fee.PaidAt, &fee.CreatedAt, &fee.UpdatedAt,
			&firstName, &lastName, &fee.StudentCode, &fee.FeeTypeName,
		)
		if err != nil {
			continue
		}
		fee.StudentName = firstName + " " + lastName
		fees = append(fees, fee)
	}
	return fees, nil
}

func GetFeeByID(db *sql.DB, feeID string) (*models.Fee, error) {
	fee := &models.Fee{}
	query := `SELECT id, student_id, fee_type_id, branch_id, title, amount, balance, currency,
			  paid, due_date, paid_at, created_at, updated_at
			  FROM fees WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, feeID).Scan(
		&fee.ID, &fee.StudentID, &fee.FeeTypeID, &fee.BranchID, &fee.Title,
		&fee.Amount, &fee.Balance, &fee.Currency, &fee.Paid,
		&fee.DueDate, &fee.PaidAt, &fee.CreatedAt, &fee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fee, nil
}

func CreateFee(db *sql.DB, fee *models.Fee) error {
	query := `INSERT INTO fees (student_id, fee_type_id, branch_id, title, amount, balance, currency, due_date, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $5, $6, $7, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query,
		fee.StudentID, fee.FeeTypeID, fee.BranchID, fee.Title,
		fee.Amount, fee.Currency, fee.DueDate,
	).Scan(&fee.ID, &fee.CreatedAt, &fee.UpdatedAt)
}

func MarkFeeAsPaid(db *sql.DB, feeID string) error {
	query := `UPDATE fees SET paid = true, balance = 0, paid_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.Exec(query, feeID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil || rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UnpaidFeeReminder is one overdue fee flattened for the reminder job.
type UnpaidFeeReminder struct {
	FeeTitle    string
	Amount      float64
	Currency    string
	StudentName string
	ParentEmail string
	BranchID    string
}

// ListOverdueFees returns unpaid fees past their due date whose student
// has a parent email on file.
func ListOverdueFees(db *sql.DB) ([]*UnpaidFeeReminder, error) {
	query := `SELECT f.title, f.amount, f.currency, s.first_name, s.last_name, s.parent_email, f.branch_id
			  FROM fees f
			  JOIN students s ON f.student_id = s.id
			  WHERE f.paid = false AND f.deleted_at IS NULL AND f.due_date < NOW()
			  AND s.is_active = true AND s.parent_email IS NOT NULL`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*UnpaidFeeReminder
	for rows.Next() {
		r := &UnpaidFeeReminder{}
		var firstName, lastName string
		if err := rows.Scan(&r.FeeTitle, &r.Amount, &r.Currency, &firstName, &lastName, &r.ParentEmail, &r.BranchID); err != nil {
			continue
		}
		r.StudentName = firstName + " " + lastName
		reminders = append(reminders, r)
	}
	return reminders, nil
}

// ListFeeTypes returns active fee types ordered by name.
func ListFeeTypes(db *sql.DB) ([]*models.FeeType, error) {
	query := `SELECT id, name, code, description, payment_frequency, is_active, created_at, updated_at
			  FROM fee_types WHERE is_active = true ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feeTypes []*models.FeeType
	for rows.Next() {
		ft := &models.FeeType{}
		var frequency string
		err := rows.Scan(
			&ft.ID, &ft.Name, &ft.Code, &ft.Description,
			&frequency, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt,
		)
		if err != nil {
			continue
		}
		ft.PaymentFrequency = models.PaymentFrequency(frequency)
		feeTypes = append(feeTypes, ft)
	}
	return feeTypes, nil
}
