package database

import (
	"database/sql"

	"kisima-schools/app/models"
)

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	s := &models.Student{}
	query := `SELECT id, student_id, first_name, last_name, branch_id, parent_email, is_active, created_at, updated_at
			  FROM students WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, studentID).Scan(
		&s.ID, &s.StudentID, &s.FirstName, &s.LastName,
		&s.BranchID, &s.ParentEmail, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListStudentsByBranch returns active students at a branch, ordered by name.
func ListStudentsByBranch(db *sql.DB, branchID string) ([]*models.Student, error) {
	query := `SELECT id, student_id, first_name, last_name, branch_id, parent_email, is_active, created_at, updated_at
			  FROM students
			  WHERE branch_id = $1 AND is_active = true
			  ORDER BY first_name, last_name`

	rows, err := db.Query(query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(
			&s.ID, &s.StudentID, &s.FirstName, &s.LastName,
			&s.BranchID, &s.ParentEmail, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			continue
		}
		students = append(students, s)
	}
	return students, nil
}
