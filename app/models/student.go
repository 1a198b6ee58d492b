package models

import "time"

// Student represents an enrolled student at a branch.
type Student struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID   string     `json:"student_id" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName   string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName    string     `json:"last_name" gorm:"not null" validate:"required"`
	BranchID    string     `json:"branch_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ParentEmail *string    `json:"parent_email,omitempty" gorm:"type:varchar(255)"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Branch *Branch `json:"branch,omitempty" gorm:"foreignKey:BranchID;references:ID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
