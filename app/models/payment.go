package models

import "time"

// Payment represents one fee payment event recorded at a branch.
type Payment struct {
	ID         string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID  string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	BranchID   string        `json:"branch_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	RecordedBy string        `json:"recorded_by" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount     float64       `json:"amount" gorm:"not null;type:numeric" validate:"required,gt=0"`
	Method     PaymentMethod `json:"method" gorm:"not null;type:varchar(20)" validate:"required"`
	Note       *string       `json:"note,omitempty" gorm:"type:text"`
	ReceiptID  string        `json:"receipt_id" gorm:"uniqueIndex;not null;type:uuid" validate:"required,uuid4"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time    `json:"deleted_at,omitempty" gorm:"index"`

	Student        *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Branch         *Branch  `json:"branch,omitempty" gorm:"foreignKey:BranchID;references:ID"`
	RecordedByUser *User    `json:"recorded_by_user,omitempty" gorm:"foreignKey:RecordedBy;references:ID"`
}
