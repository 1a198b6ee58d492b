package models

import "time"

// Branch represents a physical campus that scopes data visibility
// for non-admin roles.
type Branch struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code      string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Address   *string    `json:"address,omitempty" gorm:"type:text"`
	Email     *string    `json:"email,omitempty" gorm:"type:varchar(255)"`
	Phone     *string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	IsActive  bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}
