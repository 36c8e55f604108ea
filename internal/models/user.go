package models

import "time"

// User represents a registered account.
type User struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null" validate:"required"`
	PasswordHash  string    `json:"-" gorm:"type:varchar(255);not null"` // Never serialized
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
