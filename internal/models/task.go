package models

import "time"

// Task represents a todo item owned by a single user.
// Deletion is a hard delete, so we declare timestamps explicitly
// instead of embedding gorm.Model (which would add DeletedAt and
// turn every delete into a soft delete).
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null" validate:"required,min=1,max=200"`
	Description string    `json:"description" gorm:"type:text"`
	Completed   bool      `json:"completed" gorm:"default:false"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
