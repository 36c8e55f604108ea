package repositories

import (
	"errors"

	"tugas/internal/models"
)

// ErrTaskNotFound is returned by lookups and mutations when no task matches.
var ErrTaskNotFound = errors.New("task not found")

// Status filter values accepted by GetAllByUser. Anything else means "no filter".
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Sort keys accepted by GetAllByUser, all ascending. Anything else keeps
// the store's natural insertion order.
const (
	SortCreatedAt = "created_at"
	SortUpdatedAt = "updated_at"
	SortTitle     = "title"
)

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	GetAllByUser(userID, status, sortBy string) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uint) error
}
