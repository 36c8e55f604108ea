package repositories

import (
	"fmt"

	"tugas/internal/models"

	"gorm.io/gorm"
)

// GORMTaskRepository is a GORM implementation of TaskRepository.
type GORMTaskRepository struct {
	db *gorm.DB
}

// NewGORMTaskRepository creates a new instance of GORMTaskRepository.
func NewGORMTaskRepository(db *gorm.DB) *GORMTaskRepository {
	return &GORMTaskRepository{
		db: db,
	}
}

// Create creates a new task in the database. The surrogate key is
// assigned by the database and written back into task.ID.
func (r *GORMTaskRepository) Create(task *models.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a single task by its ID. No ownership check is done
// here; callers are responsible for authorization.
func (r *GORMTaskRepository) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task by ID %d: %w", id, err)
	}
	return &task, nil
}

// GetAllByUser retrieves all tasks owned by userID, optionally filtered
// by completion status and sorted ascending by the given key.
// Unrecognized status or sort values are ignored.
func (r *GORMTaskRepository) GetAllByUser(userID, status, sortBy string) ([]models.Task, error) {
	query := r.db.Where("user_id = ?", userID)

	switch status {
	case StatusActive:
		query = query.Where("completed = ?", false)
	case StatusCompleted:
		query = query.Where("completed = ?", true)
	}

	switch sortBy {
	case SortCreatedAt:
		query = query.Order("created_at")
	case SortUpdatedAt:
		query = query.Order("updated_at")
	case SortTitle:
		query = query.Order("title")
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to get tasks for user %s: %w", userID, err)
	}
	return tasks, nil
}

// Update replaces an existing task record in full, zero values included.
func (r *GORMTaskRepository) Update(task *models.Task) error {
	res := r.db.Save(task) // Save writes every field as a single record replace
	if res.Error != nil {
		return fmt.Errorf("failed to update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound when no rows
		// matched, so we check RowsAffected.
		return ErrTaskNotFound
	}
	return nil
}

// Delete permanently removes a task by its ID.
func (r *GORMTaskRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
