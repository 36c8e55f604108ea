package repositories

import (
	"sort"
	"sync"

	"tugas/internal/models"
)

// MockTaskRepository is an in-memory implementation of TaskRepository.
// Tasks are kept in a slice so that unfiltered listings preserve
// insertion order, matching the natural order of a SQL table scan.
type MockTaskRepository struct {
	tasks  []models.Task
	nextID uint
	mu     sync.RWMutex
}

// NewMockTaskRepository creates a new instance of MockTaskRepository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		tasks:  make([]models.Task, 0),
		nextID: 1,
	}
}

// Create adds a new task, assigning the next monotonic ID.
func (r *MockTaskRepository) Create(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = r.nextID
	r.nextID++
	r.tasks = append(r.tasks, *task)
	return nil
}

// GetByID returns a task by its ID.
func (r *MockTaskRepository) GetByID(id uint) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			task := r.tasks[i]
			return &task, nil
		}
	}
	return nil, ErrTaskNotFound
}

// GetAllByUser returns all tasks owned by userID, filtered and sorted
// with the same semantics as the GORM implementation.
func (r *MockTaskRepository) GetAllByUser(userID, status, sortBy string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		switch status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		result = append(result, t)
	}

	switch sortBy {
	case SortCreatedAt:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	case SortUpdatedAt:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt.Before(result[j].UpdatedAt)
		})
	case SortTitle:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Title < result[j].Title
		})
	}
	return result, nil
}

// Update replaces an existing task in full.
func (r *MockTaskRepository) Update(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i] = *task
			return nil
		}
	}
	return ErrTaskNotFound
}

// Delete removes a task by its ID.
func (r *MockTaskRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}
