package services_test

import (
	"strings"
	"testing"

	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/internal/services"

	"github.com/stretchr/testify/assert"
)

func newTaskService() *services.TaskService {
	// The in-memory repository has the same filter/sort/natural-order
	// semantics as the GORM one, no broker attached.
	return services.NewTaskService(repositories.NewMockTaskRepository(), nil)
}

func TestTaskService_CreateTask(t *testing.T) {
	taskService := newTaskService()

	// Test successful creation with defaults
	task, err := taskService.CreateTask("alice", "Buy milk", "2 liters", false)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "alice", task.UserID)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	// Test boundary titles
	_, err = taskService.CreateTask("alice", "x", "", false)
	assert.NoError(t, err)
	_, err = taskService.CreateTask("alice", strings.Repeat("a", 200), "", false)
	assert.NoError(t, err)
}

func TestTaskService_CreateTask_InvalidTitle(t *testing.T) {
	taskService := newTaskService()

	for _, title := range []string{"", "   ", "\t\n", strings.Repeat("a", 201)} {
		_, err := taskService.CreateTask("alice", title, "", false)
		var validationErr *services.ValidationError
		assert.ErrorAs(t, err, &validationErr, "title %q should be rejected", title)
	}

	// Nothing was persisted by the failed creates
	tasks, err := taskService.GetTasks("alice", "", "")
	assert.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_UpdateTask(t *testing.T) {
	taskService := newTaskService()

	task, err := taskService.CreateTask("alice", "Buy milk", "2 liters", false)
	assert.NoError(t, err)

	// Full replace: every field is overwritten
	updated, err := taskService.UpdateTask("alice", task.ID, "Buy oat milk", "", true)
	assert.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.True(t, updated.Completed)
	assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt))

	// Unknown ID
	_, err = taskService.UpdateTask("alice", 999, "Anything", "", false)
	assert.ErrorIs(t, err, services.ErrTaskNotFound)

	// Invalid replacement title leaves the task unmodified
	_, err = taskService.UpdateTask("alice", task.ID, "  ", "", false)
	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	tasks, _ := taskService.GetTasks("alice", "", "")
	assert.Equal(t, "Buy oat milk", tasks[0].Title)
}

func TestTaskService_OwnershipEnforced(t *testing.T) {
	taskService := newTaskService()

	task, err := taskService.CreateTask("alice", "Alice's task", "", false)
	assert.NoError(t, err)

	// Every mutating operation fails with ErrNotTaskOwner for Bob
	_, err = taskService.UpdateTask("bob", task.ID, "Hijacked", "", true)
	assert.ErrorIs(t, err, services.ErrNotTaskOwner)

	err = taskService.DeleteTask("bob", task.ID)
	assert.ErrorIs(t, err, services.ErrNotTaskOwner)

	_, err = taskService.ToggleTask("bob", task.ID)
	assert.ErrorIs(t, err, services.ErrNotTaskOwner)

	// Alice's task is untouched
	tasks, err := taskService.GetTasks("alice", "", "")
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "Alice's task", tasks[0].Title)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, task.UpdatedAt, tasks[0].UpdatedAt)
}

func TestTaskService_DeleteTask(t *testing.T) {
	taskService := newTaskService()

	task, err := taskService.CreateTask("alice", "Disposable", "", false)
	assert.NoError(t, err)

	err = taskService.DeleteTask("alice", task.ID)
	assert.NoError(t, err)

	tasks, err := taskService.GetTasks("alice", "", "")
	assert.NoError(t, err)
	assert.Empty(t, tasks)

	// Deleting again reports not found, not forbidden
	err = taskService.DeleteTask("alice", task.ID)
	assert.ErrorIs(t, err, services.ErrTaskNotFound)
}

func TestTaskService_ToggleTask(t *testing.T) {
	taskService := newTaskService()

	task, err := taskService.CreateTask("alice", "Flip me", "", false)
	assert.NoError(t, err)

	// Unknown ID
	_, err = taskService.ToggleTask("alice", 999)
	assert.ErrorIs(t, err, services.ErrTaskNotFound)

	// Toggling twice returns to the original state with two timestamp bumps
	once, err := taskService.ToggleTask("alice", task.ID)
	assert.NoError(t, err)
	assert.True(t, once.Completed)
	assert.False(t, once.UpdatedAt.Before(task.UpdatedAt))

	twice, err := taskService.ToggleTask("alice", task.ID)
	assert.NoError(t, err)
	assert.False(t, twice.Completed)
	assert.False(t, twice.UpdatedAt.Before(once.UpdatedAt))
}

func TestTaskService_GetTasks_FilterAndSort(t *testing.T) {
	taskService := newTaskService()

	_, err := taskService.CreateTask("alice", "banana", "", false)
	assert.NoError(t, err)
	cherry, err := taskService.CreateTask("alice", "cherry", "", false)
	assert.NoError(t, err)
	_, err = taskService.CreateTask("alice", "apple", "", false)
	assert.NoError(t, err)
	_, err = taskService.CreateTask("bob", "not alice's", "", false)
	assert.NoError(t, err)

	_, err = taskService.ToggleTask("alice", cherry.ID)
	assert.NoError(t, err)

	// Base set is scoped to the owner, natural insertion order
	tasks, err := taskService.GetTasks("alice", "", "")
	assert.NoError(t, err)
	assert.Len(t, tasks, 3)
	assert.Equal(t, []string{"banana", "cherry", "apple"}, titlesOf(tasks))

	// Status filters
	active, err := taskService.GetTasks("alice", "active", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"banana", "apple"}, titlesOf(active))

	completed, err := taskService.GetTasks("alice", "completed", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"cherry"}, titlesOf(completed))

	// Unrecognized filter means no filter
	all, err := taskService.GetTasks("alice", "bogus", "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// Sort by title ascending
	byTitle, err := taskService.GetTasks("alice", "", "title")
	assert.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, titlesOf(byTitle))

	// Sort by creation time ascending
	byCreated, err := taskService.GetTasks("alice", "", "created_at")
	assert.NoError(t, err)
	assert.Equal(t, []string{"banana", "cherry", "apple"}, titlesOf(byCreated))

	// The toggled task has the freshest update, so it sorts last
	byUpdated, err := taskService.GetTasks("alice", "", "updated_at")
	assert.NoError(t, err)
	assert.Equal(t, "cherry", byUpdated[len(byUpdated)-1].Title)

	// Unrecognized sort key keeps natural order
	unsorted, err := taskService.GetTasks("alice", "", "bogus")
	assert.NoError(t, err)
	assert.Equal(t, []string{"banana", "cherry", "apple"}, titlesOf(unsorted))
}

func titlesOf(tasks []models.Task) []string {
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		titles = append(titles, t.Title)
	}
	return titles
}
