package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tugas/internal/models"
	"tugas/internal/repositories"
	"tugas/pkg/rabbitmq"
)

const maxTitleLength = 200

// TaskService handles business logic related to tasks. Every mutating
// operation takes the authenticated owner's user ID and enforces that
// only the owner may touch the task.
type TaskService struct {
	taskRepo repositories.TaskRepository
	mqClient *rabbitmq.Client // RabbitMQ client, nil disables eventing
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repositories.TaskRepository, mqClient *rabbitmq.Client) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		mqClient: mqClient,
	}
}

// validateTitle rejects titles that are empty after trimming or longer
// than 200 characters. The trimmed form is not persisted; only used for
// the emptiness check.
func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len([]rune(trimmed)) > maxTitleLength {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be at most %d characters", maxTitleLength)}
	}
	return nil
}

// assertOwner is the single authorization guard for task mutations.
func assertOwner(task *models.Task, userID string) error {
	if task.UserID != userID {
		return ErrNotTaskOwner
	}
	return nil
}

// CreateTask creates a new task owned by userID.
func (s *TaskService) CreateTask(userID, title, description string, completed bool) (*models.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		Title:       title,
		Description: description,
		Completed:   completed,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishTaskEvent("task.created", task)
	return task, nil
}

// GetTasks retrieves all tasks owned by userID, optionally filtered by
// completion status ("active"/"completed") and sorted ascending by
// "created_at", "updated_at" or "title". Unrecognized values are
// treated as no filter / natural order.
func (s *TaskService) GetTasks(userID, status, sortBy string) ([]models.Task, error) {
	return s.taskRepo.GetAllByUser(userID, status, sortBy)
}

// UpdateTask replaces the title, description and completed flag of an
// existing task in full and bumps its updated timestamp. Fails with
// ErrTaskNotFound for an unknown ID and ErrNotTaskOwner when userID is
// not the task's owner.
func (s *TaskService) UpdateTask(userID string, taskID uint, title, description string, completed bool) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if err := assertOwner(task, userID); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.Completed = completed
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(task); err != nil {
		return nil, s.mapNotFound(err)
	}
	return task, nil
}

// DeleteTask permanently removes a task. Same not-found and ownership
// checks as UpdateTask.
func (s *TaskService) DeleteTask(userID string, taskID uint) error {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return s.mapNotFound(err)
	}
	if err := assertOwner(task, userID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return s.mapNotFound(err)
	}
	return nil
}

// ToggleTask flips the completed flag of a task and bumps its updated
// timestamp. Same not-found and ownership checks as UpdateTask.
func (s *TaskService) ToggleTask(userID string, taskID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	if err := assertOwner(task, userID); err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(task); err != nil {
		return nil, s.mapNotFound(err)
	}

	if task.Completed {
		s.publishTaskEvent("task.completed", task)
	}
	return task, nil
}

// mapNotFound translates the repository's not-found sentinel into the
// service-level error kind; everything else passes through unchanged.
func (s *TaskService) mapNotFound(err error) error {
	if errors.Is(err, repositories.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

// publishTaskEvent emits a task lifecycle event. Publish failures are
// logged and never fail the request.
func (s *TaskService) publishTaskEvent(event string, task *models.Task) {
	if s.mqClient == nil {
		return
	}

	message := map[string]interface{}{
		"event":     event,
		"taskID":    task.ID,
		"userID":    task.UserID,
		"title":     task.Title,
		"completed": task.Completed,
	}
	messageBody, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal task event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("", rabbitmq.TaskQueue, messageBody); err != nil {
		log.Printf("Warning: Failed to publish %s event for task %d: %v", event, task.ID, err)
	}
}
