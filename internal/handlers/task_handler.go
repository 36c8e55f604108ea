package handlers

import (
	"errors"
	"log"
	"strconv"

	"tugas/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles HTTP requests for tasks. All routes require a
// verified identity; the owner's user id comes from the request locals
// set by the auth middleware.
type TaskHandler struct {
	service *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

// RegisterRoutes registers the task routes with the Fiber app.
func (h *TaskHandler) RegisterRoutes(router fiber.Router) {
	taskRoutes := router.Group("/tasks")
	taskRoutes.Get("/", h.HandleGetTasks)
	taskRoutes.Post("/", h.HandleCreateTask)
	taskRoutes.Put("/:id", h.HandleUpdateTask)
	taskRoutes.Delete("/:id", h.HandleDeleteTask)
	taskRoutes.Patch("/:id/complete", h.HandleToggleTask)
}

// TaskRequest represents the request body for creating or updating a task.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// HandleGetTasks lists the caller's tasks, optionally filtered by
// ?status=active|completed and sorted by ?sort=created_at|updated_at|title.
func (h *TaskHandler) HandleGetTasks(c *fiber.Ctx) error {
	tasks, err := h.service.GetTasks(currentUserID(c), c.Query("status"), c.Query("sort"))
	if err != nil {
		log.Printf("Error getting tasks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tasks",
		})
	}
	return c.JSON(tasks)
}

// HandleCreateTask creates a new task owned by the caller.
func (h *TaskHandler) HandleCreateTask(c *fiber.Ctx) error {
	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create task request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	task, err := h.service.CreateTask(currentUserID(c), req.Title, req.Description, req.Completed)
	if err != nil {
		return taskErrorResponse(c, err, "Could not create task")
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleUpdateTask replaces a task's title, description and completed flag.
func (h *TaskHandler) HandleUpdateTask(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task ID",
		})
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update task request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	task, err := h.service.UpdateTask(currentUserID(c), taskID, req.Title, req.Description, req.Completed)
	if err != nil {
		return taskErrorResponse(c, err, "Could not update task")
	}
	return c.JSON(task)
}

// HandleDeleteTask permanently removes a task.
func (h *TaskHandler) HandleDeleteTask(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task ID",
		})
	}

	if err := h.service.DeleteTask(currentUserID(c), taskID); err != nil {
		return taskErrorResponse(c, err, "Could not delete task")
	}
	return c.JSON(fiber.Map{
		"message": "Task deleted successfully",
	})
}

// HandleToggleTask flips a task's completed flag.
func (h *TaskHandler) HandleToggleTask(c *fiber.Ctx) error {
	taskID, err := parseTaskID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid task ID",
		})
	}

	task, err := h.service.ToggleTask(currentUserID(c), taskID)
	if err != nil {
		return taskErrorResponse(c, err, "Could not toggle task")
	}
	return c.JSON(task)
}

func parseTaskID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// taskErrorResponse maps service errors to HTTP statuses: validation
// failures to 400, unknown tasks to 404, ownership violations to 403,
// anything else to 500.
func taskErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationErr.Error(),
		})
	case errors.Is(err, services.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Task not found",
		})
	case errors.Is(err, services.ErrNotTaskOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to modify this task",
		})
	default:
		log.Printf("Task operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fallback,
		})
	}
}
