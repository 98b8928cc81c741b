package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/models"
	"taskhub/internal/services"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService services.TaskServicer
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService services.TaskServicer) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents the task creation payload. DueDate accepts
// RFC 3339 timestamps or plain dates (2006-01-02).
type CreateTaskRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"max=255"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest represents a partial task update. Omitted fields are
// left unchanged. An empty dueDate string clears the due date; an empty
// description or category clears the stored value.
type UpdateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status" binding:"omitempty,task_status"`
}

// GetTasks lists the caller's tasks
// @Summary     List tasks
// @Description List the authenticated user's tasks with optional filters and ordering
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Exact status filter"
// @Param       category  query string false "Exact category filter"
// @Param       dueDate   query string false "Inclusive due date upper bound (2006-01-02 or RFC 3339)"
// @Param       sortBy    query string false "Sort field (whitelisted, default dueDate)"
// @Param       sortOrder query string false "asc or desc (default asc)"
// @Success     200 {array}  models.Task
// @Failure     400 {object} ErrorResponse "Invalid dueDate"
// @Router      /tasks [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.TaskFilter{
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if raw := c.Query("dueDate"); raw != "" {
		due, err := parseDueUpperBound(raw)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.DueBefore = due
	}

	tasks, err := h.taskService.ListTasks(actor.ID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a task for the caller
// @Summary     Create a task
// @Description Create a new task owned by the authenticated user; status starts as pending
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTaskRequest true "Task data"
// @Success     201 {object} models.Task
// @Failure     400 {object} ErrorResponse "Missing name or invalid dueDate"
// @Router      /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Task name is required"))
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		dueDate, err = parseDueDate(req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	task, err := h.taskService.CreateTask(actor.ID, req.Name, req.Description, req.Category, dueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask partially updates a task owned by the caller
// @Summary     Update a task
// @Description Apply a partial update to a task owned by the authenticated user
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path uint              true "Task ID"
// @Param       request body UpdateTaskRequest true "Fields to change"
// @Success     200 {object} models.Task
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Task not found or unauthorized"
// @Router      /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.ClearDueDate = true
		} else {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				respondWithError(c, err)
				return
			}
			update.DueDate = due
		}
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		update.Status = &status
	}

	task, err := h.taskService.UpdateTask(actor.ID, taskID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task owned by the caller
// @Summary     Delete a task
// @Description Hard-delete a task owned by the authenticated user
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path uint true "Task ID"
// @Success     200 {object} map[string]string "Removal confirmation"
// @Failure     404 {object} ErrorResponse "Task not found or unauthorized"
// @Router      /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.taskService.DeleteTask(actor.ID, taskID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}

// GetDashboardData returns the caller's dashboard aggregates
// @Summary     Dashboard data
// @Description Date-bucketed task aggregates for the authenticated user
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardData
// @Router      /tasks/dashboard-data [get]
func (h *TaskHandler) GetDashboardData(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.taskService.GetDashboardData(actor.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

const dateOnly = "2006-01-02"

// parseDueDate parses an RFC 3339 timestamp or a plain date.
func parseDueDate(raw string) (*time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, nil
	}
	if ts, err := time.ParseInLocation(dateOnly, raw, time.Local); err == nil {
		return &ts, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid dueDate")
}

// parseDueUpperBound parses a due date filter. A plain date is widened to
// the end of that day so tasks due any time on the given date match.
func parseDueUpperBound(raw string) (*time.Time, error) {
	if ts, err := time.ParseInLocation(dateOnly, raw, time.Local); err == nil {
		end := ts.Add(24*time.Hour - time.Nanosecond)
		return &end, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid dueDate")
}
