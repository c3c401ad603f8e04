package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/dto"
	apierrors "taskboard/internal/errors"
	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/internal/services"
)

// APIHandler serves the JSON surface. Its listing semantics must stay
// identical to the HTML list view; both call the same service path.
type APIHandler struct {
	taskService *services.TaskService
	aiService   *services.AIService
}

func NewAPIHandler(taskService *services.TaskService, aiService *services.AIService) *APIHandler {
	return &APIHandler{
		taskService: taskService,
		aiService:   aiService,
	}
}

// filterFromQuery maps request query parameters onto the shared task
// filter. Absent parameters impose no constraint; malformed values are
// never rejected, they just match nothing.
func filterFromQuery(c *gin.Context) repository.TaskFilter {
	return repository.TaskFilter{
		Group:    c.DefaultQuery("group", models.DefaultGroup),
		Search:   c.Query("q"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}
}

// ListTasks returns the filtered task set as a JSON array.
func (h *APIHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.List(filterFromQuery(c))
	if err != nil {
		logger.Error("failed to list tasks", err)
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a task from a JSON body.
func (h *APIHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
		Priority    string `json:"priority"`
		Category    string `json:"category"`
		Group       string `json:"group"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		Group:       req.Group,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// Suggest returns an AI-generated description/priority pair for a
// task. Validation runs before any upstream call.
func (h *APIHandler) Suggest(c *gin.Context) {
	type SuggestRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Title is required")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI suggestions are not configured")
		return
	}

	suggestion, err := h.aiService.Suggest(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		logger.Error("suggestion request failed", err)
		apierrors.BadGateway(c, "Suggestion service failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggested_description": suggestion.Description,
		"suggested_priority":    suggestion.Priority,
	})
}

// Health reports liveness without touching the store.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		logger.Error("task operation failed", err)
		apierrors.InternalError(c, "")
	}
}
