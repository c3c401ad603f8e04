package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/services"
)

const sessionKeyGroup = "group"

// WebHandler serves the HTML list view and the form-based mutations.
// Every mutation redirects back to the list scoped to the task's group.
type WebHandler struct {
	taskService *services.TaskService
}

func NewWebHandler(taskService *services.TaskService) *WebHandler {
	return &WebHandler{taskService: taskService}
}

// Index renders the task list with the due-today notification strip.
// When no group is given the last-visited group from the session is
// used, then the default group.
func (h *WebHandler) Index(c *gin.Context) {
	session := sessions.Default(c)

	group := c.Query("group")
	if group == "" {
		if saved, ok := session.Get(sessionKeyGroup).(string); ok && saved != "" {
			group = saved
		}
	}
	if group == "" {
		group = models.DefaultGroup
	}

	filter := filterFromQuery(c)
	filter.Group = group

	tasks, err := h.taskService.List(filter)
	if err != nil {
		logger.Error("failed to list tasks", err)
		c.String(http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	session.Set(sessionKeyGroup, group)
	if err := session.Save(); err != nil {
		logger.Warn("failed to save session", zap.Error(err))
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Tasks":         tasks,
		"TasksDueToday": services.DueToday(tasks, time.Now()),
		"SearchTerm":    strings.TrimSpace(c.Query("q")),
		"CurrentGroup":  group,
	})
}

// AddTask creates a task from form fields and redirects to its group.
func (h *WebHandler) AddTask(c *gin.Context) {
	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		DueDate:     c.PostForm("due_date"),
		Priority:    c.PostForm("priority"),
		Category:    c.PostForm("category"),
		Group:       c.PostForm("group"),
	})
	if err != nil {
		respondWebError(c, err)
		return
	}

	redirectToGroup(c, task.GroupName)
}

// CompleteTask marks a task done and redirects to its group.
func (h *WebHandler) CompleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.Complete(id)
	if err != nil {
		respondWebError(c, err)
		return
	}

	redirectToGroup(c, task.GroupName)
}

// DeleteTask removes a task and redirects to its group.
func (h *WebHandler) DeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.Delete(id)
	if err != nil {
		respondWebError(c, err)
		return
	}

	redirectToGroup(c, task.GroupName)
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid task id")
		return 0, false
	}
	return id, true
}

func redirectToGroup(c *gin.Context, group string) {
	c.Redirect(http.StatusSeeOther, "/?group="+url.QueryEscape(group))
}

func respondWebError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrInvalidPriority):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		c.String(http.StatusNotFound, err.Error())
	default:
		logger.Error("task operation failed", err)
		c.String(http.StatusInternalServerError, "Something went wrong")
	}
}
