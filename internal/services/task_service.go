package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidDueDate  = errors.New("due date must be a valid YYYY-MM-DD date")
	ErrInvalidPriority = errors.New("priority must be high, medium or low")
	ErrTaskNotFound    = errors.New("task not found")
)

const dueDateLayout = "2006-01-02"

// TaskService handles the task lifecycle and listing
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task. DueDate is the
// raw form/JSON value and is parsed here; empty optional fields fall
// back to their defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    string
	Category    string
	Group       string
}

// Create validates the input and inserts a new pending task.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	// Due dates are calendar dates; pinning them to UTC midnight keeps
	// the stored date stable across drivers and timezones.
	var dueDate *time.Time
	if input.DueDate != "" {
		parsed, err := time.ParseInLocation(dueDateLayout, input.DueDate, time.UTC)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		dueDate = &parsed
	}

	priority := input.Priority
	switch priority {
	case "":
		priority = models.PriorityMedium
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		return nil, ErrInvalidPriority
	}

	category := input.Category
	if category == "" {
		category = models.DefaultCategory
	}
	group := input.Group
	if group == "" {
		group = models.DefaultGroup
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Category:    category,
		Status:      models.StatusPending,
		GroupName:   group,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Complete marks a task as done and stamps its completion time.
// Re-completing an already done task just refreshes the timestamps.
func (s *TaskService) Complete(id uint64) (*models.Task, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Status = models.StatusDone
	task.CompletedAt = &now

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// Delete permanently removes a task. The removed record is returned so
// callers can redirect back to its group.
func (s *TaskService) Delete(id uint64) (*models.Task, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

// List returns the tasks matching the filter. Both the HTML and JSON
// surfaces go through this single path.
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) findTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// DueToday returns the subset of tasks due on now's calendar date that
// are not yet done. Derived per request, never persisted.
func DueToday(tasks []models.Task, now time.Time) []models.Task {
	today := now.Format(dueDateLayout)
	due := make([]models.Task, 0)
	for _, task := range tasks {
		if task.DueDate == nil || task.Status == models.StatusDone {
			continue
		}
		if task.DueDate.Format(dueDateLayout) == today {
			due = append(due, task)
		}
	}
	return due
}
