package repository

import (
	"taskboard/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error
}

// TaskFilter holds the optional listing criteria. All criteria are
// conjunctive. Group is always applied (empty means the default group);
// the zero value of every other field imposes no constraint.
type TaskFilter struct {
	Group    string
	Search   string
	Status   string
	Priority string
	Category string
}
