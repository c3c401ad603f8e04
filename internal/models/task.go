package models

import (
	"time"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	StatusPending = "pending"
	StatusDone    = "done"

	DefaultCategory = "general"
	DefaultGroup    = "default"
)

// Task is the sole persisted entity. GroupName partitions visibility:
// every read and write is scoped to one group. Deletes are permanent.
type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"type:date;index" json:"due_date"`
	Priority    string     `gorm:"size:20;not null;default:'medium'" json:"priority"`
	Category    string     `gorm:"size:50;not null;default:'general'" json:"category"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	GroupName   string     `gorm:"size:100;not null;default:'default';index" json:"group_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
