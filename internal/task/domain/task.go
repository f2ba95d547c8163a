package domain

import (
	"time"

	authdomain "taskbot/internal/auth/domain"
)

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps unknown values to medium.
func ParsePriority(p string) Priority {
	switch Priority(p) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a to-do item created from a chat message
type Task struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Title        string           `json:"title" gorm:"not null"`
	Description  string           `json:"description,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	Priority     Priority         `json:"priority" gorm:"default:medium"`
	Status       TaskStatus       `json:"status" gorm:"index;default:pending"`
	CreatorID    uint             `json:"creator_id" gorm:"index;not null"`
	Creator      *authdomain.User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	AssigneeID   *uint            `json:"assignee_id,omitempty" gorm:"index"`
	Assignee     *authdomain.User `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	ReminderAt   *time.Time       `json:"reminder_at,omitempty"`
	ReminderSent bool             `json:"reminder_sent" gorm:"default:false"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsAssignedTo reports whether userID is the task's assignee.
func (t *Task) IsAssignedTo(userID uint) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// PriorityCount is one slice of the tasks-by-priority breakdown
type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int64    `json:"count"`
}

// DailyCount is the number of tasks created on one calendar day (YYYY-MM-DD)
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// UserStats aggregates task counts for one user
type UserStats struct {
	Username  string `json:"username"`
	Created   int64  `json:"created_tasks"`
	Assigned  int64  `json:"assigned_tasks"`
	Completed int64  `json:"completed_tasks"`
}
