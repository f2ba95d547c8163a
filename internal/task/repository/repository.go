package repository

import (
	"time"

	"taskbot/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *domain.Task) error

	// FindByID finds a task by its ID with creator and assignee loaded
	FindByID(id uint) (*domain.Task, error)

	// FindByCreator finds all tasks created by a user
	FindByCreator(userID uint) ([]*domain.Task, error)

	// FindByAssignee finds all tasks assigned to a user
	FindByAssignee(userID uint) ([]*domain.Task, error)

	// FindAll lists tasks with an optional status filter
	FindAll(status *domain.TaskStatus, limit, offset int) ([]*domain.Task, int64, error)

	// Update updates an existing task (associations are not written)
	Update(task *domain.Task) error

	// Delete deletes a task by ID
	Delete(id uint) error

	// FindPendingReminders finds tasks that need reminder notifications
	// Returns tasks where reminder_at <= now AND reminder_sent = false AND status != completed
	FindPendingReminders(now time.Time) ([]*domain.Task, error)

	// MarkReminderSent marks a task's reminder as sent
	MarkReminderSent(id uint) error

	// CountAll returns the total number of tasks
	CountAll() (int64, error)

	// CountCompleted returns the number of completed tasks
	CountCompleted() (int64, error)

	// CountByPriority groups tasks by priority
	CountByPriority() ([]domain.PriorityCount, error)

	// CountByDay groups tasks by creation day, oldest first
	CountByDay() ([]domain.DailyCount, error)

	// UserStats returns created/assigned/completed counts for every user
	UserStats() ([]domain.UserStats, error)
}
