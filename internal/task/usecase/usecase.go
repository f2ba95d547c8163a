package usecase

import (
	"errors"

	authdomain "taskbot/internal/auth/domain"
	"taskbot/internal/extract"
	"taskbot/internal/task/domain"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAssigneeNotFound = errors.New("assignee not found")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrEmptyTitle       = errors.New("title is empty")
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateFromText extracts a draft from free text and stores it
	CreateFromText(creator *authdomain.User, text string) (*domain.Task, error)

	// CreateTask stores a draft; a known assignee hint becomes the assignee
	CreateTask(creator *authdomain.User, draft extract.Draft) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID
	GetTaskByID(taskID uint) (*domain.Task, error)

	// ListCreated returns tasks created by the user
	ListCreated(user *authdomain.User) ([]*domain.Task, error)

	// ListAssigned returns tasks assigned to the user
	ListAssigned(user *authdomain.User) ([]*domain.Task, error)

	// ListTasks lists all tasks with an optional status filter
	ListTasks(status *string, limit, offset int) ([]*domain.Task, int64, error)

	// AssignTask sets the assignee (creator only)
	AssignTask(actor *authdomain.User, taskID uint, username string) (*domain.Task, error)

	// RenameTask changes the title (creator only) and returns the previous one
	RenameTask(actor *authdomain.User, taskID uint, title string) (*domain.Task, string, error)

	// CompleteTask marks a task completed (creator or assignee)
	CompleteTask(actor *authdomain.User, taskID uint) (*domain.Task, error)

	// DeleteTask deletes a task (creator only)
	DeleteTask(actor *authdomain.User, taskID uint) error

	// UpdateStatus sets the status without an ownership check (dashboard)
	UpdateStatus(taskID uint, status string) (*domain.Task, error)

	// SuggestAssignees returns known handles close to an unknown one
	SuggestAssignees(username string) ([]string, error)
}

// Extractor turns chat text into a task draft
type Extractor interface {
	Extract(text string) extract.Draft
}
