package usecase

import (
	"log"
	"strings"
	"time"

	authdomain "taskbot/internal/auth/domain"
	authrepo "taskbot/internal/auth/repository"
	"taskbot/internal/extract"
	"taskbot/internal/task/domain"
	"taskbot/internal/task/repository"
	"taskbot/pkg/fuzzy"
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo     repository.TaskRepository
	userRepo     authrepo.UserRepository
	extractor    Extractor
	reminderLead time.Duration
	now          func() time.Time
}

// NewTaskUsecase creates a new instance of taskUsecase. Tasks with a due date
// get a reminder reminderLead before it; zero disables reminders.
func NewTaskUsecase(taskRepo repository.TaskRepository, userRepo authrepo.UserRepository, extractor Extractor, reminderLead time.Duration) TaskUsecase {
	return &taskUsecase{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		extractor:    extractor,
		reminderLead: reminderLead,
		now:          time.Now,
	}
}

func (u *taskUsecase) CreateFromText(creator *authdomain.User, text string) (*domain.Task, error) {
	draft := u.extractor.Extract(text)
	log.Printf("[TaskUsecase] Extracted draft for user %d: title=%q priority=%s due=%v assignee=%q",
		creator.ID, draft.Title, draft.Priority, draft.DueDate, draft.AssigneeHint)
	return u.CreateTask(creator, draft)
}

func (u *taskUsecase) CreateTask(creator *authdomain.User, draft extract.Draft) (*domain.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, ErrEmptyTitle
	}

	task := &domain.Task{
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    domain.ParsePriority(string(draft.Priority)),
		Status:      domain.TaskStatusPending,
		CreatorID:   creator.ID,
		Creator:     creator,
	}

	if draft.AssigneeHint != "" {
		assignee, err := u.userRepo.FindByUsername(draft.AssigneeHint)
		if err != nil {
			return nil, err
		}
		if assignee != nil {
			task.AssigneeID = &assignee.ID
			task.Assignee = assignee
		} else {
			log.Printf("[TaskUsecase] Mentioned user @%s is unknown, task left unassigned", draft.AssigneeHint)
		}
	}

	// Set default reminder (reminderLead before due date if that is still ahead)
	if task.DueDate != nil && u.reminderLead > 0 {
		reminderTime := task.DueDate.Add(-u.reminderLead)
		if reminderTime.After(u.now()) {
			task.ReminderAt = &reminderTime
		}
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) GetTaskByID(taskID uint) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (u *taskUsecase) ListCreated(user *authdomain.User) ([]*domain.Task, error) {
	return u.taskRepo.FindByCreator(user.ID)
}

func (u *taskUsecase) ListAssigned(user *authdomain.User) ([]*domain.Task, error) {
	return u.taskRepo.FindByAssignee(user.ID)
}

func (u *taskUsecase) ListTasks(status *string, limit, offset int) ([]*domain.Task, int64, error) {
	var statusFilter *domain.TaskStatus
	if status != nil && *status != "" {
		s := domain.TaskStatus(*status)
		if !s.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		statusFilter = &s
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.taskRepo.FindAll(statusFilter, limit, offset)
}

// ownedTask loads a task and checks that actor created it.
func (u *taskUsecase) ownedTask(actor *authdomain.User, taskID uint) (*domain.Task, error) {
	task, err := u.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatorID != actor.ID {
		return nil, ErrForbidden
	}
	return task, nil
}

func (u *taskUsecase) AssignTask(actor *authdomain.User, taskID uint, username string) (*domain.Task, error) {
	task, err := u.ownedTask(actor, taskID)
	if err != nil {
		return nil, err
	}

	assignee, err := u.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, ErrAssigneeNotFound
	}

	task.AssigneeID = &assignee.ID
	task.Assignee = assignee
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) RenameTask(actor *authdomain.User, taskID uint, title string) (*domain.Task, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, "", ErrEmptyTitle
	}

	task, err := u.ownedTask(actor, taskID)
	if err != nil {
		return nil, "", err
	}

	oldTitle := task.Title
	task.Title = title
	if err := u.taskRepo.Update(task); err != nil {
		return nil, "", err
	}
	return task, oldTitle, nil
}

func (u *taskUsecase) CompleteTask(actor *authdomain.User, taskID uint) (*domain.Task, error) {
	task, err := u.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatorID != actor.ID && !task.IsAssignedTo(actor.ID) {
		return nil, ErrForbidden
	}

	task.Status = domain.TaskStatusCompleted
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) DeleteTask(actor *authdomain.User, taskID uint) error {
	task, err := u.ownedTask(actor, taskID)
	if err != nil {
		return err
	}
	return u.taskRepo.Delete(task.ID)
}

func (u *taskUsecase) UpdateStatus(taskID uint, status string) (*domain.Task, error) {
	s := domain.TaskStatus(status)
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := u.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	task.Status = s
	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) SuggestAssignees(username string) ([]string, error) {
	known, err := u.userRepo.ListUsernames()
	if err != nil {
		return nil, err
	}
	return fuzzy.Closest(strings.TrimPrefix(username, "@"), known, 2, 3), nil
}
