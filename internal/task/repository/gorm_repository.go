package repository

import (
	"errors"
	"sort"
	"time"

	authdomain "taskbot/internal/auth/domain"
	"taskbot/internal/task/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) withPeople() *gorm.DB {
	return r.db.Preload("Creator").Preload("Assignee")
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	return r.db.Omit(clause.Associations).Create(task).Error
}

func (r *gormTaskRepository) FindByID(id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.withPeople().Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByCreator(userID uint) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.withPeople().Where("creator_id = ?", userID).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) FindByAssignee(userID uint) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.withPeople().Where("assignee_id = ?", userID).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) FindAll(status *domain.TaskStatus, limit, offset int) ([]*domain.Task, int64, error) {
	var tasks []*domain.Task
	var total int64

	query := r.db.Model(&domain.Task{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Fetch with pagination, ordered by due_date (nulls last), then created_at
	err := query.Preload("Creator").Preload("Assignee").
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at DESC").
		Limit(limit).Offset(offset).Find(&tasks).Error

	return tasks, total, err
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Omit(clause.Associations).Save(task).Error
}

func (r *gormTaskRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Task{}, "id = ?", id).Error
}

func (r *gormTaskRepository) FindPendingReminders(now time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.withPeople().Where("reminder_at <= ? AND reminder_sent = ? AND status != ?",
		now, false, domain.TaskStatusCompleted).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) MarkReminderSent(id uint) error {
	return r.db.Model(&domain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}

func (r *gormTaskRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Task{}).Count(&count).Error
	return count, err
}

func (r *gormTaskRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Task{}).Where("status = ?", domain.TaskStatusCompleted).Count(&count).Error
	return count, err
}

func (r *gormTaskRepository) CountByPriority() ([]domain.PriorityCount, error) {
	var counts []domain.PriorityCount
	err := r.db.Model(&domain.Task{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Order("priority ASC").
		Scan(&counts).Error
	return counts, err
}

// CountByDay buckets in Go; DATE() output differs between SQLite and Postgres.
func (r *gormTaskRepository) CountByDay() ([]domain.DailyCount, error) {
	var created []time.Time
	if err := r.db.Model(&domain.Task{}).Pluck("created_at", &created).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]int64)
	for _, t := range created {
		buckets[t.Format("2006-01-02")]++
	}

	counts := make([]domain.DailyCount, 0, len(buckets))
	for date, n := range buckets {
		counts = append(counts, domain.DailyCount{Date: date, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Date < counts[j].Date })
	return counts, nil
}

type userCount struct {
	UserID uint
	Count  int64
}

func (r *gormTaskRepository) UserStats() ([]domain.UserStats, error) {
	var users []authdomain.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	created, err := r.countGroupedBy("creator_id", nil)
	if err != nil {
		return nil, err
	}
	assigned, err := r.countGroupedBy("assignee_id", nil)
	if err != nil {
		return nil, err
	}
	completed := domain.TaskStatusCompleted
	done, err := r.countGroupedBy("assignee_id", &completed)
	if err != nil {
		return nil, err
	}

	stats := make([]domain.UserStats, 0, len(users))
	for _, u := range users {
		stats = append(stats, domain.UserStats{
			Username:  u.Handle(),
			Created:   created[u.ID],
			Assigned:  assigned[u.ID],
			Completed: done[u.ID],
		})
	}
	return stats, nil
}

func (r *gormTaskRepository) countGroupedBy(column string, status *domain.TaskStatus) (map[uint]int64, error) {
	var rows []userCount
	query := r.db.Model(&domain.Task{}).
		Select(column + " AS user_id, COUNT(*) AS count").
		Where(column + " IS NOT NULL")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
