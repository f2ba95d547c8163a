package usecase

import (
	"fmt"

	authrepo "taskbot/internal/auth/repository"
	"taskbot/internal/dashboard/domain"
	taskrepo "taskbot/internal/task/repository"
)

// DashboardUsecase aggregates task statistics for the dashboard and /stats
type DashboardUsecase interface {
	Summary() (*domain.Summary, error)
}

type dashboardUsecase struct {
	taskRepo taskrepo.TaskRepository
	userRepo authrepo.UserRepository
}

func NewDashboardUsecase(taskRepo taskrepo.TaskRepository, userRepo authrepo.UserRepository) DashboardUsecase {
	return &dashboardUsecase{taskRepo: taskRepo, userRepo: userRepo}
}

func (u *dashboardUsecase) Summary() (*domain.Summary, error) {
	total, err := u.taskRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	completed, err := u.taskRepo.CountCompleted()
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	users, err := u.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	byPriority, err := u.taskRepo.CountByPriority()
	if err != nil {
		return nil, fmt.Errorf("count by priority: %w", err)
	}
	timeline, err := u.taskRepo.CountByDay()
	if err != nil {
		return nil, fmt.Errorf("count by day: %w", err)
	}
	userStats, err := u.taskRepo.UserStats()
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return &domain.Summary{
		TotalTasks:     total,
		CompletedTasks: completed,
		ActiveUsers:    users,
		CompletionRate: domain.CompletionRate(completed, total),
		ByPriority:     byPriority,
		Timeline:       timeline,
		Users:          userStats,
	}, nil
}
