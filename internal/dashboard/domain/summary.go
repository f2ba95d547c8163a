package domain

import (
	"math"

	taskdomain "taskbot/internal/task/domain"
)

// Summary is everything the analytics page shows
type Summary struct {
	TotalTasks     int64                      `json:"total_tasks"`
	CompletedTasks int64                      `json:"completed_tasks"`
	ActiveUsers    int64                      `json:"active_users"`
	CompletionRate float64                    `json:"completion_rate"`
	ByPriority     []taskdomain.PriorityCount `json:"by_priority"`
	Timeline       []taskdomain.DailyCount    `json:"timeline"`
	Users          []taskdomain.UserStats     `json:"users"`
}

// CompletionRate returns completed/total as a percentage rounded to one decimal.
func CompletionRate(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}
