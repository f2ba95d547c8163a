package scheduler

import (
	"log"
	"sync"
	"time"

	"taskbot/internal/task/domain"
	"taskbot/internal/task/repository"
)

// Notifier delivers a reminder for a task to whoever should act on it
type Notifier interface {
	NotifyReminder(task *domain.Task) error
}

// TaskReminderScheduler sends chat reminders for tasks whose reminder time has passed
type TaskReminderScheduler struct {
	taskRepo repository.TaskRepository
	notifier Notifier
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	now      func() time.Time
}

// NewTaskReminderScheduler creates a new scheduler
func NewTaskReminderScheduler(taskRepo repository.TaskRepository, notifier Notifier, interval time.Duration) *TaskReminderScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &TaskReminderScheduler{
		taskRepo: taskRepo,
		notifier: notifier,
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start begins the scheduler loop
func (s *TaskReminderScheduler) Start() {
	log.Printf("[TaskScheduler] Starting task reminder scheduler (interval: %s)", s.interval)

	go func() {
		defer close(s.done)

		// Run immediately on start
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				log.Println("[TaskScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler and waits for the loop to exit
func (s *TaskReminderScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		<-s.done
	})
}

// checkAndSendReminders finds tasks with due reminders and notifies their owners
func (s *TaskReminderScheduler) checkAndSendReminders() {
	tasks, err := s.taskRepo.FindPendingReminders(s.now())
	if err != nil {
		log.Printf("[TaskScheduler] Error finding pending reminders: %v", err)
		return
	}

	if len(tasks) == 0 {
		return
	}

	log.Printf("[TaskScheduler] Found %d tasks with pending reminders", len(tasks))

	for _, task := range tasks {
		if err := s.notifier.NotifyReminder(task); err != nil {
			log.Printf("[TaskScheduler] Error sending reminder for task %d: %v", task.ID, err)
		} else {
			log.Printf("[TaskScheduler] Sent reminder for task '%s'", task.Title)
		}

		// Mark reminder as sent regardless of success (to avoid spamming)
		if err := s.taskRepo.MarkReminderSent(task.ID); err != nil {
			log.Printf("[TaskScheduler] Error marking reminder as sent for task %d: %v", task.ID, err)
		}
	}
}
