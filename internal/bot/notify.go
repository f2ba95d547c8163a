package bot

import (
	"fmt"
	"log"
	"strings"

	authdomain "taskbot/internal/auth/domain"
	"taskbot/internal/task/domain"
)

// notify sends a direct message; failures are logged and otherwise ignored.
func (b *Bot) notify(user *authdomain.User, text string) {
	if err := b.sendText(user.TelegramID, text); err != nil {
		log.Printf("[Bot] Failed to notify %s: %v", user.Handle(), err)
	}
}

// NotifyReminder sends a due-date reminder to the assignee, or to the creator
// of an unassigned task.
func (b *Bot) NotifyReminder(task *domain.Task) error {
	recipient := task.Assignee
	if recipient == nil {
		recipient = task.Creator
	}
	if recipient == nil {
		return fmt.Errorf("task %d has no recipient", task.ID)
	}

	var sb strings.Builder
	sb.WriteString("⏰ Напоминание о задаче:\n\n")
	fmt.Fprintf(&sb, "📌 #%d %s\n", task.ID, task.Title)
	writeDetails(&sb, task, "")
	return b.sendText(recipient.TelegramID, sb.String())
}
