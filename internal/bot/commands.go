package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	authdomain "taskbot/internal/auth/domain"
	"taskbot/internal/task/domain"
	taskusecase "taskbot/internal/task/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func parseTaskID(s string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseIDArg accepts exactly one task id.
func parseIDArg(args string) (uint, bool) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return 0, false
	}
	return parseTaskID(fields[0])
}

// parseAssignArgs accepts "<id> @username".
func parseAssignArgs(args string) (uint, string, bool) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, "", false
	}
	id, ok := parseTaskID(fields[0])
	username := strings.TrimPrefix(fields[1], "@")
	if !ok || username == "" {
		return 0, "", false
	}
	return id, username, true
}

// parseEditArgs accepts "<id> <new title>"; the title keeps its inner spacing.
func parseEditArgs(args string) (uint, string, bool) {
	idPart, title, found := strings.Cut(strings.TrimSpace(args), " ")
	title = strings.TrimSpace(title)
	if !found || title == "" {
		return 0, "", false
	}
	id, ok := parseTaskID(idPart)
	if !ok {
		return 0, "", false
	}
	return id, title, true
}

func (b *Bot) createTask(msg *tgbotapi.Message, user *authdomain.User, text string) {
	task, err := b.tasks.CreateFromText(user, text)
	if err != nil {
		if errors.Is(err, taskusecase.ErrEmptyTitle) {
			b.reply(msg, textEmptyTitle)
			return
		}
		log.Printf("[Bot] Error creating task for %s: %v", user.Handle(), err)
		b.reply(msg, textCreateFailed)
		return
	}

	log.Printf("[Bot] Created task #%d for %s", task.ID, user.Handle())
	b.reply(msg, formatCreated(task))

	if task.Assignee != nil && task.Assignee.ID != user.ID {
		b.notify(task.Assignee, fmt.Sprintf("📬 Вам назначена новая задача:\n\n📌 %s\n👤 От: %s", task.Title, user.Handle()))
	}
}

func (b *Bot) listAssigned(msg *tgbotapi.Message, user *authdomain.User) {
	tasks, err := b.tasks.ListAssigned(user)
	if err != nil {
		log.Printf("[Bot] Error listing tasks assigned to %s: %v", user.Handle(), err)
		b.reply(msg, textListFailed)
		return
	}
	if len(tasks) == 0 {
		b.reply(msg, textNoAssignedTasks)
		return
	}
	b.reply(msg, formatTaskList(textAssignedHeader, tasks, true))
}

func (b *Bot) listCreated(msg *tgbotapi.Message, user *authdomain.User) {
	tasks, err := b.tasks.ListCreated(user)
	if err != nil {
		log.Printf("[Bot] Error listing tasks created by %s: %v", user.Handle(), err)
		b.reply(msg, textListFailed)
		return
	}
	if len(tasks) == 0 {
		b.reply(msg, textNoCreatedTasks)
		return
	}
	b.reply(msg, formatTaskList(textCreatedHeader, tasks, false))
}

func (b *Bot) assign(msg *tgbotapi.Message, user *authdomain.User, args string) {
	taskID, username, ok := parseAssignArgs(args)
	if !ok {
		b.reply(msg, usageAssign)
		return
	}

	task, err := b.tasks.AssignTask(user, taskID, username)
	switch {
	case errors.Is(err, taskusecase.ErrTaskNotFound):
		b.reply(msg, textTaskNotFound)
		return
	case errors.Is(err, taskusecase.ErrForbidden):
		b.reply(msg, textAssignOwnOnly)
		return
	case errors.Is(err, taskusecase.ErrAssigneeNotFound):
		b.reply(msg, b.unknownUserText(username))
		return
	case err != nil:
		log.Printf("[Bot] Error assigning task %d: %v", taskID, err)
		b.reply(msg, textAssignFailed)
		return
	}

	b.reply(msg, formatAssigned(task))
	if task.Assignee.ID != user.ID {
		b.notify(task.Assignee, fmt.Sprintf("📬 Вам назначена новая задача:\n\n📌 %s\n👤 От: %s", task.Title, user.Handle()))
	}
}

func (b *Bot) unknownUserText(username string) string {
	text := fmt.Sprintf(textUserNotFound, username)
	suggestions, err := b.tasks.SuggestAssignees(username)
	if err != nil {
		log.Printf("[Bot] Error suggesting users for @%s: %v", username, err)
		return text
	}
	if len(suggestions) == 0 {
		return text
	}
	handles := make([]string, len(suggestions))
	for i, s := range suggestions {
		handles[i] = "@" + s
	}
	return text + fmt.Sprintf(textDidYouMean, strings.Join(handles, ", "))
}

func (b *Bot) edit(msg *tgbotapi.Message, user *authdomain.User, args string) {
	taskID, title, ok := parseEditArgs(args)
	if !ok {
		b.reply(msg, usageEdit)
		return
	}

	task, oldTitle, err := b.tasks.RenameTask(user, taskID, title)
	switch {
	case errors.Is(err, taskusecase.ErrTaskNotFound):
		b.reply(msg, textTaskNotFound)
		return
	case errors.Is(err, taskusecase.ErrForbidden):
		b.reply(msg, textEditOwnOnly)
		return
	case errors.Is(err, taskusecase.ErrEmptyTitle):
		b.reply(msg, usageEdit)
		return
	case err != nil:
		log.Printf("[Bot] Error editing task %d: %v", taskID, err)
		b.reply(msg, textEditFailed)
		return
	}

	b.reply(msg, formatEdited(task, oldTitle))
	if task.Assignee != nil && task.Assignee.ID != user.ID {
		b.notify(task.Assignee, fmt.Sprintf("📝 Задача обновлена:\n\n📌 %s\n👤 От: %s", task.Title, user.Handle()))
	}
}

func (b *Bot) delete(msg *tgbotapi.Message, user *authdomain.User, args string) {
	taskID, ok := parseIDArg(args)
	if !ok {
		b.reply(msg, usageDelete)
		return
	}

	err := b.tasks.DeleteTask(user, taskID)
	switch {
	case errors.Is(err, taskusecase.ErrTaskNotFound):
		b.reply(msg, textTaskNotFound)
	case errors.Is(err, taskusecase.ErrForbidden):
		b.reply(msg, textDeleteOwnOnly)
	case err != nil:
		log.Printf("[Bot] Error deleting task %d: %v", taskID, err)
		b.reply(msg, textDeleteFailed)
	default:
		b.reply(msg, fmt.Sprintf(textDeleted, taskID))
	}
}

func (b *Bot) done(msg *tgbotapi.Message, user *authdomain.User, args string) {
	taskID, ok := parseIDArg(args)
	if !ok {
		b.reply(msg, usageDone)
		return
	}

	task, err := b.tasks.CompleteTask(user, taskID)
	switch {
	case errors.Is(err, taskusecase.ErrTaskNotFound):
		b.reply(msg, textTaskNotFound)
		return
	case errors.Is(err, taskusecase.ErrForbidden):
		b.reply(msg, textDoneNotAllowed)
		return
	case err != nil:
		log.Printf("[Bot] Error completing task %d: %v", taskID, err)
		b.reply(msg, textDoneFailed)
		return
	}

	b.reply(msg, formatCompleted(task))
	if other := otherParty(task, user); other != nil {
		b.notify(other, fmt.Sprintf("✅ Задача выполнена:\n\n📌 %s\n👤 %s", task.Title, user.Handle()))
	}
}

// otherParty is the creator or assignee who did not act, if any.
func otherParty(task *domain.Task, actor *authdomain.User) *authdomain.User {
	if task.Creator != nil && task.Creator.ID != actor.ID {
		return task.Creator
	}
	if task.Assignee != nil && task.Assignee.ID != actor.ID {
		return task.Assignee
	}
	return nil
}

func (b *Bot) stats(msg *tgbotapi.Message) {
	if !b.isAdmin(msg.From.ID) {
		b.reply(msg, textAdminsOnly)
		return
	}
	summary, err := b.dashboard.Summary()
	if err != nil {
		log.Printf("[Bot] Error building stats: %v", err)
		b.reply(msg, textStatsFailed)
		return
	}
	b.reply(msg, formatStats(summary))
}
