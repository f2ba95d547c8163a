// Package bot is the Telegram front end: it routes updates to commands, the
// task-creation flow and the voice flow, and delivers notifications.
package bot

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
	"sync"

	authdomain "taskbot/internal/auth/domain"
	dashboardusecase "taskbot/internal/dashboard/usecase"
	taskusecase "taskbot/internal/task/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// API is the part of *tgbotapi.BotAPI the bot uses
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Users registers Telegram accounts on first contact
type Users interface {
	GetOrCreate(telegramID int64, username string) (*authdomain.User, error)
}

// Transcriber turns a voice message into text; false means it could not
type Transcriber interface {
	Transcribe(ctx context.Context, fileID string) (string, bool)
}

type Bot struct {
	api         API
	users       Users
	tasks       taskusecase.TaskUsecase
	dashboard   dashboardusecase.DashboardUsecase
	transcriber Transcriber
	isAdmin     func(telegramID int64) bool

	pollTimeout int
	wg          sync.WaitGroup
}

type Option func(*Bot)

// WithAdmins restricts /stats to accounts for which isAdmin returns true.
func WithAdmins(isAdmin func(telegramID int64) bool) Option {
	return func(b *Bot) {
		b.isAdmin = isAdmin
	}
}

// WithTranscriber enables voice messages.
func WithTranscriber(t Transcriber) Option {
	return func(b *Bot) {
		b.transcriber = t
	}
}

func New(api API, users Users, tasks taskusecase.TaskUsecase, dashboard dashboardusecase.DashboardUsecase, opts ...Option) *Bot {
	b := &Bot{
		api:         api,
		users:       users,
		tasks:       tasks,
		dashboard:   dashboard,
		isAdmin:     func(int64) bool { return false },
		pollTimeout: 60,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run long-polls for updates until ctx is cancelled, handling each update in
// its own goroutine. It returns once in-flight updates have finished.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	// In-flight handlers may finish after shutdown starts.
	handlerCtx := context.WithoutCancel(ctx)

	log.Println("[Bot] Polling for updates")
	for {
		select {
		case <-ctx.Done():
			log.Println("[Bot] Stopping, waiting for in-flight updates")
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.HandleUpdate(handlerCtx, update)
			}()
		}
	}
}

// HandleUpdate processes one update. Panics are recovered and logged.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	reqID := uuid.NewString()[:8]
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Bot] [%s] Panic while handling update %d: %v\n%s", reqID, update.UpdateID, r, debug.Stack())
		}
	}()

	user, err := b.users.GetOrCreate(msg.From.ID, msg.From.UserName)
	if err != nil {
		log.Printf("[Bot] [%s] Failed to register user %d: %v", reqID, msg.From.ID, err)
		b.reply(msg, textCreateFailed)
		return
	}

	switch {
	case msg.IsCommand():
		log.Printf("[Bot] [%s] /%s from %s", reqID, msg.Command(), user.Handle())
		b.handleCommand(ctx, msg, user)
	case msg.Voice != nil:
		log.Printf("[Bot] [%s] Voice message from %s (%ds)", reqID, user.Handle(), msg.Voice.Duration)
		b.handleVoice(ctx, msg, user)
	case isTaskRequest(msg.Text):
		log.Printf("[Bot] [%s] Task request from %s", reqID, user.Handle())
		b.createTask(msg, user, msg.Text)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *authdomain.User) {
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		b.reply(msg, textStart)
	case "help":
		b.reply(msg, textHelp)
	case "mytasks":
		b.listAssigned(msg, user)
	case "created_tasks":
		b.listCreated(msg, user)
	case "assign":
		b.assign(msg, user, args)
	case "edit":
		b.edit(msg, user, args)
	case "delete":
		b.delete(msg, user, args)
	case "done":
		b.done(msg, user, args)
	case "stats":
		b.stats(msg)
	default:
		b.reply(msg, textUnknownCommand)
	}
}

func isTaskRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range taskTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func (b *Bot) RegisterCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "mytasks", Description: "Показать задачи, назначенные мне"},
		tgbotapi.BotCommand{Command: "created_tasks", Description: "Показать задачи, которые я создал"},
		tgbotapi.BotCommand{Command: "assign", Description: "Назначить задачу пользователю"},
		tgbotapi.BotCommand{Command: "delete", Description: "Удалить задачу"},
		tgbotapi.BotCommand{Command: "edit", Description: "Изменить название задачи"},
		tgbotapi.BotCommand{Command: "done", Description: "Отметить задачу выполненной"},
		tgbotapi.BotCommand{Command: "help", Description: "Показать справку"},
	)
	if _, err := b.api.Request(cfg); err != nil {
		return fmt.Errorf("failed to register bot commands: %w", err)
	}
	return nil
}

// reply sends text to the message's chat, split to fit Telegram's limit.
func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	b.sendText(msg.Chat.ID, text)
}

func (b *Bot) sendText(chatID int64, text string) error {
	for _, chunk := range splitMessage(text, maxMessageLength) {
		out := tgbotapi.NewMessage(chatID, chunk)
		out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		if _, err := b.api.Send(out); err != nil {
			log.Printf("[Bot] Failed to send message to chat %d: %v", chatID, err)
			return err
		}
	}
	return nil
}

// editOrReply replaces the text of messageID, or sends a new message when
// there is nothing to edit.
func (b *Bot) editOrReply(msg *tgbotapi.Message, messageID int, text string) {
	if messageID == 0 {
		b.reply(msg, text)
		return
	}
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(msg.Chat.ID, messageID, text)); err != nil {
		log.Printf("[Bot] Failed to edit message %d: %v", messageID, err)
		b.reply(msg, text)
	}
}
