package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	api "taskbot/cmd/api"
	authdomain "taskbot/internal/auth/domain"
	authRepo "taskbot/internal/auth/repository"
	authUsecase "taskbot/internal/auth/usecase"
	"taskbot/internal/bot"
	dashboardUsecase "taskbot/internal/dashboard/usecase"
	"taskbot/internal/extract"
	taskdomain "taskbot/internal/task/domain"
	taskRepo "taskbot/internal/task/repository"
	"taskbot/internal/task/scheduler"
	taskUsecase "taskbot/internal/task/usecase"
	"taskbot/internal/voice"
	"taskbot/pkg/config"
	"taskbot/pkg/database"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"
)

// app holds the dependencies shared by the bot and the dashboard
type app struct {
	cfg         *config.Config
	db          *gorm.DB
	userRepo    authRepo.UserRepository
	taskRepo    taskRepo.TaskRepository
	taskUc      taskUsecase.TaskUsecase
	dashboardUc dashboardUsecase.DashboardUsecase
	settings    *api.RuntimeSettings
}

func newApp(cfg *config.Config) (*app, error) {
	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &taskdomain.Task{}); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)

	extractor := extract.New(extract.Russian())

	return &app{
		cfg:         cfg,
		db:          db,
		userRepo:    userRepo,
		taskRepo:    taskRepository,
		taskUc:      taskUsecase.NewTaskUsecase(taskRepository, userRepo, extractor, cfg.ReminderLead),
		dashboardUc: dashboardUsecase.NewDashboardUsecase(taskRepository, userRepo),
		settings:    api.NewRuntimeSettings(cfg.SpeechLanguage),
	}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func (a *app) runBot(ctx context.Context) error {
	if a.cfg.BotToken == "" {
		return errors.New("BOT_TOKEN is not set")
	}

	tg, err := tgbotapi.NewBotAPI(a.cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	log.Printf("[Bot] Authorized as @%s", tg.Self.UserName)

	opts := []bot.Option{bot.WithAdmins(a.cfg.IsAdmin)}
	if transcriber, err := a.newTranscriber(ctx, tg); err != nil {
		log.Printf("[WARN] Voice messages disabled: %v", err)
	} else {
		opts = append(opts, bot.WithTranscriber(transcriber))
	}

	b := bot.New(tg, a.userRepo, a.taskUc, a.dashboardUc, opts...)
	if err := b.RegisterCommands(); err != nil {
		log.Printf("[WARN] %v", err)
	}

	reminders := scheduler.NewTaskReminderScheduler(a.taskRepo, b, a.cfg.ReminderInterval)
	reminders.Start()
	defer reminders.Stop()

	return b.Run(ctx)
}

func (a *app) newTranscriber(ctx context.Context, tg *tgbotapi.BotAPI) (*voice.Transcriber, error) {
	opts, err := voice.SpeechOptions(ctx, a.cfg.SpeechAPIKey, a.cfg.GoogleCredentials)
	if err != nil {
		return nil, err
	}
	recognizer, err := voice.NewGoogleRecognizer(ctx, a.settings.SpeechLanguage, opts...)
	if err != nil {
		return nil, err
	}
	return voice.NewTranscriber(
		bot.NewFileDownloader(tg, nil),
		voice.NewFFmpegConverter(a.cfg.FFmpegPath, a.cfg.ConversionTimeout),
		recognizer,
	), nil
}

func (a *app) runWeb(ctx context.Context, port string) error {
	if port == "" {
		port = a.cfg.Port
	}

	authUc, err := authUsecase.NewAuthUsecase(a.cfg)
	if err != nil {
		return err
	}

	handler := api.NewHandler(authUc, a.taskUc, a.dashboardUc, a.settings)
	return handler.Start(ctx, ":"+port)
}
