package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("One or more environment variables are missing or invalid, make sure .env is correctly filled: %v", err)
	}

	log := logger.New(cfg)
	mainLogger := log.WithField("component", "main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %d", cfg.LogLevel, cfg.Environment, cfg.TelegramChatID)

	lang, err := homework.ParseLanguage(cfg.Language)
	if err != nil {
		mainLogger.Fatalf("Invalid LANGUAGE: %v", err)
	}

	schedule, err := scheduler.ParseSchedule(cfg.PollSchedule, cfg.RetryPeriod)
	if err != nil {
		mainLogger.Fatalf("Could not parse poll schedule: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional cycle journal
	var journal notification.Repository
	if cfg.DatabaseURL != "" {
		var db *sql.DB
		db, err = idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.Fatalf("Could not connect to database: %v", err)
		}
		defer db.Close()

		repo := idb.NewPostgresCycleRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			mainLogger.Fatalf("Could not prepare cycle journal: %v", err)
		}
		journal = repo
		mainLogger.Info("Cycle journal enabled.")
	} else {
		mainLogger.Info("DATABASE_URL not set, cycle journal disabled.")
	}

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := log.WithField("component", "telebot").WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID).WithField("text", c.Text())
			}
			entry.Error("Telegram handler failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("Could not create Telegram bot: %v", err)
	}

	fetcher := practicum.NewClient(practicum.Config{
		Endpoint: cfg.PracticumEndpoint,
		Token:    cfg.PracticumToken,
		Timeout:  cfg.HTTPTimeout,
	}, log.WithField("component", "practicum"))

	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramRatePerSec, log.WithField("component", "notifier"))

	poller := app.NewPoller(
		app.PollerConfig{ChatID: cfg.TelegramChatID, Language: lang},
		fetcher,
		notifier,
		journal,
		log.WithField("component", "poller"),
	)

	statusService := app.NewStatusService(poller, journal, cfg.TelegramChatID)
	telegram.RegisterBotCommands(ctx, bot, statusService, log.WithField("component", "commands"))

	pollScheduler := scheduler.NewPollScheduler(poller, schedule, log.WithField("component", "scheduler"))
	pollScheduler.Start(ctx)

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()
	mainLogger.Info("Application setup complete. Bot and poller are running.")

	<-ctx.Done() // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
