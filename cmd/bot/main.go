package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"team_status_bot/internal/app"
	"team_status_bot/internal/infra/config"
	idb "team_status_bot/internal/infra/database"
	"team_status_bot/internal/infra/logger"
	"team_status_bot/internal/infra/scheduler"
	"team_status_bot/internal/infra/telegram"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.For("main")

	if cfg.TelegramToken == "" {
		mainLogger.Fatal("TELEGRAM_TOKEN environment variable is required")
	}
	mainLogger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"timezone":    cfg.Location.String(),
		"reminder":    cfg.CronSpecReminder,
		"workers":     cfg.BotWorkers,
	}).Info("Team Status Bot starting...")

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(context.Background(), cfg.DatabaseURL, idb.Pool{
		MaxOpen: cfg.DBMaxOpenConns,
		MaxIdle: cfg.DBMaxIdleConns,
	})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()

	res, err := idb.Migrate(db)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not apply database migrations")
	}
	mainLogger.WithFields(logrus.Fields{"version": res.Version, "changed": res.Changed}).Info("Database schema is up to date")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Services
	statusService := app.NewStatusService(
		idb.NewPostgresUserRepository(db),
		idb.NewPostgresStatusRepository(db),
		clockwork.NewRealClock(),
		cfg.Location,
		logger.For("status_service"),
	)
	conversations := app.NewConversationService(
		statusService,
		app.NewSessions(cfg.SessionLimit, cfg.SessionTTL),
		logger.For("conversation"),
	)
	replies := app.NewReminderReplies(statusService, cfg.SessionLimit, cfg.SessionTTL, logger.For("reminder_replies"))

	// Initialize Telegram Bot
	botLogger := logger.For("telebot")
	pref := telebot.Settings{
		Token:       cfg.TelegramToken,
		Poller:      telegram.NewKeyedPoller(&telebot.LongPoller{Timeout: 10 * time.Second}, cfg.BotWorkers),
		Synchronous: true, // handlers run on the poller's per-user workers
		OnError: func(err error, c telebot.Context) {
			entry := botLogger.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{"sender_id": c.Sender().ID, "chat_id": c.Chat().ID})
			}
			entry.Error("Handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	reminderService := app.NewReminderService(statusService, idb.NewPostgresReminderRepository(db), telegram.NewTelebotAdapter(bot), logger.For("reminder_service"))
	reminderScheduler := scheduler.NewReminderScheduler(reminderService, logger.For("scheduler"), cfg.Location, cfg.CronSpecReminder)
	if err := reminderScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start reminder scheduler")
	}

	// Register Handlers
	handlerLogger := logger.For("handlers")
	bot.Use(telegram.EnsureUser(ctx, statusService, handlerLogger))
	telegram.RegisterBotCommands(ctx, bot, statusService, handlerLogger)
	telegram.RegisterConversationHandlers(ctx, bot, statusService, conversations, replies, handlerLogger)

	mainLogger.Info("Application setup complete. Bot and Scheduler are starting...")
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	reminderScheduler.Stop()
	cancel()
	mainLogger.Info("Application shut down gracefully.")
}
