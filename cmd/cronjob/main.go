package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/jobs"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/notify"
	"rentdesk-backend/internal/repository/postgres"
	"rentdesk-backend/internal/scheduler"
	"rentdesk-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('apply-late-fees', 'refresh-notifications', 'send-upcoming-reminders', 'send-overdue-reminders', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentDesk Cronjob Runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.SendGrid)

	deriver := notify.NewDeriver(notify.Config{
		ReminderWindowDays: *cfg.Notifications.ReminderWindowDays,
		PickupWindowDays:   *cfg.Notifications.PickupWindowDays,
		OverdueEnabled:     *cfg.Notifications.OverdueEnabled,
		HistoryCap:         *cfg.Notifications.HistoryCap,
	})
	notificationSvc := service.NewNotificationService(store.OrderRepository, store.NotificationRepository, deriver)

	runner := jobs.NewRunner(store.OrderRepository, notificationSvc, emailSvc, cfg)

	if *runOnce != "" {
		runSingleJob(runner, *runOnce)
		return
	}

	sched := scheduler.NewScheduler(runner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")
	sched.Stop()
}

func runSingleJob(runner *jobs.Runner, name string) {
	ctx := context.Background()
	var err error
	switch name {
	case "apply-late-fees":
		err = runner.ApplyLateFees(ctx)
	case "refresh-notifications":
		err = runner.RefreshNotifications(ctx)
	case "send-upcoming-reminders":
		err = runner.SendUpcomingReminders(ctx)
	case "send-overdue-reminders":
		err = runner.SendOverdueReminders(ctx)
	case "all":
		err = runner.RunAll(ctx)
	default:
		log.Fatalf("Unknown job: %s", name)
	}
	if err != nil {
		os.Exit(1)
	}
}
