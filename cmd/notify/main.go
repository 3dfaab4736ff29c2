package main

import (
	"flag"

	"github.com/karaage0703/pm-bot/internal/client"
	"github.com/karaage0703/pm-bot/internal/client/discord"
	"github.com/karaage0703/pm-bot/internal/client/slack"
	"github.com/karaage0703/pm-bot/internal/config"
	"github.com/karaage0703/pm-bot/internal/repository"
	"github.com/karaage0703/pm-bot/internal/service"
	log "github.com/sirupsen/logrus"
)

func main() {
	file := flag.String("file", "", "task document path (overrides TASKS_FILE)")
	flag.Parse()

	cfg, err := config.LoadNotify()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}
	if config.Debug() {
		log.SetLevel(log.DebugLevel)
	}
	if *file != "" {
		cfg.DocumentPath = *file
	}

	var notifiers []client.Notifier
	if cfg.SlackWebhookURL != "" {
		notifiers = append(notifiers, slack.NewSlackClient(cfg.SlackWebhookURL))
	}
	if cfg.DiscordWebhookURL != "" {
		notifiers = append(notifiers, discord.NewDiscordClient(cfg.DiscordWebhookURL))
	}

	var runRepo *repository.RunRepository
	var notificationRepo *repository.NotificationRepository
	if cfg.LedgerPath != "" {
		db, err := repository.InitDB(cfg.LedgerPath)
		if err != nil {
			log.Fatalf("could not initialize ledger: %v", err)
		}
		defer db.Close()
		runRepo = repository.NewRunRepository(db)
		notificationRepo = repository.NewNotificationRepository(db)
	}

	svc := service.NewNotifyService(notifiers, runRepo, notificationRepo, cfg.NotifyOnce)

	if err := svc.Run(cfg.DocumentPath, cfg.Today); err != nil {
		log.Fatalf("notify failed: %v", err)
	}
}
