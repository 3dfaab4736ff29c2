package main

import (
	"flag"

	"github.com/karaage0703/pm-bot/internal/client/github"
	"github.com/karaage0703/pm-bot/internal/config"
	"github.com/karaage0703/pm-bot/internal/repository"
	"github.com/karaage0703/pm-bot/internal/service"
	log "github.com/sirupsen/logrus"
)

func main() {
	file := flag.String("file", "", "task document path (overrides TASKS_FILE)")
	flag.Parse()

	cfg, err := config.LoadSync()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}
	if config.Debug() {
		log.SetLevel(log.DebugLevel)
	}
	if *file != "" {
		cfg.DocumentPath = *file
	}

	var runRepo *repository.RunRepository
	if cfg.LedgerPath != "" {
		db, err := repository.InitDB(cfg.LedgerPath)
		if err != nil {
			log.Fatalf("could not initialize ledger: %v", err)
		}
		defer db.Close()
		runRepo = repository.NewRunRepository(db)
	}

	svc := service.NewSyncService(github.NewGitHubClient(cfg.Token), runRepo)

	if err := svc.Run(cfg.Owner, cfg.ProjectNumber, cfg.DocumentPath, cfg.Today); err != nil {
		log.Fatalf("sync failed: %v", err)
	}
}
