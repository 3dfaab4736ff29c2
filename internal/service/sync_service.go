package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/karaage0703/pm-bot/internal/client"
	"github.com/karaage0703/pm-bot/internal/models"
	"github.com/karaage0703/pm-bot/internal/normalize"
	"github.com/karaage0703/pm-bot/internal/repository"
	"github.com/karaage0703/pm-bot/internal/taskdoc"
	log "github.com/sirupsen/logrus"
)

type SyncService struct {
	source  client.ProjectSource
	runRepo *repository.RunRepository
}

func NewSyncService(source client.ProjectSource, runRepo *repository.RunRepository) *SyncService {
	return &SyncService{
		source:  source,
		runRepo: runRepo,
	}
}

// Run fetches the project items for one ProjectV2 board, renders the task
// document and writes it to documentPath. Items without issue content are
// skipped; only aggregate counts are reported.
func (s *SyncService) Run(owner string, projectNumber int, documentPath string, today time.Time) error {
	runId := startRun(s.runRepo, repository.RunKindSync, documentPath)

	items, err := s.source.GetProjectItems(owner, projectNumber)
	if err != nil {
		finishRun(s.runRepo, runId, repository.RunStatusFailed)
		return fmt.Errorf("get project items: %w", err)
	}

	tasks := make([]models.Task, 0, len(items))
	skipped := 0
	for _, item := range items {
		task, ok := normalize.Task(item, today)
		if !ok {
			skipped++
			log.Debug("skipping project item without issue content")
			continue
		}
		tasks = append(tasks, task)
	}

	document := taskdoc.Render(tasks)

	if dir := filepath.Dir(documentPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			finishRun(s.runRepo, runId, repository.RunStatusFailed)
			return fmt.Errorf("create document directory: %w", err)
		}
	}
	if err := os.WriteFile(documentPath, []byte(document), 0o644); err != nil {
		finishRun(s.runRepo, runId, repository.RunStatusFailed)
		return fmt.Errorf("write task document: %w", err)
	}

	log.WithFields(log.Fields{
		"document": documentPath,
		"items":    len(items),
		"tasks":    len(tasks),
		"skipped":  skipped,
	}).Info("task document updated")

	updateRunCounts(s.runRepo, runId, len(items), len(tasks), skipped)
	finishRun(s.runRepo, runId, repository.RunStatusCompleted)

	return nil
}
