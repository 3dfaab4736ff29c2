package service

import (
	"github.com/google/uuid"
	"github.com/karaage0703/pm-bot/internal/repository"
	log "github.com/sirupsen/logrus"
)

// Ledger recording is best effort: a run proceeds even when the ledger is
// unavailable, and a nil repository disables it entirely.

func startRun(repo *repository.RunRepository, kind, document string) string {
	if repo == nil {
		return ""
	}

	id := uuid.NewString()
	run := &repository.Run{
		Id:       id,
		Kind:     kind,
		Document: document,
		Status:   repository.RunStatusRunning,
	}
	if err := repo.Create(run); err != nil {
		log.WithError(err).Warn("could not record run in ledger")
		return ""
	}

	return id
}

func updateRunCounts(repo *repository.RunRepository, id string, totalItems, produced, skipped int) {
	if repo == nil || id == "" {
		return
	}
	if err := repo.UpdateCounts(id, totalItems, produced, skipped); err != nil {
		log.WithError(err).WithField("run_id", id).Warn("could not update run counts in ledger")
	}
}

func finishRun(repo *repository.RunRepository, id, status string) {
	if repo == nil || id == "" {
		return
	}
	if err := repo.Complete(id, status); err != nil {
		log.WithError(err).WithField("run_id", id).Warn("could not complete run in ledger")
	}
}
