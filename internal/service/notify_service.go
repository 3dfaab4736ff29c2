package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/karaage0703/pm-bot/internal/client"
	"github.com/karaage0703/pm-bot/internal/models"
	"github.com/karaage0703/pm-bot/internal/normalize"
	"github.com/karaage0703/pm-bot/internal/repository"
	"github.com/karaage0703/pm-bot/internal/taskdoc"
	log "github.com/sirupsen/logrus"
)

// ErrDocumentNotFound reports that the task document does not exist yet, so
// there is nothing to notify on.
var ErrDocumentNotFound = errors.New("task document not found")

type NotifyService struct {
	notifiers        []client.Notifier
	runRepo          *repository.RunRepository
	notificationRepo *repository.NotificationRepository
	notifyOnce       bool
}

func NewNotifyService(
	notifiers []client.Notifier,
	runRepo *repository.RunRepository,
	notificationRepo *repository.NotificationRepository,
	notifyOnce bool,
) *NotifyService {
	return &NotifyService{
		notifiers:        notifiers,
		runRepo:          runRepo,
		notificationRepo: notificationRepo,
		notifyOnce:       notifyOnce,
	}
}

// Run parses the task document at documentPath and sends one message per
// overdue task to every configured channel. Delivery failures are logged and
// recorded but do not stop the remaining sends.
func (s *NotifyService) Run(documentPath string, today time.Time) error {
	runId := startRun(s.runRepo, repository.RunKindNotify, documentPath)

	data, err := os.ReadFile(documentPath)
	if err != nil {
		finishRun(s.runRepo, runId, repository.RunStatusFailed)
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, documentPath)
		}
		return fmt.Errorf("read task document: %w", err)
	}

	tasks, dropped := taskdoc.Parse(string(data))
	if dropped > 0 {
		log.WithField("blocks", dropped).Warn("dropped task blocks missing mandatory fields")
	}

	overdue := s.filterOverdue(tasks, today)
	updateRunCounts(s.runRepo, runId, len(tasks)+dropped, len(overdue), dropped)

	if len(overdue) == 0 {
		log.Info("no overdue tasks")
		finishRun(s.runRepo, runId, repository.RunStatusCompleted)
		return nil
	}

	log.WithField("tasks", len(overdue)).Info("overdue tasks found")

	for _, notifier := range s.notifiers {
		sent := 0
		for _, task := range overdue {
			if s.alreadySent(task, notifier.Name()) {
				log.WithFields(log.Fields{
					"issue":   task.Number,
					"channel": notifier.Name(),
				}).Debug("notification already sent, skipping")
				continue
			}

			err := notifier.Notify(buildMessage(task))
			s.recordNotification(runId, task, notifier.Name(), err)
			if err != nil {
				log.WithFields(log.Fields{
					"issue":   task.Number,
					"channel": notifier.Name(),
				}).WithError(err).Error("could not send notification")
				continue
			}
			sent++
		}

		log.WithFields(log.Fields{
			"channel": notifier.Name(),
			"sent":    sent,
			"overdue": len(overdue),
		}).Info("notifications dispatched")
	}

	finishRun(s.runRepo, runId, repository.RunStatusCompleted)

	return nil
}

// filterOverdue re-evaluates tasks that carry a date against today so a stale
// document cannot mute a task that has become overdue since the last sync.
// Tasks without any date fall back to the tag recorded in the document.
func (s *NotifyService) filterOverdue(tasks []models.Task, today time.Time) []models.Task {
	var overdue []models.Task
	for _, task := range tasks {
		status := task.Overdue
		if task.EndDate != "" || task.DeadlineInBody != "" {
			status = normalize.EvaluateOverdue(task.EndDate, task.DeadlineInBody, task.State, today)
		}
		if !status.IsOverdue() {
			continue
		}

		fields := log.Fields{
			"issue":    task.Number,
			"title":    task.Title,
			"deadline": task.Deadline(),
		}
		if due, err := time.Parse("2006-01-02", task.Deadline()); err == nil {
			fields["overdue_for"] = humanize.RelTime(due, today, "ago", "from now")
		}
		log.WithFields(fields).Debug("task is overdue")

		overdue = append(overdue, task)
	}

	return overdue
}

func (s *NotifyService) alreadySent(task models.Task, channel string) bool {
	if !s.notifyOnce || s.notificationRepo == nil {
		return false
	}

	sent, err := s.notificationRepo.WasSent(task.Number, task.Repository, task.Deadline(), channel)
	if err != nil {
		log.WithError(err).Warn("could not check notification ledger")
		return false
	}

	return sent
}

func (s *NotifyService) recordNotification(runId string, task models.Task, channel string, sendErr error) {
	if s.notificationRepo == nil {
		return
	}

	notification := &repository.Notification{
		RunID:       runId,
		IssueNumber: task.Number,
		Repository:  task.Repository,
		Channel:     channel,
		Deadline:    task.Deadline(),
		Status:      repository.NotificationStatusSent,
	}
	if sendErr != nil {
		notification.Status = repository.NotificationStatusFailed
		notification.ErrorMessage = sendErr.Error()
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		log.WithError(err).Warn("could not record notification in ledger")
	}
}

func buildMessage(task models.Task) string {
	message := fmt.Sprintf("**期限切れ警告**: [%s] %s (#%d) の期限（%s）が過ぎています\n",
		task.Category, task.Title, task.Number, task.Deadline())
	message += fmt.Sprintf("**ステータス**: %s\n", task.State)
	if task.AssigneeInBody != "" {
		message += fmt.Sprintf("**担当者**: %s (%s)\n", task.AssigneeDisplay(), task.AssigneeInBody)
	} else {
		message += fmt.Sprintf("**担当者**: %s\n", task.AssigneeDisplay())
	}
	message += fmt.Sprintf("**URL**: %s", task.URL)

	return message
}
