package repository

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

type Notification struct {
	ID           int64
	RunID        string
	IssueNumber  int
	Repository   string
	Channel      string
	Deadline     string
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *Notification) error {
	query := `
		INSERT INTO notifications (run_id, issue_number, repository, channel, deadline, status, error_message)
        VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		notification.RunID,
		notification.IssueNumber,
		notification.Repository,
		notification.Channel,
		notification.Deadline,
		notification.Status,
		notification.ErrorMessage,
	)

	if err != nil {
		return fmt.Errorf("Error trying to record the notification: %w", err)
	}

	return nil
}

// WasSent reports whether a successful delivery is already recorded for the
// same issue, deadline and channel.
func (r *NotificationRepository) WasSent(issueNumber int, repository, deadline, channel string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE issue_number = ? AND repository = ? AND deadline = ? AND channel = ? AND status = ?
	`

	var count int
	err := r.db.QueryRow(query, issueNumber, repository, deadline, channel, NotificationStatusSent).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("Error trying to check sent notifications: %w", err)
	}

	return count > 0, nil
}
