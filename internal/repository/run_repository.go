package repository

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	RunKindSync   = "sync"
	RunKindNotify = "notify"
)

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

type Run struct {
	Id          string
	Kind        string
	Document    string
	TotalItems  int
	Produced    int
	Skipped     int
	Status      string
	StartedAt   time.Time
	CompletedAt *time.Time
}

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(run *Run) error {
	query := `
	INSERT INTO runs (id, kind, document, total_items, status)
        VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.Id,
		run.Kind,
		run.Document,
		run.TotalItems,
		run.Status,
	)

	if err != nil {
		return fmt.Errorf("Error trying to create the run: %w", err)
	}

	return nil
}

func (r *RunRepository) UpdateCounts(id string, totalItems, produced, skipped int) error {
	query := `UPDATE runs SET total_items = ?, produced = ?, skipped = ? WHERE id = ?`
	_, err := r.db.Exec(query, totalItems, produced, skipped, id)
	return err
}

func (r *RunRepository) Complete(id string, status string) error {
	query := `UPDATE runs SET status = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.Exec(query, status, id)
	return err
}

func (r *RunRepository) GetRuns() ([]Run, error) {
	query := `
	SELECT * FROM runs
	`
	rows, err := r.db.Query(query)

	if err != nil {
		return nil, fmt.Errorf("Error trying to get runs: %w", err)
	}
	defer rows.Close()

	var runs []Run

	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.Id,
			&run.Kind,
			&run.Document,
			&run.TotalItems,
			&run.Produced,
			&run.Skipped,
			&run.Status,
			&run.StartedAt,
			&run.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (r *RunRepository) GetRun(id string) (Run, error) {
	query := `
		SELECT * FROM runs where id = ?
	`

	var run Run
	err := r.db.QueryRow(query, id).Scan(
		&run.Id,
		&run.Kind,
		&run.Document,
		&run.TotalItems,
		&run.Produced,
		&run.Skipped,
		&run.Status,
		&run.StartedAt,
		&run.CompletedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("Error trying to get run: %w", err)
	}

	return run, nil
}
