package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/karaage0703/pm-bot/internal/client"
	"github.com/karaage0703/pm-bot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The full loop: fetched items become a document, and a later notify run
// reads that document back and alerts on exactly the overdue task.
func TestPipeline_SyncThenNotify(t *testing.T) {
	today := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	repo := &models.Repository{Name: "pm-bot", Owner: models.RepositoryOwner{Login: "karaage0703"}}

	items := []models.ProjectItem{
		{
			Content: &models.IssueContent{
				Title:      "[Infra] Rotate credentials",
				Number:     101,
				State:      "OPEN",
				URL:        "https://github.com/karaage0703/pm-bot/issues/101",
				Repository: repo,
			},
			FieldValues: models.FieldValueList{Nodes: []models.FieldValue{
				{Field: &models.FieldRef{Name: "終了日"}, Date: "2025-03-31"},
			}},
		},
		{
			Content: &models.IssueContent{
				Title:      "[Docs] Update onboarding guide",
				Number:     102,
				State:      "CLOSED",
				URL:        "https://github.com/karaage0703/pm-bot/issues/102",
				Repository: repo,
			},
		},
		{
			Content: &models.IssueContent{
				Title:      "Collect feedback",
				Number:     103,
				State:      "OPEN",
				URL:        "https://github.com/karaage0703/pm-bot/issues/103",
				Repository: repo,
			},
		},
	}

	documentPath := filepath.Join(t.TempDir(), "docs", "tasks.md")
	source := &fakeProjectSource{items: items}
	require.NoError(t, NewSyncService(source, nil).Run("karaage0703", 3, documentPath, today))

	data, err := os.ReadFile(documentPath)
	require.NoError(t, err)
	document := string(data)

	// Three blocks, input order preserved.
	assert.Contains(t, document, "## 1. [Infra] Rotate credentials")
	assert.Contains(t, document, "## 2. [Docs] Update onboarding guide")
	assert.Contains(t, document, "## 3. [Other] Collect feedback")

	slack := &fakeNotifier{name: "slack"}
	discord := &fakeNotifier{name: "discord"}
	svc := NewNotifyService([]client.Notifier{slack, discord}, nil, nil, false)
	require.NoError(t, svc.Run(documentPath, today))

	require.Len(t, slack.messages, 1, "only the past-end-date task is overdue")
	require.Len(t, discord.messages, 1)
	assert.Contains(t, slack.messages[0], "[Infra] Rotate credentials (#101)")
	assert.Contains(t, slack.messages[0], "の期限（2025-03-31）が過ぎています")
	assert.Equal(t, slack.messages[0], discord.messages[0])
}
