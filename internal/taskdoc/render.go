// Package taskdoc serializes task records to the markdown task document and
// recovers them from it. Render and Parse share one grammar: label-anchored
// lines inside numbered blocks. Optional fields are omitted when empty, so
// a re-parse sees them as absent rather than blank.
package taskdoc

import (
	"fmt"
	"strings"

	"github.com/karaage0703/pm-bot/internal/models"
)

// DocumentHeader opens every rendered task document.
const DocumentHeader = "# GitHub Project タスク一覧"

const detailPlaceholder = "詳細情報なし"

// Render serializes tasks in input order, numbering the blocks from 1.
func Render(tasks []models.Task) string {
	var b strings.Builder
	b.WriteString(DocumentHeader + "\n\n")

	for i, t := range tasks {
		renderTask(&b, t, i+1)
		if i < len(tasks)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderTask(b *strings.Builder, t models.Task, index int) {
	fmt.Fprintf(b, "## %d. [%s] %s\n\n", index, t.Category, t.Title)

	b.WriteString("### 基本情報\n")
	fmt.Fprintf(b, "- **Issue番号**: #%d\n", t.Number)
	fmt.Fprintf(b, "- **リポジトリ**: %s\n", t.Repository)
	fmt.Fprintf(b, "- **URL**: %s\n", t.URL)
	fmt.Fprintf(b, "- **状態**: %s\n", t.State)
	if len(t.Labels) > 0 {
		fmt.Fprintf(b, "- **ラベル**: %s\n", strings.Join(t.Labels, ", "))
	}

	b.WriteString("\n### 担当者情報\n")
	fmt.Fprintf(b, "- **GitHubアサイン**: %s\n", t.AssigneeDisplay())
	if t.AssigneeInBody != "" {
		fmt.Fprintf(b, "- **Issue本文内の記載**: %s\n", t.AssigneeInBody)
	}

	b.WriteString("\n### 詳細内容\n")
	switch {
	case t.DetailSectioned:
		fmt.Fprintf(b, "- **詳細な作業内容**: %s\n", t.Detail)
	case t.Detail != "":
		fmt.Fprintf(b, "- **詳細**: %s\n", t.Detail)
	default:
		fmt.Fprintf(b, "- **詳細**: %s\n", detailPlaceholder)
	}
	if t.DeadlineInBody != "" {
		fmt.Fprintf(b, "- **Issue本文内の期限**: %s\n", t.DeadlineInBody)
	}

	b.WriteString("\n### プロジェクト情報\n")
	if t.StartDate != "" {
		fmt.Fprintf(b, "- **開始日**: %s\n", t.StartDate)
	}
	if t.EndDate != "" {
		fmt.Fprintf(b, "- **終了日**: %s\n", t.EndDate)
	}
	fmt.Fprintf(b, "- **期限切れ**: %s\n", t.Overdue.Reason)
}
