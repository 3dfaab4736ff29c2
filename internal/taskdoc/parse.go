package taskdoc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/karaage0703/pm-bot/internal/models"
)

var (
	blockSplit     = regexp.MustCompile(`\n## \d+\.`)
	titleLine      = regexp.MustCompile(`\[(.+?)\] (.+?)(?:\n|$)`)
	numberLine     = regexp.MustCompile(`\*\*Issue番号\*\*: #(\d+)`)
	repositoryLine = regexp.MustCompile(`\*\*リポジトリ\*\*: (.+?)(?:\n|$)`)
	urlLine        = regexp.MustCompile(`\*\*URL\*\*: (.+?)(?:\n|$)`)
	stateLine      = regexp.MustCompile(`\*\*状態\*\*: (.+?)(?:\n|$)`)
	assigneesLine  = regexp.MustCompile(`\*\*GitHubアサイン\*\*: (.+?)(?:\n|$)`)
	bodyNoteLine   = regexp.MustCompile(`\*\*Issue本文内の記載\*\*: (.+?)(?:\n|$)`)
	startDateLine  = regexp.MustCompile(`\*\*開始日\*\*: (\d{4}-\d{2}-\d{2})`)
	endDateLine    = regexp.MustCompile(`\*\*終了日\*\*: (\d{4}-\d{2}-\d{2})`)
	bodyDueLine    = regexp.MustCompile(`\*\*Issue本文内の期限\*\*: (\d{4}-\d{2}-\d{2})`)
	overdueLine    = regexp.MustCompile(`\*\*期限切れ\*\*: (.+?)(?:\n|$)`)
	assigneePair   = regexp.MustCompile(`^(.+?) \((.+)\)$`)
)

// Parse recovers tasks from a rendered document. Blocks missing any of the
// mandatory lines (category+title, issue number, URL, state) are dropped
// without affecting their siblings; the second return value counts them.
// Unknown lines are ignored, which keeps documents written by older
// renderer revisions parseable. Labels and detail text are not recovered.
func Parse(doc string) ([]models.Task, int) {
	blocks := blockSplit.Split(doc, -1)
	if len(blocks) > 0 {
		// Everything before the first numbered heading is the document header.
		blocks = blocks[1:]
	}

	var tasks []models.Task
	dropped := 0

	for _, block := range blocks {
		t, ok := parseBlock(block)
		if !ok {
			dropped++
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, dropped
}

func parseBlock(block string) (models.Task, bool) {
	var t models.Task

	m := titleLine.FindStringSubmatch(block)
	if m == nil {
		return models.Task{}, false
	}
	t.Category, t.Title = m[1], m[2]

	m = numberLine.FindStringSubmatch(block)
	if m == nil {
		return models.Task{}, false
	}
	t.Number, _ = strconv.Atoi(m[1])

	m = urlLine.FindStringSubmatch(block)
	if m == nil {
		return models.Task{}, false
	}
	t.URL = m[1]

	m = stateLine.FindStringSubmatch(block)
	if m == nil {
		return models.Task{}, false
	}
	t.State = models.TaskState(m[1])

	if m = repositoryLine.FindStringSubmatch(block); m != nil {
		t.Repository = m[1]
	}
	if m = assigneesLine.FindStringSubmatch(block); m != nil {
		t.Assignees = parseAssignees(m[1])
	}
	if m = bodyNoteLine.FindStringSubmatch(block); m != nil {
		t.AssigneeInBody = m[1]
	}
	if m = startDateLine.FindStringSubmatch(block); m != nil {
		t.StartDate = m[1]
	}
	if m = endDateLine.FindStringSubmatch(block); m != nil {
		t.EndDate = m[1]
	}
	if m = bodyDueLine.FindStringSubmatch(block); m != nil {
		t.DeadlineInBody = m[1]
	}
	if m = overdueLine.FindStringSubmatch(block); m != nil {
		t.Overdue = parseOverdue(m[1])
	}

	return t, true
}

// parseAssignees undoes AssigneeDisplay. Display names containing ", " split
// wrong here; that is accepted, the join is lossy for such names.
func parseAssignees(display string) []models.Assignee {
	if display == "なし" {
		return nil
	}

	parts := strings.Split(display, ", ")
	assignees := make([]models.Assignee, 0, len(parts))
	for _, p := range parts {
		if m := assigneePair.FindStringSubmatch(p); m != nil {
			assignees = append(assignees, models.Assignee{Login: m[1], DisplayName: m[2]})
			continue
		}
		assignees = append(assignees, models.Assignee{Login: p})
	}
	return assignees
}

func parseOverdue(reason string) models.OverdueStatus {
	st := models.OverdueStatus{Reason: reason}
	switch {
	case strings.HasPrefix(reason, "はい"):
		st.Kind = models.OverdueYes
	case strings.HasPrefix(reason, "いいえ"):
		st.Kind = models.OverdueNo
	case strings.HasPrefix(reason, "不明"):
		st.Kind = models.OverdueUnknown
	}
	return st
}
