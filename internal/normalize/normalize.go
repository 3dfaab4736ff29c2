// Package normalize flattens raw project items into canonical task records.
package normalize

import (
	"regexp"
	"time"

	"github.com/karaage0703/pm-bot/internal/extract"
	"github.com/karaage0703/pm-bot/internal/models"
)

const isoDate = "2006-01-02"

// DefaultCategory is assigned to tasks whose title has no bracketed prefix.
const DefaultCategory = "Other"

var (
	categoryPattern = regexp.MustCompile(`^\[(.+?)\]`)
	categoryPrefix  = regexp.MustCompile(`^\[.+?\]\s*`)
)

var (
	startDateLabels = []string{"開始日", "Start date"}
	endDateLabels   = []string{"終了日", "End date"}
)

// Task flattens one project item into the canonical record. The second
// return value is false when the item carries no content payload and must
// be skipped.
func Task(item models.ProjectItem, today time.Time) (models.Task, bool) {
	if item.Content == nil {
		return models.Task{}, false
	}
	c := item.Content

	t := models.Task{
		Number: c.Number,
		URL:    c.URL,
		State:  models.TaskState(c.State),
	}
	t.Category, t.Title = SplitCategory(c.Title)

	if c.Repository != nil {
		t.Repository = c.Repository.Owner.Login + "/" + c.Repository.Name
	}
	if c.Labels != nil {
		for _, l := range c.Labels.Nodes {
			t.Labels = append(t.Labels, l.Name)
		}
	}
	if c.Assignees != nil {
		for _, a := range c.Assignees.Nodes {
			t.Assignees = append(t.Assignees, models.Assignee{Login: a.Login, DisplayName: a.Name})
		}
	}

	// First usable date per field wins; single-select values and dates that
	// fail validation are passed over.
	for _, fv := range item.FieldValues.Nodes {
		if fv.Field == nil || fv.Date == "" {
			continue
		}
		switch {
		case t.StartDate == "" && matchesLabel(fv.Field.Name, startDateLabels):
			t.StartDate = validDate(fv.Date)
		case t.EndDate == "" && matchesLabel(fv.Field.Name, endDateLabels):
			t.EndDate = validDate(fv.Date)
		}
	}

	t.AssigneeInBody = extract.Assignee(c.Body)
	t.DeadlineInBody = extract.Deadline(c.Body)
	t.Detail, t.DetailSectioned = extract.Detail(c.Body)

	t.Overdue = EvaluateOverdue(t.EndDate, t.DeadlineInBody, t.State, today)

	return t, true
}

// SplitCategory separates the bracketed category prefix from an issue title.
// "[Backend] Fix login" yields ("Backend", "Fix login"); a title without a
// prefix keeps its text and gets the default category.
func SplitCategory(title string) (category, rest string) {
	m := categoryPattern.FindStringSubmatch(title)
	if m == nil {
		return DefaultCategory, title
	}
	return m[1], categoryPrefix.ReplaceAllString(title, "")
}

func matchesLabel(name string, labels []string) bool {
	for _, l := range labels {
		if name == l {
			return true
		}
	}
	return false
}

func validDate(s string) string {
	if _, err := time.Parse(isoDate, s); err != nil {
		return ""
	}
	return s
}
