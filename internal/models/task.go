package models

import "strings"

type TaskState string

const (
	StateOpen   TaskState = "OPEN"
	StateClosed TaskState = "CLOSED"
)

type Assignee struct {
	Login       string
	DisplayName string
}

type OverdueKind string

const (
	OverdueYes     OverdueKind = "overdue"
	OverdueNo      OverdueKind = "not_overdue"
	OverdueUnknown OverdueKind = "unknown"
)

// OverdueStatus carries the classification alongside the human-readable
// reason that ends up in the rendered document.
type OverdueStatus struct {
	Kind   OverdueKind
	Reason string
}

func (s OverdueStatus) IsOverdue() bool {
	return s.Kind == OverdueYes
}

// Task is the canonical record produced by normalization and recovered by
// parsing. Date fields hold ISO YYYY-MM-DD strings; empty means absent.
type Task struct {
	Title          string
	Category       string
	Number         int
	Repository     string
	URL            string
	State          TaskState
	Labels         []string
	Assignees      []Assignee
	AssigneeInBody string
	StartDate      string
	EndDate        string
	DeadlineInBody string
	Detail         string
	// DetailSectioned records whether Detail came from a dedicated body
	// section, which changes the label used when rendering.
	DetailSectioned bool
	Overdue         OverdueStatus
}

// AssigneeDisplay renders the structured assignees as "login (name)" pairs
// joined by ", ", or なし when nobody is assigned.
func (t Task) AssigneeDisplay() string {
	if len(t.Assignees) == 0 {
		return "なし"
	}
	parts := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		if a.DisplayName != "" {
			parts = append(parts, a.Login+" ("+a.DisplayName+")")
		} else {
			parts = append(parts, a.Login)
		}
	}
	return strings.Join(parts, ", ")
}

// Deadline resolves the date used in notifications: the structured end date
// when present, otherwise the deadline mined from the issue body.
func (t Task) Deadline() string {
	if t.EndDate != "" {
		return t.EndDate
	}
	return t.DeadlineInBody
}
