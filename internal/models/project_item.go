package models

// ProjectItem is one node of a GitHub ProjectV2 items query. Content is nil
// for items whose payload the API withholds (draft issues, permission gaps);
// those items are skipped during normalization.
type ProjectItem struct {
	Content     *IssueContent  `json:"content"`
	FieldValues FieldValueList `json:"fieldValues"`
}

type IssueContent struct {
	Title      string        `json:"title"`
	Number     int           `json:"number"`
	State      string        `json:"state"`
	Body       string        `json:"body"`
	URL        string        `json:"url"`
	CreatedAt  string        `json:"createdAt"`
	UpdatedAt  string        `json:"updatedAt"`
	Repository *Repository   `json:"repository"`
	Labels     *LabelList    `json:"labels"`
	Assignees  *AssigneeList `json:"assignees"`
}

type Repository struct {
	Name  string          `json:"name"`
	Owner RepositoryOwner `json:"owner"`
}

type RepositoryOwner struct {
	Login string `json:"login"`
}

type LabelList struct {
	Nodes []Label `json:"nodes"`
}

type Label struct {
	Name string `json:"name"`
}

type AssigneeList struct {
	Nodes []AssigneeNode `json:"nodes"`
}

type AssigneeNode struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

type FieldValueList struct {
	Nodes []FieldValue `json:"nodes"`
}

// FieldValue is either a date value (Date set) or a single-select value
// (Name set), depending on which inline fragment matched server-side.
type FieldValue struct {
	Field *FieldRef `json:"field"`
	Date  string    `json:"date,omitempty"`
	Name  string    `json:"name,omitempty"`
}

type FieldRef struct {
	Name string `json:"name"`
}
