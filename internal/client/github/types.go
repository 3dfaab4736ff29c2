package github

import "github.com/karaage0703/pm-bot/internal/models"

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// APIError is the REST-style body GitHub returns on non-200 responses,
// e.g. {"message": "Bad credentials"}.
type APIError struct {
	Message string `json:"message"`
}

// GraphQLError is one entry of the errors array a 200 response may carry.
type GraphQLError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ProjectItemsResponse struct {
	Data   *ProjectItemsData `json:"data"`
	Errors []GraphQLError    `json:"errors"`
}

type ProjectItemsData struct {
	User *ProjectOwner `json:"user"`
}

type ProjectOwner struct {
	ProjectV2 *Project `json:"projectV2"`
}

type Project struct {
	Items ProjectItems `json:"items"`
}

type ProjectItems struct {
	Nodes []models.ProjectItem `json:"nodes"`
}
