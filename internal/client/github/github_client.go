package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/karaage0703/pm-bot/internal/models"
)

const projectItemsQuery = `
query($owner: String!, $number: Int!) {
  user(login: $owner) {
    projectV2(number: $number) {
      items(first: 100) {
        nodes {
          content {
            ... on Issue {
              title
              number
              state
              body
              url
              createdAt
              updatedAt
              labels(first: 10) {
                nodes {
                  name
                }
              }
              assignees(first: 5) {
                nodes {
                  login
                  name
                }
              }
              repository {
                name
                owner {
                  login
                }
              }
            }
          }
          fieldValues(first: 20) {
            nodes {
              ... on ProjectV2ItemFieldDateValue {
                field {
                  ... on ProjectV2FieldCommon {
                    name
                  }
                }
                date
              }
              ... on ProjectV2ItemFieldSingleSelectValue {
                field {
                  ... on ProjectV2FieldCommon {
                    name
                  }
                }
                name
              }
            }
          }
        }
      }
    }
  }
}`

type GitHubClient struct {
	baseUrl    string
	token      string
	httpClient *http.Client
}

func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		baseUrl:    "https://api.github.com/graphql",
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetProjectItems fetches the items of one ProjectV2 board owned by a user.
func (c *GitHubClient) GetProjectItems(owner string, projectNumber int) ([]models.ProjectItem, error) {
	reqBody := graphQLRequest{
		Query: projectItemsQuery,
		Variables: map[string]any{
			"owner":  owner,
			"number": projectNumber,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal query (github): %w", err)
	}

	req, err := http.NewRequest("POST", c.baseUrl, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build request (github): %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get project items (github): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read error body (github): %w", err)
		}

		var apiErr APIError
		if err := json.Unmarshal(errorBody, &apiErr); err != nil {
			return nil, fmt.Errorf("error status (github): %d", resp.StatusCode)
		}
		if apiErr.Message != "" {
			return nil, fmt.Errorf("GitHub error: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("API error status: %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (github): %w", err)
	}

	var itemsResp ProjectItemsResponse
	if err := json.Unmarshal(respBody, &itemsResp); err != nil {
		return nil, fmt.Errorf("parse project items (github): %w", err)
	}

	// GraphQL reports query-level failures inside a 200 response.
	if len(itemsResp.Errors) > 0 {
		return nil, fmt.Errorf("GitHub error: %s", itemsResp.Errors[0].Message)
	}
	if itemsResp.Data == nil || itemsResp.Data.User == nil || itemsResp.Data.User.ProjectV2 == nil {
		return nil, fmt.Errorf("project %d not found for user %s (github)", projectNumber, owner)
	}

	return itemsResp.Data.User.ProjectV2.Items.Nodes, nil
}
