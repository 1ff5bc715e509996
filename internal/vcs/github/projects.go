package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
	"github.com/thomas-vilte/remove-from-project/internal/models"
)

// MaxColumns is the number of columns fetched. Cards use the API default page.
// Larger boards are not paginated, truncation is only reported.
const MaxColumns = 10

const projectCardsQuery = `query ($login: String!, $projectNumber: Int!, $columns: Int!) {
  organization(login: $login) {
    name
    project(number: $projectNumber) {
      databaseId
      name
      url
      columns(first: $columns) {
        pageInfo {
          hasNextPage
        }
        nodes {
          databaseId
          name
          cards {
            pageInfo {
              hasNextPage
            }
            edges {
              node {
                databaseId
                content {
                  __typename
                  ... on Issue {
                    databaseId
                    number
                  }
                  ... on PullRequest {
                    databaseId
                    number
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

type (
	graphQLRequest struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}

	graphQLError struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}

	pageInfo struct {
		HasNextPage bool `json:"hasNextPage"`
	}

	cardContentNode struct {
		Typename   string `json:"__typename"`
		DatabaseID int64  `json:"databaseId"`
		Number     int    `json:"number"`
	}

	cardNode struct {
		DatabaseID int64            `json:"databaseId"`
		Content    *cardContentNode `json:"content"`
	}

	columnNode struct {
		DatabaseID int64  `json:"databaseId"`
		Name       string `json:"name"`
		Cards      struct {
			PageInfo pageInfo `json:"pageInfo"`
			Edges    []struct {
				Node cardNode `json:"node"`
			} `json:"edges"`
		} `json:"cards"`
	}

	projectNode struct {
		DatabaseID int64  `json:"databaseId"`
		Name       string `json:"name"`
		URL        string `json:"url"`
		Columns    struct {
			PageInfo pageInfo     `json:"pageInfo"`
			Nodes    []columnNode `json:"nodes"`
		} `json:"columns"`
	}

	projectCardsResponse struct {
		Data struct {
			Organization *struct {
				Name    string       `json:"name"`
				Project *projectNode `json:"project"`
			} `json:"organization"`
		} `json:"data"`
		Errors []graphQLError `json:"errors"`
	}
)

func (ghc *GitHubClient) ListProjectCards(ctx context.Context, owner string, projectNumber int) (*models.Project, []models.Card, error) {
	log := logger.FromContext(ctx)

	log.Debug("querying project cards",
		"owner", owner,
		"project_number", projectNumber)

	req, err := ghc.api.NewRequest(http.MethodPost, ghc.graphqlURL, graphQLRequest{
		Query: projectCardsQuery,
		Variables: map[string]interface{}{
			"login":         owner,
			"projectNumber": projectNumber,
			"columns":       MaxColumns,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build project query: %w", err)
	}

	var out projectCardsResponse
	resp, err := ghc.api.Do(ctx, req, &out)
	if err != nil {
		log.Error("project query failed",
			"error", err,
			"owner", owner,
			"project_number", projectNumber)
		return nil, nil, classifyError(resp, err, "query project cards").
			WithContext("owner", owner).
			WithContext("project_number", projectNumber)
	}

	if len(out.Errors) > 0 {
		messages := make([]string, 0, len(out.Errors))
		for _, e := range out.Errors {
			messages = append(messages, e.Message)
		}
		return nil, nil, domainErrors.ErrGraphQL.
			WithContext("owner", owner).
			WithContext("project_number", projectNumber).
			WithContext("detail", strings.Join(messages, "; "))
	}

	if out.Data.Organization == nil || out.Data.Organization.Project == nil {
		return nil, nil, domainErrors.ErrProjectNotFound.
			WithContext("owner", owner).
			WithContext("project_number", projectNumber)
	}

	project := toProject(owner, projectNumber, out.Data.Organization.Project)
	cards := project.Cards()

	log.Debug("project cards fetched",
		"project", project.Name,
		"columns", len(project.Columns),
		"cards", len(cards),
		"truncated", project.Truncated)

	return project, cards, nil
}

func toProject(owner string, number int, node *projectNode) *models.Project {
	project := &models.Project{
		Owner:      owner,
		Number:     number,
		DatabaseID: node.DatabaseID,
		Name:       node.Name,
		URL:        node.URL,
		Truncated:  node.Columns.PageInfo.HasNextPage,
		Columns:    make([]models.Column, 0, len(node.Columns.Nodes)),
	}

	for _, col := range node.Columns.Nodes {
		column := models.Column{
			DatabaseID: col.DatabaseID,
			Name:       col.Name,
			Cards:      make([]models.Card, 0, len(col.Cards.Edges)),
		}
		if col.Cards.PageInfo.HasNextPage {
			project.Truncated = true
		}

		for _, edge := range col.Cards.Edges {
			card := models.Card{DatabaseID: edge.Node.DatabaseID}
			if c := edge.Node.Content; c != nil {
				card.Content = models.CardContent{
					Kind:       models.ParseContentKind(c.Typename),
					DatabaseID: c.DatabaseID,
					Number:     c.Number,
				}
			}
			column.Cards = append(column.Cards, card)
		}

		project.Columns = append(project.Columns, column)
	}

	return project
}
