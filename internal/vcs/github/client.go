package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/thomas-vilte/remove-from-project/internal/config"
	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
	"github.com/thomas-vilte/remove-from-project/internal/models"
	"github.com/thomas-vilte/remove-from-project/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.ProjectBoardClient = (*GitHubClient)(nil)

type IssuesService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
}

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
}

// APIRequester sends requests to endpoints go-github has no typed method for:
// the GraphQL endpoint and the classic project card endpoints.
type APIRequester interface {
	NewRequest(method, urlStr string, body interface{}, opts ...github.RequestOption) (*http.Request, error)
	Do(ctx context.Context, req *http.Request, v interface{}) (*github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	prService     PullRequestsService
	api           APIRequester
	graphqlURL    string
}

// NewGitHubClient builds a client authenticated with token. An empty apiURL
// or graphqlURL selects github.com.
func NewGitHubClient(token, apiURL, graphqlURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		base, err := url.Parse(apiURL)
		if err != nil {
			return nil, domainErrors.ErrInvalidAPIURL.WithError(err).WithContext("url", apiURL)
		}
		client.BaseURL = base
	}

	if graphqlURL == "" {
		graphqlURL = config.DefaultGraphQLURL
	}
	if _, err := url.ParseRequestURI(graphqlURL); err != nil {
		return nil, domainErrors.ErrInvalidAPIURL.WithError(err).WithContext("url", graphqlURL)
	}

	return NewGitHubClientWithServices(client.Issues, client.PullRequests, client, graphqlURL), nil
}

func NewGitHubClientWithServices(
	issuesService IssuesService,
	prService PullRequestsService,
	api APIRequester,
	graphqlURL string,
) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		prService:     prService,
		api:           api,
		graphqlURL:    graphqlURL,
	}
}

func (ghc *GitHubClient) GetSubject(ctx context.Context, owner, repo string, number int) (models.Subject, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github issue",
		"owner", owner,
		"repo", repo,
		"issue_number", number)

	issue, resp, err := ghc.issuesService.Get(ctx, owner, repo, number)
	if err != nil {
		log.Error("failed to fetch github issue",
			"error", err,
			"owner", owner,
			"repo", repo,
			"issue_number", number)
		return models.Subject{}, classifyError(resp, err, "get issue").
			WithContext("issue_number", number).
			WithContext("repo", fmt.Sprintf("%s/%s", owner, repo))
	}

	subject := models.Subject{
		Owner:      owner,
		Repository: repo,
		Number:     number,
		Kind:       models.ContentKindIssue,
		DatabaseID: issue.GetID(),
	}

	if !issue.IsPullRequest() {
		return subject, nil
	}

	log.Debug("issue is a pull request, fetching it",
		"issue_number", number)

	pr, resp, err := ghc.prService.Get(ctx, owner, repo, number)
	if err != nil {
		log.Error("failed to fetch github PR",
			"error", err,
			"owner", owner,
			"repo", repo,
			"pr_number", number)
		return models.Subject{}, classifyError(resp, err, "get pull request").
			WithContext("pr_number", number).
			WithContext("repo", fmt.Sprintf("%s/%s", owner, repo))
	}

	subject.Kind = models.ContentKindPullRequest
	subject.DatabaseID = pr.GetID()
	return subject, nil
}

func (ghc *GitHubClient) DeleteCard(ctx context.Context, cardID int64) error {
	log := logger.FromContext(ctx)

	req, err := ghc.api.NewRequest(http.MethodDelete, fmt.Sprintf("projects/columns/cards/%d", cardID), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request for card %d: %w", cardID, err)
	}

	log.Debug("deleting project card", "card_id", cardID)

	resp, err := ghc.api.Do(ctx, req, nil)
	if err != nil {
		log.Error("failed to delete project card",
			"error", err,
			"card_id", cardID)
		return classifyError(resp, err, "delete project card").
			WithContext("card_id", cardID)
	}

	return nil
}

// classifyError maps an API failure to a typed error. The API error stays
// wrapped so its message and type are still available to callers.
func classifyError(resp *github.Response, err error, operation string) *domainErrors.AppError {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		appErr := domainErrors.ErrGitHubRateLimit.WithError(err).WithContext("operation", operation)
		if resp != nil {
			appErr = appErr.WithContext("retry_after", resp.Header.Get("Retry-After"))
		}
		return appErr
	}

	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err).WithContext("operation", operation)
		case http.StatusForbidden:
			return domainErrors.ErrGitHubInsufficientPerms.WithError(err).WithContext("operation", operation)
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.WithError(err).
				WithContext("operation", operation).
				WithContext("retry_after", resp.Header.Get("Retry-After"))
		case http.StatusNotFound:
			return domainErrors.ErrResourceNotFound.WithError(err).WithContext("operation", operation)
		}
	}

	return domainErrors.NewAppError(domainErrors.TypeVCS, "failed to "+operation, err)
}
