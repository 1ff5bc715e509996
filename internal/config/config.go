package config

import (
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
)

const (
	DefaultAPIURL     = "https://api.github.com/"
	DefaultGraphQLURL = "https://api.github.com/graphql"
)

type (
	// Inputs holds the raw values supplied by the workflow, the command line or
	// the defaults file, before any validation.
	Inputs struct {
		IssueNumber     string
		Token           string
		ProjectNumber   string
		ProjectOwner    string
		IssueOwner      string
		IssueRepository string
		FailIfNotFound  string
		APIURL          string
		GraphQLURL      string
		Language        string
		Timeout         string
	}

	// RepositoryContext is the repository that triggered the run.
	RepositoryContext struct {
		Owner string
		Name  string
	}

	// Settings are validated inputs, ready to drive a run.
	Settings struct {
		IssueNumber     int
		Token           string
		ProjectNumber   int
		ProjectOwner    string
		IssueOwner      string
		IssueRepository string
		FailIfNotFound  bool
		APIURL          string
		GraphQLURL      string
		Language        string
		Timeout         time.Duration
	}
)

// Resolve validates the inputs and fills the optional owner and repository
// values from repoCtx. repoCtx may be nil when no triggering repository is
// known. No network call happens here.
func Resolve(in Inputs, repoCtx *RepositoryContext) (*Settings, error) {
	issueNumber, err := parsePositiveInt(in.IssueNumber)
	if err != nil {
		return nil, domainErrors.ErrIssueNumberNotNumber.
			WithContext("input", "issue-number").
			WithContext("value", in.IssueNumber)
	}

	token := strings.TrimSpace(in.Token)
	if token == "" {
		return nil, domainErrors.ErrTokenMissing
	}

	if strings.TrimSpace(in.ProjectNumber) == "" {
		return nil, domainErrors.ErrProjectNumberMissing
	}
	projectNumber, err := parsePositiveInt(in.ProjectNumber)
	if err != nil {
		return nil, domainErrors.ErrProjectNumberNotNumber.
			WithContext("input", "project-number").
			WithContext("value", in.ProjectNumber)
	}

	var ctxOwner, ctxName string
	if repoCtx != nil {
		ctxOwner, ctxName = repoCtx.Owner, repoCtx.Name
	}

	projectOwner := firstNonEmpty(in.ProjectOwner, ctxOwner)
	if projectOwner == "" {
		return nil, domainErrors.ErrProjectOwnerMissing
	}

	issueOwner := firstNonEmpty(in.IssueOwner, ctxOwner)
	issueRepository := firstNonEmpty(in.IssueRepository, ctxName)
	if issueOwner == "" || issueRepository == "" {
		return nil, domainErrors.ErrIssueRepoMissing
	}

	failIfNotFound, err := ParseBool(in.FailIfNotFound, false)
	if err != nil {
		return nil, domainErrors.ErrInvalidBoolean.
			WithContext("input", "fail-if-not-found").
			WithContext("detail", "fail-if-not-found")
	}

	var timeout time.Duration
	if t := strings.TrimSpace(in.Timeout); t != "" {
		timeout, err = time.ParseDuration(t)
		if err != nil || timeout < 0 {
			return nil, domainErrors.ErrInvalidTimeout.WithContext("value", in.Timeout)
		}
	}

	return &Settings{
		IssueNumber:     issueNumber,
		Token:           token,
		ProjectNumber:   projectNumber,
		ProjectOwner:    projectOwner,
		IssueOwner:      issueOwner,
		IssueRepository: issueRepository,
		FailIfNotFound:  failIfNotFound,
		APIURL:          firstNonEmpty(in.APIURL, DefaultAPIURL),
		GraphQLURL:      firstNonEmpty(in.GraphQLURL, DefaultGraphQLURL),
		Language:        GetLocaleConfig(strings.TrimSpace(in.Language)),
		Timeout:         timeout,
	}, nil
}

// ParseBool accepts the booleans of the YAML 1.2 core schema, which is what
// workflow inputs use. An empty value yields def.
func ParseBool(value string, def bool) (bool, error) {
	switch strings.TrimSpace(value) {
	case "":
		return def, nil
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	default:
		return false, domainErrors.ErrInvalidBoolean.WithContext("value", value)
	}
}

func parsePositiveInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
