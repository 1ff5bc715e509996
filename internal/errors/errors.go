package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeInput    ErrorType = "INPUT"
	TypeVCS      ErrorType = "VCS"
	TypeProject  ErrorType = "PROJECT"
	TypeGit      ErrorType = "GIT"
	TypeInternal ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if detail, ok := e.Context["detail"].(string); ok && detail != "" {
			msg += fmt.Sprintf(": %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches errors derived from the same sentinel, no matter which context,
// suggestion or underlying error was attached afterwards.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Input errors
var (
	ErrIssueNumberNotNumber = NewAppError(TypeInput, "issue-number must be a number", nil)

	ErrTokenMissing = NewAppError(TypeInput, "Input required and not supplied: token", nil).
			WithSuggestion("Pass a token with access to the project, e.g. token: ${{ secrets.GITHUB_TOKEN }}")

	ErrProjectNumberMissing = NewAppError(TypeInput, "Input required and not supplied: project-number", nil)

	ErrProjectNumberNotNumber = NewAppError(TypeInput, "project-number must be a number", nil)

	ErrProjectOwnerMissing = NewAppError(TypeInput, "project-owner must be specified, unable to determine from context", nil)

	ErrIssueRepoMissing = NewAppError(TypeInput, "issue-owner and issue-repository must be set, unable to determine from context", nil)

	ErrInvalidBoolean = NewAppError(TypeInput, "Input does not meet YAML 1.2 \"Core Schema\" specification", nil).
				WithSuggestion("Support boolean input list: true | True | TRUE | false | False | FALSE")

	ErrInvalidTimeout = NewAppError(TypeInput, "timeout must be a duration such as 30s or 2m", nil)

	ErrConfigFile = NewAppError(TypeInput, "failed to read config file", nil)
)

// Git errors
var (
	ErrNotInGitRepo = NewAppError(TypeGit, "Not in a git repository", nil)

	ErrGetRepoURL = NewAppError(TypeGit, "Failed to get repository URL", nil).
			WithSuggestion("Add a remote: git remote add origin <url>")

	ErrExtractRepoInfo = NewAppError(TypeGit, "Failed to extract repository info", nil)
)

// GitHub/VCS specific errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Classic projects need a token with 'repo' and 'read:org' scopes")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a personal access token for higher limits")

	ErrResourceNotFound = NewAppError(TypeVCS, "resource not found", nil).
				WithSuggestion("Check the owner, repository and number, and that the token can see them")

	ErrGraphQL = NewAppError(TypeVCS, "GraphQL query returned errors", nil)

	ErrInvalidAPIURL = NewAppError(TypeVCS, "invalid GitHub API URL", nil)
)

// Project errors
var (
	ErrProjectNotFound = NewAppError(TypeProject, "project not found", nil).
				WithSuggestion("Only classic organization projects are supported, check project-owner and project-number")

	ErrCardNotFound = NewAppError(TypeProject, "Card not found", nil)
)
