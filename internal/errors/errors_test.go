package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrResourceNotFound.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeVCS {
		t.Errorf("Expected type %s, got %s", TypeVCS, appErr.Type)
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrProjectNotFound.WithContext("owner", "acme").WithContext("detail", "organization is null")

	if appErr.Context["owner"] != "acme" {
		t.Errorf("Expected owner context 'acme', got %v", appErr.Context["owner"])
	}

	if appErr.Context["detail"] != "organization is null" {
		t.Errorf("Expected detail context, got %v", appErr.Context["detail"])
	}

	if ErrProjectNotFound.Context != nil {
		t.Error("Original error should not have context")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name:     "Input error keeps the exact message",
			err:      ErrIssueNumberNotNumber,
			contains: []string{"INPUT", "issue-number must be a number"},
		},
		{
			name:     "Error with underlying error",
			err:      ErrGitHubTokenInvalid.WithError(errors.New("401 Bad credentials")),
			contains: []string{"VCS", "GitHub token is invalid or expired", "401 Bad credentials"},
		},
		{
			name: "Error with detail context",
			err: ErrGraphQL.WithError(errors.New("query failed")).
				WithContext("detail", "Could not resolve to an Organization"),
			contains: []string{"VCS", "query failed", "Could not resolve to an Organization"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()
			for _, substr := range tt.contains {
				if !contains(errMsg, substr) {
					t.Errorf("Expected error message to contain %q, got: %s", substr, errMsg)
				}
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	appErr := ErrResourceNotFound.WithError(baseErr)

	unwrapped := appErr.Unwrap()
	if unwrapped != baseErr {
		t.Errorf("Expected unwrapped error to be %v, got %v", baseErr, unwrapped)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("errors.Is should work with AppError")
	}
}

func TestAppError_Is(t *testing.T) {
	decorated := ErrCardNotFound.WithContext("issue_number", 12).WithSuggestion("none")
	wrapped := fmt.Errorf("run failed: %w", decorated)

	if !errors.Is(wrapped, ErrCardNotFound) {
		t.Error("decorated sentinel should still match with errors.Is")
	}

	if errors.Is(wrapped, ErrProjectNotFound) {
		t.Error("different sentinels of the same type must not match")
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && (s[:len(substr)] == substr || contains(s[1:], substr))))
}
