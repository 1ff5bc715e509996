package actions

import (
	"errors"
	"fmt"

	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
)

const FailurePrefix = "❌ Action failed with error: "

// Result is the outcome of a whole run. A failed run carries the single
// message reported to the workflow.
type Result struct {
	Failed  bool
	Message string
}

// Conclude turns the error returned by a run into its Result. Application
// errors are reported by their message so input and "Card not found"
// failures read exactly like their sentinel text.
func Conclude(err error) Result {
	if err == nil {
		return Result{}
	}
	return Result{
		Failed:  true,
		Message: FailurePrefix + describe(err),
	}
}

func (r Result) ExitCode() int {
	if r.Failed {
		return 1
	}
	return 0
}

// InActions reports whether the process runs inside a GitHub Actions job.
func InActions(getenv func(string) string) bool {
	return getenv("GITHUB_ACTIONS") == "true"
}

func describe(err error) string {
	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}

	msg := appErr.Message
	if appErr.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, appErr.Err)
	}
	if detail, ok := appErr.Context["detail"].(string); ok && detail != "" {
		msg += ": " + detail
	}
	return msg
}
