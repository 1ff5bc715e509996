package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
	"github.com/thomas-vilte/remove-from-project/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SmartSpinner wraps a terminal spinner. A nil *SmartSpinner is valid and
// does nothing, which is what non-interactive runs get.
type SmartSpinner struct {
	spinner *spinner.Spinner
}

// SpinnerBuilder allows building spinners with flexible configuration
type SpinnerBuilder struct {
	message string
	charset int
	color   string
	speed   time.Duration
	writer  io.Writer
}

// NewSpinner creates a new spinner builder
func NewSpinner() *SpinnerBuilder {
	return &SpinnerBuilder{
		charset: 14,
		color:   "cyan",
		speed:   100 * time.Millisecond,
		writer:  os.Stderr,
	}
}

// WithMessage sets the spinner message
func (b *SpinnerBuilder) WithMessage(msg string) *SpinnerBuilder {
	b.message = msg
	return b
}

func (b *SpinnerBuilder) WithWriter(w io.Writer) *SpinnerBuilder {
	b.writer = w
	return b
}

// Build constructs the SmartSpinner with the specified configuration. A
// writer that is not a file never animates.
func (b *SpinnerBuilder) Build() *SmartSpinner {
	opts := []spinner.Option{
		spinner.WithColor(b.color),
		spinner.WithSuffix(" " + b.message),
	}
	f, isFile := b.writer.(*os.File)
	if isFile {
		opts = append(opts, spinner.WithWriterFile(f))
	} else {
		opts = append(opts, spinner.WithWriter(b.writer))
	}

	s := spinner.New(spinner.CharSets[b.charset], b.speed, opts...)
	if !isFile {
		s.Disable()
	}
	return &SmartSpinner{spinner: s}
}

func (s *SmartSpinner) Start() {
	if s == nil {
		return
	}
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	if s == nil {
		return
	}
	s.spinner.Stop()
}

func (s *SmartSpinner) UpdateMessage(msg string) {
	if s == nil {
		return
	}
	s.spinner.Lock()
	s.spinner.Suffix = " " + msg
	s.spinner.Unlock()
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Success.Sprint("✅"), Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Warning.Sprint("⚠️"), Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Info.Sprint("ℹ️"), msg)
}

// HandleAppError prints an error in a friendly way. Application errors are
// shown with their details and suggestion. If translations is nil, English
// defaults are used.
func HandleAppError(w io.Writer, err error, translations *i18n.Translations) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	suggestionColor := color.New(color.FgCyan)

	_, _ = fmt.Fprintln(w)
	_, _ = Error.Fprintf(w, "❌ %s: %s\n", appErr.Type, appErr.Message)

	if appErr.Err != nil {
		_, _ = Dim.Fprintf(w, "   Details: %v\n", appErr.Err)
	}

	if appErr.Suggestion != "" {
		_, _ = fmt.Fprintln(w)
		tryPrefix := "💡 Try: "
		if translations != nil {
			tryPrefix = translations.GetMessage("ui.try_suggestion", 0, nil)
		}
		_, _ = suggestionColor.Fprint(w, tryPrefix)
		lines := strings.Split(appErr.Suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	_, _ = fmt.Fprintln(w)
}
