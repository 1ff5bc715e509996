package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/thomas-vilte/remove-from-project/internal/actions"
	"github.com/thomas-vilte/remove-from-project/internal/commands/remove"
	cfg "github.com/thomas-vilte/remove-from-project/internal/config"
	"github.com/thomas-vilte/remove-from-project/internal/git"
	"github.com/thomas-vilte/remove-from-project/internal/i18n"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
	"github.com/thomas-vilte/remove-from-project/internal/ui"
	"github.com/thomas-vilte/remove-from-project/internal/version"
)

func main() {
	ctx := context.Background()
	inActions := actions.InActions(os.Getenv)
	logger.Initialize(os.Stdout, false, inActions)

	if !inActions {
		if err := cfg.LoadEnvFile(cfg.DefaultEnvFile); err != nil {
			logger.Warn(ctx, "ignoring env file", "error", err)
		}
	}

	translations, err := i18n.NewTranslations(cfg.GetLocaleConfig(os.Getenv("INPUT_LANGUAGE")), "")
	if err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	removeCmd := remove.NewRemoveCommand(remove.DefaultServiceProvider,
		remove.WithRepoInfoProvider(git.NewGitService(".")),
		remove.WithInteractive(ui.IsInteractive(os.Stderr)),
	)

	app := removeCmd.CreateCommand(translations)
	app.Version = version.Version

	err = app.Run(ctx, os.Args)
	if code := report(ctx, os.Stderr, err, inActions, translations); code != 0 {
		os.Exit(code)
	}
}

// report writes a failed run once: as an error workflow command inside
// Actions, as a friendly message on w everywhere else.
func report(ctx context.Context, w io.Writer, err error, inActions bool, t *i18n.Translations) int {
	result := actions.Conclude(err)
	if !result.Failed {
		return 0
	}

	if inActions {
		logger.Error(ctx, result.Message, nil)
	} else {
		ui.HandleAppError(w, err, t)
	}
	return result.ExitCode()
}
