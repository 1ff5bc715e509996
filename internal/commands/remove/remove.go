package remove

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/thomas-vilte/remove-from-project/internal/actions"
	"github.com/thomas-vilte/remove-from-project/internal/config"
	"github.com/thomas-vilte/remove-from-project/internal/i18n"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
	"github.com/thomas-vilte/remove-from-project/internal/models"
	"github.com/thomas-vilte/remove-from-project/internal/services"
	"github.com/thomas-vilte/remove-from-project/internal/ui"
	"github.com/thomas-vilte/remove-from-project/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

// RemovalService is a minimal interface for testing purposes
type RemovalService interface {
	RemoveCard(ctx context.Context, settings *config.Settings, progress func(models.ProgressEvent)) (models.RemovalResult, error)
}

// ServiceProvider builds the service once the settings are known.
type ServiceProvider func(ctx context.Context, settings *config.Settings, t *i18n.Translations) (RemovalService, error)

// DefaultServiceProvider talks to the GitHub API described by the settings.
func DefaultServiceProvider(_ context.Context, settings *config.Settings, t *i18n.Translations) (RemovalService, error) {
	client, err := github.NewGitHubClient(settings.Token, settings.APIURL, settings.GraphQLURL)
	if err != nil {
		return nil, err
	}
	return services.NewCardRemovalService(
		services.WithBoardClient(client),
		services.WithTranslations(t),
	), nil
}

type RemoveCommand struct {
	provider    ServiceProvider
	out         io.Writer
	errOut      io.Writer
	getenv      func(string) string
	repoInfo    config.RepoInfoProvider
	interactive bool
}

type Option func(*RemoveCommand)

func WithOutput(w io.Writer) Option {
	return func(c *RemoveCommand) {
		c.out = w
	}
}

// WithErrorOutput sets where the spinner and the end-of-run summary go.
func WithErrorOutput(w io.Writer) Option {
	return func(c *RemoveCommand) {
		c.errOut = w
	}
}

func WithGetenv(getenv func(string) string) Option {
	return func(c *RemoveCommand) {
		c.getenv = getenv
	}
}

func WithRepoInfoProvider(p config.RepoInfoProvider) Option {
	return func(c *RemoveCommand) {
		c.repoInfo = p
	}
}

// WithInteractive enables the progress spinner outside of workflow runs.
func WithInteractive(interactive bool) Option {
	return func(c *RemoveCommand) {
		c.interactive = interactive
	}
}

func NewRemoveCommand(provider ServiceProvider, opts ...Option) *RemoveCommand {
	c := &RemoveCommand{
		provider: provider,
		out:      os.Stdout,
		errOut:   os.Stderr,
		getenv:   os.Getenv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RemoveCommand) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:        "remove-from-project",
		Usage:       t.GetMessage("app.usage", 0, nil),
		Description: t.GetMessage("app.about", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "issue-number",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("flags.issue_number", 0, nil),
				Sources: cli.EnvVars("INPUT_ISSUE-NUMBER"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   t.GetMessage("flags.token", 0, nil),
				Sources: cli.EnvVars("INPUT_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "project-number",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("flags.project_number", 0, nil),
				Sources: cli.EnvVars("INPUT_PROJECT-NUMBER"),
			},
			&cli.StringFlag{
				Name:    "project-owner",
				Usage:   t.GetMessage("flags.project_owner", 0, nil),
				Sources: cli.EnvVars("INPUT_PROJECT-OWNER"),
			},
			&cli.StringFlag{
				Name:    "issue-owner",
				Usage:   t.GetMessage("flags.issue_owner", 0, nil),
				Sources: cli.EnvVars("INPUT_ISSUE-OWNER"),
			},
			&cli.StringFlag{
				Name:    "issue-repository",
				Usage:   t.GetMessage("flags.issue_repository", 0, nil),
				Sources: cli.EnvVars("INPUT_ISSUE-REPOSITORY"),
			},
			&cli.StringFlag{
				Name:    "fail-if-not-found",
				Usage:   t.GetMessage("flags.fail_if_not_found", 0, nil),
				Sources: cli.EnvVars("INPUT_FAIL-IF-NOT-FOUND"),
			},
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   t.GetMessage("flags.api_url", 0, nil),
				Sources: cli.EnvVars("INPUT_API-URL", "GITHUB_API_URL"),
			},
			&cli.StringFlag{
				Name:    "graphql-url",
				Usage:   t.GetMessage("flags.graphql_url", 0, nil),
				Sources: cli.EnvVars("INPUT_GRAPHQL-URL", "GITHUB_GRAPHQL_URL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   t.GetMessage("flags.config", 0, nil),
				Sources: cli.EnvVars("INPUT_CONFIG", "REMOVE_FROM_PROJECT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "language",
				Usage:   t.GetMessage("flags.language", 0, nil),
				Sources: cli.EnvVars("INPUT_LANGUAGE"),
			},
			&cli.StringFlag{
				Name:    "timeout",
				Usage:   t.GetMessage("flags.timeout", 0, nil),
				Sources: cli.EnvVars("INPUT_TIMEOUT"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   t.GetMessage("flags.debug", 0, nil),
				Sources: cli.EnvVars("RUNNER_DEBUG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.run(ctx, cmd, t)
		},
	}
}

func (c *RemoveCommand) run(ctx context.Context, cmd *cli.Command, t *i18n.Translations) error {
	start := time.Now()
	inActions := actions.InActions(c.getenv)
	ctx = logger.WithLogger(ctx, logger.Initialize(c.out, cmd.Bool("debug"), inActions))

	in := config.Inputs{
		IssueNumber:     cmd.String("issue-number"),
		Token:           cmd.String("token"),
		ProjectNumber:   cmd.String("project-number"),
		ProjectOwner:    cmd.String("project-owner"),
		IssueOwner:      cmd.String("issue-owner"),
		IssueRepository: cmd.String("issue-repository"),
		FailIfNotFound:  cmd.String("fail-if-not-found"),
		APIURL:          cmd.String("api-url"),
		GraphQLURL:      cmd.String("graphql-url"),
		Language:        cmd.String("language"),
		Timeout:         cmd.String("timeout"),
	}

	if path := cmd.String("config"); path != "" {
		fc, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		fc.ApplyTo(&in)
		logger.Debug(ctx, "defaults file applied", "path", path)
	}

	repoCtx := config.DiscoverRepositoryContext(ctx, c.getenv, c.repoInfo)

	settings, err := config.Resolve(in, repoCtx)
	if err != nil {
		return err
	}

	if err := t.SetLanguage(settings.Language); err != nil {
		logger.Debug(ctx, "keeping current language", "language", settings.Language, "error", err)
	}

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	logger.Debug(ctx, "inputs resolved",
		"issue_owner", settings.IssueOwner,
		"issue_repository", settings.IssueRepository,
		"issue_number", settings.IssueNumber,
		"project_owner", settings.ProjectOwner,
		"project_number", settings.ProjectNumber,
		"fail_if_not_found", settings.FailIfNotFound)

	service, err := c.provider(ctx, settings, t)
	if err != nil {
		return err
	}

	var spinner *ui.SmartSpinner
	if c.interactive && !inActions {
		spinner = ui.NewSpinner().
			WithMessage(t.GetMessage("ui.resolving_subject", 0, map[string]interface{}{
				"Number":     settings.IssueNumber,
				"Owner":      settings.IssueOwner,
				"Repository": settings.IssueRepository,
			})).
			WithWriter(c.errOut).
			Build()
		spinner.Start()
	}

	result, err := service.RemoveCard(ctx, settings, func(event models.ProgressEvent) {
		switch event.Type {
		case models.ProgressSubjectResolved:
			spinner.UpdateMessage(t.GetMessage("ui.fetching_cards", 0, map[string]interface{}{
				"Number": settings.ProjectNumber,
				"Owner":  settings.ProjectOwner,
			}))
		case models.ProgressCardsFetched:
			spinner.UpdateMessage(t.GetMessage("ui.matching_card", 0, nil))
		}
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	logger.Debug(ctx, "run finished",
		"kind", result.Subject.Kind.String(),
		"database_id", result.Subject.DatabaseID,
		"removed", result.Removed,
		"card_id", result.CardID,
		"scanned", result.Scanned,
		"truncated", result.Project.Truncated,
		"duration_ms", time.Since(start).Milliseconds())

	if c.interactive && !inActions {
		c.printSummary(result, t)
	}
	return nil
}

func (c *RemoveCommand) printSummary(result models.RemovalResult, t *i18n.Translations) {
	project := result.Project.Name
	ui.PrintInfo(c.errOut, t.GetMessage("ui.summary_scanned", 0, map[string]interface{}{
		"Count":   result.Scanned,
		"Project": project,
	}))
	if result.Project.Truncated {
		ui.PrintWarning(c.errOut, t.GetMessage("ui.summary_truncated", 0, map[string]interface{}{
			"Project": project,
		}))
	}

	if result.Removed {
		ui.PrintSuccess(c.errOut, t.GetMessage("ui.summary_removed", 0, map[string]interface{}{
			"CardID":  result.CardID,
			"Project": project,
		}))
		return
	}
	ui.PrintWarning(c.errOut, t.GetMessage("ui.summary_not_found", 0, map[string]interface{}{
		"Number":  result.Subject.Number,
		"Project": project,
	}))
}
