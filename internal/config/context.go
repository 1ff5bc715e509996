package config

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
)

// RepoInfoProvider reads owner and repository from a local checkout.
type RepoInfoProvider interface {
	GetRepoInfo(ctx context.Context) (owner, repo, host string, err error)
}

type eventPayload struct {
	Repository *github.Repository `json:"repository"`
}

// DiscoverRepositoryContext finds the repository that triggered the run. It
// tries the workflow event payload, then GITHUB_REPOSITORY, then the origin
// remote of the local checkout. It returns nil when none of them is usable.
func DiscoverRepositoryContext(ctx context.Context, getenv func(string) string, local RepoInfoProvider) *RepositoryContext {
	log := logger.FromContext(ctx)

	if path := getenv("GITHUB_EVENT_PATH"); path != "" {
		repoCtx, err := readEventPayload(path)
		if err != nil {
			log.Debug("could not read event payload", "path", path, "error", err)
		} else if repoCtx != nil {
			log.Debug("repository taken from event payload", "owner", repoCtx.Owner, "repo", repoCtx.Name)
			return repoCtx
		}
	}

	if full := getenv("GITHUB_REPOSITORY"); full != "" {
		owner, name, ok := strings.Cut(full, "/")
		if ok && owner != "" && name != "" {
			log.Debug("repository taken from GITHUB_REPOSITORY", "owner", owner, "repo", name)
			return &RepositoryContext{Owner: owner, Name: name}
		}
	}

	if local != nil {
		owner, repo, host, err := local.GetRepoInfo(ctx)
		if err != nil {
			log.Debug("no repository found in working directory", "error", err)
			return nil
		}
		log.Debug("repository taken from origin remote", "owner", owner, "repo", repo, "host", host)
		return &RepositoryContext{Owner: owner, Name: repo}
	}

	return nil
}

func readEventPayload(path string) (*RepositoryContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	if payload.Repository == nil {
		return nil, nil
	}
	return &RepositoryContext{
		Owner: payload.Repository.GetOwner().GetLogin(),
		Name:  payload.Repository.GetName(),
	}, nil
}
