package git

import (
	"context"
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
	"github.com/thomas-vilte/remove-from-project/internal/regex"
)

const defaultRemote = "origin"

// GitService reads repository metadata from a local checkout.
type GitService struct {
	dir    string
	remote string
}

// NewGitService works on the repository containing dir. Parent directories are
// searched for the .git folder.
func NewGitService(dir string) *GitService {
	return &GitService{
		dir:    dir,
		remote: defaultRemote,
	}
}

// GetRepoInfo returns owner, repository name and host of the origin remote.
func (s *GitService) GetRepoInfo(ctx context.Context) (string, string, string, error) {
	log := logger.FromContext(ctx)

	repo, err := git.PlainOpenWithOptions(s.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", "", "", domainErrors.ErrNotInGitRepo.WithContext("dir", s.dir)
		}
		return "", "", "", domainErrors.ErrNotInGitRepo.WithError(err)
	}

	remote, err := repo.Remote(s.remote)
	if err != nil {
		return "", "", "", domainErrors.ErrGetRepoURL.WithError(err).WithContext("remote", s.remote)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", "", domainErrors.ErrGetRepoURL.WithContext("remote", s.remote)
	}

	log.Debug("found git remote", "remote", s.remote, "url", urls[0])
	return parseRepoURL(urls[0])
}

func parseRepoURL(url string) (string, string, string, error) {
	url = strings.TrimSpace(url)

	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		return matches[2], matches[3], matches[1], nil
	}

	return "", "", "", domainErrors.ErrExtractRepoInfo.WithContext("detail", url)
}
