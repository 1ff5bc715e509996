package vcs

import (
	"context"

	"github.com/thomas-vilte/remove-from-project/internal/models"
)

// ProjectBoardClient defines the remote calls needed to remove a card from a
// classic project board.
type ProjectBoardClient interface {
	// GetSubject looks up an issue by number. When the issue is a pull request
	// the pull request is fetched too and its id is used instead.
	GetSubject(ctx context.Context, owner, repo string, number int) (models.Subject, error)
	// ListProjectCards fetches the project with its columns and cards in one
	// query and returns the cards in column-major order.
	ListProjectCards(ctx context.Context, owner string, projectNumber int) (*models.Project, []models.Card, error)
	// DeleteCard deletes a card by its own id.
	DeleteCard(ctx context.Context, cardID int64) error
}
