package services

import (
	"context"

	"github.com/thomas-vilte/remove-from-project/internal/config"
	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
	"github.com/thomas-vilte/remove-from-project/internal/i18n"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
	"github.com/thomas-vilte/remove-from-project/internal/models"
	"github.com/thomas-vilte/remove-from-project/internal/vcs"
)

type CardRemovalService struct {
	client vcs.ProjectBoardClient
	trans  *i18n.Translations
}

type CardRemovalOption func(*CardRemovalService)

func WithBoardClient(client vcs.ProjectBoardClient) CardRemovalOption {
	return func(s *CardRemovalService) {
		s.client = client
	}
}

func WithTranslations(trans *i18n.Translations) CardRemovalOption {
	return func(s *CardRemovalService) {
		s.trans = trans
	}
}

func NewCardRemovalService(opts ...CardRemovalOption) *CardRemovalService {
	s := &CardRemovalService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RemoveCard deletes the card that points to the configured issue or pull
// request. At most one card is deleted. When no card matches the run still
// succeeds unless settings.FailIfNotFound is set.
func (s *CardRemovalService) RemoveCard(ctx context.Context, settings *config.Settings, progress func(models.ProgressEvent)) (models.RemovalResult, error) {
	if s.client == nil {
		return models.RemovalResult{}, domainErrors.NewAppError(domainErrors.TypeInternal, "project board client not configured", nil)
	}

	subject, err := s.client.GetSubject(ctx, settings.IssueOwner, settings.IssueRepository, settings.IssueNumber)
	if err != nil {
		return models.RemovalResult{}, err
	}

	logger.Info(ctx, s.message("run.subject_resolved", map[string]interface{}{
		"Kind":       s.message("kind."+subject.Kind.String(), nil),
		"DatabaseID": subject.DatabaseID,
	}))
	notify(progress, models.ProgressSubjectResolved, map[string]interface{}{
		"kind":        subject.Kind,
		"database_id": subject.DatabaseID,
	})

	project, cards, err := s.client.ListProjectCards(ctx, settings.ProjectOwner, settings.ProjectNumber)
	if err != nil {
		return models.RemovalResult{}, err
	}

	logger.Info(ctx, s.message("run.project", map[string]interface{}{"Name": project.Name}))
	if project.Truncated {
		logger.Warn(ctx, s.message("run.page_truncated", map[string]interface{}{"Name": project.Name}))
	}
	notify(progress, models.ProgressCardsFetched, map[string]interface{}{
		"project": project.Name,
		"cards":   len(cards),
	})

	result := models.RemovalResult{
		Subject: subject,
		Project: *project,
		Scanned: len(cards),
	}

	card, found := FindCard(cards, subject)
	if !found {
		logger.Debug(ctx, "no card matches the subject",
			"kind", subject.Kind.String(),
			"database_id", subject.DatabaseID,
			"scanned", len(cards))
		notify(progress, models.ProgressCardNotFound, map[string]interface{}{
			"scanned": len(cards),
		})

		if settings.FailIfNotFound {
			return result, domainErrors.ErrCardNotFound.
				WithContext("project", project.Name).
				WithContext("issue_number", subject.Number)
		}

		logger.Info(ctx, s.message("run.card_not_found", nil))
		return result, nil
	}

	logger.Info(ctx, s.message("run.removing_card", map[string]interface{}{"CardID": card.DatabaseID}))

	if err := s.client.DeleteCard(ctx, card.DatabaseID); err != nil {
		return result, err
	}

	result.Removed = true
	result.CardID = card.DatabaseID

	logger.Info(ctx, s.message("run.card_removed", nil))
	notify(progress, models.ProgressCardRemoved, map[string]interface{}{
		"card_id": card.DatabaseID,
	})

	return result, nil
}

// FindCard returns the first card, in the given order, whose content is the
// subject. Kind and database id must both match.
func FindCard(cards []models.Card, subject models.Subject) (models.Card, bool) {
	for _, card := range cards {
		if card.Matches(subject) {
			return card, true
		}
	}
	return models.Card{}, false
}

func (s *CardRemovalService) message(id string, data interface{}) string {
	if s.trans == nil {
		return id
	}
	return s.trans.GetMessage(id, 0, data)
}

func notify(progress func(models.ProgressEvent), eventType models.ProgressEventType, data map[string]interface{}) {
	if progress == nil {
		return
	}
	progress(models.ProgressEvent{Type: eventType, Data: data})
}
