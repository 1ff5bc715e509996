package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/remove-from-project/internal/config"
	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
	"github.com/thomas-vilte/remove-from-project/internal/i18n"
	"github.com/thomas-vilte/remove-from-project/internal/logger"
	"github.com/thomas-vilte/remove-from-project/internal/models"
)

func testSettings() *config.Settings {
	return &config.Settings{
		IssueNumber:     42,
		Token:           "ghp_test",
		ProjectNumber:   3,
		ProjectOwner:    "acme",
		IssueOwner:      "acme",
		IssueRepository: "rocket",
	}
}

func newTestService(t *testing.T, client *MockProjectBoardClient) (*CardRemovalService, context.Context, *bytes.Buffer) {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	l := slog.New(logger.NewActionsHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := logger.WithLogger(context.Background(), l)

	return NewCardRemovalService(WithBoardClient(client), WithTranslations(trans)), ctx, &buf
}

func issueCard(cardID, contentID int64) models.Card {
	return models.Card{DatabaseID: cardID, Content: models.CardContent{Kind: models.ContentKindIssue, DatabaseID: contentID}}
}

func prCard(cardID, contentID int64) models.Card {
	return models.Card{DatabaseID: cardID, Content: models.CardContent{Kind: models.ContentKindPullRequest, DatabaseID: contentID}}
}

func noteCard(cardID int64) models.Card {
	return models.Card{DatabaseID: cardID}
}

func TestCardRemovalService_RemoveCard_DeletesMatchingIssueCard(t *testing.T) {
	// Arrange
	mockClient := new(MockProjectBoardClient)
	service, ctx, out := newTestService(t, mockClient)

	subject := models.Subject{Owner: "acme", Repository: "rocket", Number: 42, Kind: models.ContentKindIssue, DatabaseID: 9001}
	project := &models.Project{Name: "Roadmap"}
	cards := []models.Card{noteCard(1), prCard(2, 9001), issueCard(3, 77), issueCard(4, 9001)}

	mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(subject, nil)
	mockClient.On("ListProjectCards", mock.Anything, "acme", 3).Return(project, cards, nil)
	mockClient.On("DeleteCard", mock.Anything, int64(4)).Return(nil)

	var events []models.ProgressEventType

	// Act
	result, err := service.RemoveCard(ctx, testSettings(), func(e models.ProgressEvent) {
		events = append(events, e.Type)
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Removed)
	assert.Equal(t, int64(4), result.CardID)
	assert.Equal(t, 4, result.Scanned)
	assert.Equal(t, "Roadmap", result.Project.Name)
	mockClient.AssertExpectations(t)
	mockClient.AssertNumberOfCalls(t, "DeleteCard", 1)

	assert.Equal(t, []models.ProgressEventType{
		models.ProgressSubjectResolved,
		models.ProgressCardsFetched,
		models.ProgressCardRemoved,
	}, events)

	assert.Equal(t, "Issue database ID: 9001\n"+
		"Project: Roadmap\n"+
		"Removing 4 from the project\n"+
		"🚀 Card removed from project 🚀\n", out.String())
}

func TestCardRemovalService_RemoveCard_KindMismatchDoesNotMatch(t *testing.T) {
	mockClient := new(MockProjectBoardClient)
	service, ctx, out := newTestService(t, mockClient)

	subject := models.Subject{Owner: "acme", Repository: "rocket", Number: 42, Kind: models.ContentKindPullRequest, DatabaseID: 5005}
	mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(subject, nil)
	mockClient.On("ListProjectCards", mock.Anything, "acme", 3).
		Return(&models.Project{Name: "Roadmap"}, []models.Card{issueCard(10, 5005)}, nil)

	result, err := service.RemoveCard(ctx, testSettings(), nil)

	require.NoError(t, err)
	assert.False(t, result.Removed)
	mockClient.AssertNotCalled(t, "DeleteCard", mock.Anything, mock.Anything)
	assert.Contains(t, out.String(), "Pull request database ID: 5005\n")
	assert.Contains(t, out.String(), "Card not found in project\n")
}

func TestCardRemovalService_RemoveCard_EmptyBoard(t *testing.T) {
	subject := models.Subject{Kind: models.ContentKindIssue, DatabaseID: 1}

	t.Run("succeeds when not asked to fail", func(t *testing.T) {
		mockClient := new(MockProjectBoardClient)
		service, ctx, _ := newTestService(t, mockClient)

		mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(subject, nil)
		mockClient.On("ListProjectCards", mock.Anything, "acme", 3).Return(&models.Project{Name: "Empty"}, []models.Card(nil), nil)

		var events []models.ProgressEventType
		result, err := service.RemoveCard(ctx, testSettings(), func(e models.ProgressEvent) {
			events = append(events, e.Type)
		})

		require.NoError(t, err)
		assert.False(t, result.Removed)
		assert.Zero(t, result.Scanned)
		assert.Contains(t, events, models.ProgressCardNotFound)
		mockClient.AssertNotCalled(t, "DeleteCard", mock.Anything, mock.Anything)
	})

	t.Run("fails with card not found", func(t *testing.T) {
		mockClient := new(MockProjectBoardClient)
		service, ctx, out := newTestService(t, mockClient)

		mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(subject, nil)
		mockClient.On("ListProjectCards", mock.Anything, "acme", 3).Return(&models.Project{Name: "Empty"}, []models.Card{}, nil)

		settings := testSettings()
		settings.FailIfNotFound = true

		_, err := service.RemoveCard(ctx, settings, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrCardNotFound)
		assert.Contains(t, err.Error(), "Card not found")
		assert.NotContains(t, out.String(), "Card not found in project")
		mockClient.AssertNotCalled(t, "DeleteCard", mock.Anything, mock.Anything)
	})
}

func TestCardRemovalService_RemoveCard_FirstMatchWins(t *testing.T) {
	mockClient := new(MockProjectBoardClient)
	service, ctx, _ := newTestService(t, mockClient)

	subject := models.Subject{Kind: models.ContentKindIssue, DatabaseID: 700}
	project := &models.Project{
		Name: "Roadmap",
		Columns: []models.Column{
			{Name: "To do", Cards: []models.Card{issueCard(1, 1), issueCard(2, 700)}},
			{Name: "Done", Cards: []models.Card{issueCard(3, 700)}},
		},
	}

	mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(subject, nil)
	mockClient.On("ListProjectCards", mock.Anything, "acme", 3).Return(project, project.Cards(), nil)
	mockClient.On("DeleteCard", mock.Anything, int64(2)).Return(nil)

	result, err := service.RemoveCard(ctx, testSettings(), nil)

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.CardID)
	mockClient.AssertNumberOfCalls(t, "DeleteCard", 1)
}

func TestCardRemovalService_RemoveCard_TruncatedBoardWarns(t *testing.T) {
	mockClient := new(MockProjectBoardClient)
	service, ctx, out := newTestService(t, mockClient)

	subject := models.Subject{Kind: models.ContentKindIssue, DatabaseID: 1}
	mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(subject, nil)
	mockClient.On("ListProjectCards", mock.Anything, "acme", 3).
		Return(&models.Project{Name: "Big", Truncated: true}, []models.Card{issueCard(8, 1)}, nil)
	mockClient.On("DeleteCard", mock.Anything, int64(8)).Return(nil)

	result, err := service.RemoveCard(ctx, testSettings(), nil)

	require.NoError(t, err)
	assert.True(t, result.Removed)
	assert.Contains(t, out.String(), "::warning::Project Big has more columns or cards")
}

func TestCardRemovalService_RemoveCard_PropagatesErrors(t *testing.T) {
	apiErr := errors.New("boom")

	t.Run("subject lookup", func(t *testing.T) {
		mockClient := new(MockProjectBoardClient)
		service, ctx, _ := newTestService(t, mockClient)

		mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(models.Subject{}, apiErr)

		_, err := service.RemoveCard(ctx, testSettings(), nil)

		assert.ErrorIs(t, err, apiErr)
		mockClient.AssertNotCalled(t, "ListProjectCards", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("card listing", func(t *testing.T) {
		mockClient := new(MockProjectBoardClient)
		service, ctx, _ := newTestService(t, mockClient)

		mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(models.Subject{Kind: models.ContentKindIssue, DatabaseID: 1}, nil)
		mockClient.On("ListProjectCards", mock.Anything, "acme", 3).Return(nil, nil, domainErrors.ErrGraphQL)

		_, err := service.RemoveCard(ctx, testSettings(), nil)

		assert.ErrorIs(t, err, domainErrors.ErrGraphQL)
		mockClient.AssertNotCalled(t, "DeleteCard", mock.Anything, mock.Anything)
	})

	t.Run("card deletion", func(t *testing.T) {
		mockClient := new(MockProjectBoardClient)
		service, ctx, out := newTestService(t, mockClient)

		mockClient.On("GetSubject", mock.Anything, "acme", "rocket", 42).Return(models.Subject{Kind: models.ContentKindIssue, DatabaseID: 1}, nil)
		mockClient.On("ListProjectCards", mock.Anything, "acme", 3).Return(&models.Project{Name: "Roadmap"}, []models.Card{issueCard(5, 1)}, nil)
		mockClient.On("DeleteCard", mock.Anything, int64(5)).Return(apiErr)

		result, err := service.RemoveCard(ctx, testSettings(), nil)

		assert.ErrorIs(t, err, apiErr)
		assert.False(t, result.Removed)
		assert.NotContains(t, out.String(), "Card removed")
	})
}

func TestCardRemovalService_RemoveCard_NoClient(t *testing.T) {
	service := NewCardRemovalService()

	_, err := service.RemoveCard(context.Background(), testSettings(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INTERNAL")
}

func TestFindCard(t *testing.T) {
	subject := models.Subject{Kind: models.ContentKindIssue, DatabaseID: 7}

	tests := []struct {
		name      string
		cards     []models.Card
		wantFound bool
		wantID    int64
	}{
		{name: "empty list", cards: nil},
		{name: "note cards never match", cards: []models.Card{noteCard(1), {DatabaseID: 2, Content: models.CardContent{DatabaseID: 7}}}},
		{name: "same id with other kind", cards: []models.Card{prCard(1, 7)}},
		{name: "single match", cards: []models.Card{issueCard(1, 3), issueCard(2, 7)}, wantFound: true, wantID: 2},
		{name: "first of several", cards: []models.Card{issueCard(5, 7), issueCard(6, 7)}, wantFound: true, wantID: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, found := FindCard(tt.cards, subject)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantID, card.DatabaseID)
		})
	}
}
