package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/remove-from-project/internal/models"
)

type MockProjectBoardClient struct {
	mock.Mock
}

func (m *MockProjectBoardClient) GetSubject(ctx context.Context, owner, repo string, number int) (models.Subject, error) {
	args := m.Called(ctx, owner, repo, number)
	return args.Get(0).(models.Subject), args.Error(1)
}

func (m *MockProjectBoardClient) ListProjectCards(ctx context.Context, owner string, projectNumber int) (*models.Project, []models.Card, error) {
	args := m.Called(ctx, owner, projectNumber)
	project, _ := args.Get(0).(*models.Project)
	cards, _ := args.Get(1).([]models.Card)
	return project, cards, args.Error(2)
}

func (m *MockProjectBoardClient) DeleteCard(ctx context.Context, cardID int64) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}
