package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/verisalt/srp-auth-server/internal/models"
)

type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) StoreChallenge(ctx context.Context, challenge *models.LoginChallenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) PopChallenge(ctx context.Context, username string) (*models.LoginChallenge, error) {
	args := m.Called(ctx, username)
	challenge, _ := args.Get(0).(*models.LoginChallenge)
	return challenge, args.Error(1)
}

func (m *MockChallengeRepository) DeleteChallenge(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}
