package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verisalt/srp-auth-server/internal/mocks"
	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
)

func TestSessionService_GetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(mockRepo)

		want := &models.Session{
			SessionID: "sess-1",
			Username:  "alice",
			Expiry:    time.Now().UTC().Add(time.Hour),
		}
		mockRepo.On("GetSession", ctx, "sess-1").Return(want, nil).Once()

		got, err := svc.GetSession(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(mockRepo)

		mockRepo.On("GetSession", ctx, "missing").Return(nil, repository.ErrSessionNotFound).Once()

		_, err := svc.GetSession(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}

func TestSessionService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(mockRepo)

		mockRepo.On("DeleteSession", ctx, "sess-1").Return(nil).Once()

		require.NoError(t, svc.Logout(ctx, "sess-1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(mockRepo)

		errRedis := errors.New("redis down")
		mockRepo.On("DeleteSession", ctx, "sess-1").Return(errRedis).Once()

		err := svc.Logout(ctx, "sess-1")
		assert.ErrorIs(t, err, errRedis)
	})
}
