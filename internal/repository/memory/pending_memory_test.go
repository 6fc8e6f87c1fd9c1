package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
	"github.com/verisalt/srp-auth-server/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingLogin(username, proof string, ttl time.Duration) *models.PendingLogin {
	now := time.Now().UTC()
	return &models.PendingLogin{
		Username:      username,
		ExpectedProof: proof,
		CreatedAt:     now,
		Expiry:        now.Add(ttl),
	}
}

func TestMemoryPendingLoginRepository(t *testing.T) {
	repo := memory.NewMemoryPendingLoginRepository(0)
	defer repo.Close()
	ctx := context.Background()

	t.Run("StoreAndPop", func(t *testing.T) {
		pending := newPendingLogin("alice", "aa11", 5*time.Minute)
		require.NoError(t, repo.StorePendingLogin(ctx, pending))

		popped, err := repo.PopPendingLogin(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, popped)
		assert.Equal(t, "aa11", popped.ExpectedProof)
	})

	t.Run("PopConsumesExactlyOnce", func(t *testing.T) {
		require.NoError(t, repo.StorePendingLogin(ctx, newPendingLogin("bob", "bb22", 5*time.Minute)))

		_, err := repo.PopPendingLogin(ctx, "bob")
		require.NoError(t, err)

		_, err = repo.PopPendingLogin(ctx, "bob")
		assert.ErrorIs(t, err, repository.ErrPendingLoginNotFound)
	})

	t.Run("PopNotFound", func(t *testing.T) {
		_, err := repo.PopPendingLogin(ctx, "nonexistent")
		assert.ErrorIs(t, err, repository.ErrPendingLoginNotFound)
	})

	t.Run("PopExpired", func(t *testing.T) {
		require.NoError(t, repo.StorePendingLogin(ctx, newPendingLogin("expireduser", "cc33", -time.Minute)))

		_, err := repo.PopPendingLogin(ctx, "expireduser")
		assert.ErrorIs(t, err, repository.ErrPendingLoginNotFound)
	})

	t.Run("StoreOverwritesPrior", func(t *testing.T) {
		require.NoError(t, repo.StorePendingLogin(ctx, newPendingLogin("carol", "old", 5*time.Minute)))
		require.NoError(t, repo.StorePendingLogin(ctx, newPendingLogin("carol", "new", 5*time.Minute)))

		popped, err := repo.PopPendingLogin(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, "new", popped.ExpectedProof)
	})

	t.Run("DeletePendingLogin", func(t *testing.T) {
		require.NoError(t, repo.StorePendingLogin(ctx, newPendingLogin("dave", "dd44", 5*time.Minute)))
		require.NoError(t, repo.DeletePendingLogin(ctx, "dave"))

		_, err := repo.PopPendingLogin(ctx, "dave")
		assert.ErrorIs(t, err, repository.ErrPendingLoginNotFound)
	})
}

func TestMemoryPendingLoginRepository_ConcurrentPop(t *testing.T) {
	repo := memory.NewMemoryPendingLoginRepository(0)
	defer repo.Close()
	ctx := context.Background()

	require.NoError(t, repo.StorePendingLogin(ctx, newPendingLogin("alice", "aa11", 5*time.Minute)))

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.PopPendingLogin(ctx, "alice")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, repository.ErrPendingLoginNotFound)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one pop may win")
}

func TestMemoryPendingLoginRepository_SweepReclaimsExpired(t *testing.T) {
	repo := memory.NewMemoryPendingLoginRepository(10 * time.Millisecond)
	defer repo.Close()
	ctx := context.Background()

	require.NoError(t, repo.StorePendingLogin(ctx, newPendingLogin("alice", "aa11", 20*time.Millisecond)))

	assert.Eventually(t, func() bool {
		_, err := repo.PopPendingLogin(ctx, "alice")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}
