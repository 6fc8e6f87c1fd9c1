package memory_test

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/verisalt/srp-auth-server/internal/models"
	"github.com/verisalt/srp-auth-server/internal/repository"
	"github.com/verisalt/srp-auth-server/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChallenge(username string, ttl time.Duration) *models.LoginChallenge {
	now := time.Now().UTC()
	return &models.LoginChallenge{
		Username:  username,
		PrivateB:  big.NewInt(123456789),
		CreatedAt: now,
		Expiry:    now.Add(ttl),
	}
}

func TestMemoryChallengeRepository(t *testing.T) {
	repo := memory.NewMemoryChallengeRepository(0)
	defer repo.Close()
	ctx := context.Background()

	t.Run("StoreAndPop", func(t *testing.T) {
		challenge := newChallenge("alice", 5*time.Minute)
		err := repo.StoreChallenge(ctx, challenge)
		require.NoError(t, err)

		popped, err := repo.PopChallenge(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, popped)
		assert.Equal(t, challenge.Username, popped.Username)
		assert.Zero(t, challenge.PrivateB.Cmp(popped.PrivateB))
	})

	t.Run("PopConsumesExactlyOnce", func(t *testing.T) {
		err := repo.StoreChallenge(ctx, newChallenge("bob", 5*time.Minute))
		require.NoError(t, err)

		_, err = repo.PopChallenge(ctx, "bob")
		require.NoError(t, err)

		_, err = repo.PopChallenge(ctx, "bob")
		assert.ErrorIs(t, err, repository.ErrChallengeNotFound)
	})

	t.Run("PopNotFound", func(t *testing.T) {
		_, err := repo.PopChallenge(ctx, "nonexistent")
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrChallengeNotFound)
	})

	t.Run("PopExpired", func(t *testing.T) {
		err := repo.StoreChallenge(ctx, newChallenge("expireduser", -1*time.Minute))
		require.NoError(t, err)

		_, err = repo.PopChallenge(ctx, "expireduser")
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrChallengeNotFound)
	})

	t.Run("StoreOverwritesPrior", func(t *testing.T) {
		first := newChallenge("carol", 5*time.Minute)
		second := newChallenge("carol", 5*time.Minute)
		second.PrivateB = big.NewInt(987654321)

		require.NoError(t, repo.StoreChallenge(ctx, first))
		require.NoError(t, repo.StoreChallenge(ctx, second))

		popped, err := repo.PopChallenge(ctx, "carol")
		require.NoError(t, err)
		assert.Zero(t, second.PrivateB.Cmp(popped.PrivateB))
	})

	t.Run("DeleteChallenge", func(t *testing.T) {
		require.NoError(t, repo.StoreChallenge(ctx, newChallenge("dave", 5*time.Minute)))
		require.NoError(t, repo.DeleteChallenge(ctx, "dave"))

		_, err := repo.PopChallenge(ctx, "dave")
		assert.ErrorIs(t, err, repository.ErrChallengeNotFound)
	})
}

func TestMemoryChallengeRepository_ConcurrentPop(t *testing.T) {
	repo := memory.NewMemoryChallengeRepository(0)
	defer repo.Close()
	ctx := context.Background()

	require.NoError(t, repo.StoreChallenge(ctx, newChallenge("racer", 5*time.Minute)))

	const attempts = 16
	var wg sync.WaitGroup
	successes := make(chan *models.LoginChallenge, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if popped, err := repo.PopChallenge(ctx, "racer"); err == nil {
				successes <- popped
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Len(t, successes, 1, "exactly one concurrent pop may succeed")
}

func TestMemoryChallengeRepository_SweepReclaimsExpired(t *testing.T) {
	repo := memory.NewMemoryChallengeRepository(10 * time.Millisecond)
	defer repo.Close()
	ctx := context.Background()

	require.NoError(t, repo.StoreChallenge(ctx, newChallenge("sweepme", 5*time.Millisecond)))

	assert.Eventually(t, func() bool {
		_, err := repo.PopChallenge(ctx, "sweepme")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}
