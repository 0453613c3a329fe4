package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn   func(context.Context, uint, uint) (bool, int64, error)
	hasLikedFn func(context.Context, uint, uint) (bool, error)
	countFn    func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID, postID uint) (bool, int64, error) {
	return s.toggleFn(ctx, userID, postID)
}
func (s *likeRepoStub) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.hasLikedFn(ctx, userID, postID)
}
func (s *likeRepoStub) Count(ctx context.Context, postID uint) (int64, error) {
	return s.countFn(ctx, postID)
}

// ledgerStub models the like ledger in memory with real toggle semantics, so
// service-level tests can exercise repeated and concurrent toggles.
type ledgerStub struct {
	mu    sync.Mutex
	likes map[[2]uint]bool
}

func newLedgerStub() *ledgerStub {
	return &ledgerStub{likes: make(map[[2]uint]bool)}
}

func (l *ledgerStub) Toggle(_ context.Context, userID, postID uint) (bool, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := [2]uint{userID, postID}
	if l.likes[key] {
		delete(l.likes, key)
	} else {
		l.likes[key] = true
	}
	return l.likes[key], l.count(postID), nil
}

func (l *ledgerStub) HasLiked(_ context.Context, userID, postID uint) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.likes[[2]uint{userID, postID}], nil
}

func (l *ledgerStub) Count(_ context.Context, postID uint) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count(postID), nil
}

func (l *ledgerStub) count(postID uint) int64 {
	var n int64
	for key := range l.likes {
		if key[1] == postID {
			n++
		}
	}
	return n
}

func TestInteractionService_ToggleLike_Parity(t *testing.T) {
	t.Parallel()

	svc := NewInteractionService(newLedgerStub())
	ctx := context.Background()

	// An even number of toggles always lands back on "not liked".
	for i := 0; i < 6; i++ {
		state, err := svc.ToggleLike(ctx, 1, 1)
		require.NoError(t, err)
		wantLiked := i%2 == 0
		assert.Equal(t, wantLiked, state.Liked, "toggle %d", i+1)
		if wantLiked {
			assert.Equal(t, int64(1), state.LikesCount)
		} else {
			assert.Equal(t, int64(0), state.LikesCount)
		}
	}
}

func TestInteractionService_ToggleLike_CountTracksDistinctUsers(t *testing.T) {
	t.Parallel()

	svc := NewInteractionService(newLedgerStub())
	ctx := context.Background()

	for userID := uint(1); userID <= 3; userID++ {
		state, err := svc.ToggleLike(ctx, userID, 1)
		require.NoError(t, err)
		assert.True(t, state.Liked)
	}

	state, err := svc.LikeStatus(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), state.LikesCount)

	// One user backing out drops the count by exactly one.
	result, err := svc.ToggleLike(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(2), result.LikesCount)
}

func TestInteractionService_ToggleLike_ConcurrentPairsConverge(t *testing.T) {
	t.Parallel()

	ledger := newLedgerStub()
	svc := NewInteractionService(ledger)
	ctx := context.Background()

	// Each user fires an even number of toggles from separate goroutines.
	// Whatever the interleaving, the ledger must end empty.
	var wg sync.WaitGroup
	for userID := uint(1); userID <= 8; userID++ {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(uid uint) {
				defer wg.Done()
				_, err := svc.ToggleLike(ctx, uid, 1)
				assert.NoError(t, err)
			}(userID)
		}
	}
	wg.Wait()

	count, err := ledger.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestInteractionService_ToggleLike_PostNotFound(t *testing.T) {
	t.Parallel()

	repo := &likeRepoStub{
		toggleFn: func(_ context.Context, _, _ uint) (bool, int64, error) {
			return false, 0, gorm.ErrRecordNotFound
		},
	}
	svc := NewInteractionService(repo)
	_, err := svc.ToggleLike(context.Background(), 1, 99)
	assertNotFoundError(t, err)
}

func TestInteractionService_LikeStatus_Anonymous(t *testing.T) {
	t.Parallel()

	repo := &likeRepoStub{
		hasLikedFn: func(_ context.Context, _, _ uint) (bool, error) {
			t.Fatal("anonymous status must not consult the ledger per user")
			return false, nil
		},
		countFn: func(_ context.Context, _ uint) (int64, error) { return 5, nil },
	}

	svc := NewInteractionService(repo)
	state, err := svc.LikeStatus(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, int64(5), state.LikesCount)
}

func TestInteractionService_LikeStatus_NeverMutates(t *testing.T) {
	t.Parallel()

	ledger := newLedgerStub()
	svc := NewInteractionService(ledger)
	ctx := context.Background()

	_, err := svc.ToggleLike(ctx, 1, 1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		state, err := svc.LikeStatus(ctx, 1, 1)
		require.NoError(t, err)
		assert.True(t, state.Liked)
		assert.Equal(t, int64(1), state.LikesCount)
	}
}
