package session_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/clubinho/internal/auth"
	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/session"
)

type refresherFunc func(ctx context.Context, refreshToken string) (domain.Credentials, error)

func (f refresherFunc) Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error) {
	return f(ctx, refreshToken)
}

func TestManager_LoadsCredentialsFromStore(t *testing.T) {
	store := auth.NewMemoryStore(domain.Credentials{AccessToken: "a", RefreshToken: "r"})
	mgr, err := session.NewManager(refresherFunc(nil), store, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", mgr.AccessToken())
}

func TestManager_RefreshPersistsRotatedPair(t *testing.T) {
	store := auth.NewMemoryStore(domain.Credentials{AccessToken: "old", RefreshToken: "old_ref"})
	mgr, err := session.NewManager(refresherFunc(func(_ context.Context, rt string) (domain.Credentials, error) {
		assert.Equal(t, "old_ref", rt)
		return domain.Credentials{AccessToken: "new", RefreshToken: "new_ref"}, nil
	}), store, nil)
	require.NoError(t, err)

	token, err := mgr.Refresh(context.Background(), "old")
	require.NoError(t, err)
	assert.Equal(t, "new", token)

	stored, _ := store.Load()
	assert.Equal(t, domain.Credentials{AccessToken: "new", RefreshToken: "new_ref"}, stored)
}

func TestManager_RefreshReusesRotatedToken(t *testing.T) {
	var calls atomic.Int32
	store := auth.NewMemoryStore(domain.Credentials{AccessToken: "current", RefreshToken: "r"})
	mgr, err := session.NewManager(refresherFunc(func(context.Context, string) (domain.Credentials, error) {
		calls.Add(1)
		return domain.Credentials{AccessToken: "x", RefreshToken: "y"}, nil
	}), store, nil)
	require.NoError(t, err)

	token, err := mgr.Refresh(context.Background(), "superseded")
	require.NoError(t, err)
	assert.Equal(t, "current", token)
	assert.Equal(t, int32(0), calls.Load())
}

func TestManager_RefreshWithoutRefreshTokenInvalidates(t *testing.T) {
	store := auth.NewMemoryStore(domain.Credentials{AccessToken: "a"})
	mgr, err := session.NewManager(refresherFunc(func(context.Context, string) (domain.Credentials, error) {
		t.Error("refresher must not be called without a refresh token")
		return domain.Credentials{}, nil
	}), store, nil)
	require.NoError(t, err)

	_, err = mgr.Refresh(context.Background(), "a")
	assert.True(t, errors.Is(err, domain.ErrNoRefreshToken))
	assert.True(t, mgr.Credentials().IsZero())
}

func TestManager_RefreshFailureClearsStore(t *testing.T) {
	boom := errors.New("boom")
	store := auth.NewMemoryStore(domain.Credentials{AccessToken: "a", RefreshToken: "r"})
	mgr, err := session.NewManager(refresherFunc(func(context.Context, string) (domain.Credentials, error) {
		return domain.Credentials{}, boom
	}), store, nil)
	require.NoError(t, err)

	_, err = mgr.Refresh(context.Background(), "a")
	assert.True(t, errors.Is(err, boom))
	stored, _ := store.Load()
	assert.True(t, stored.IsZero())

	// A failed exchange is forgotten; the next attempt starts fresh.
	require.NoError(t, mgr.SetCredentials(domain.Credentials{AccessToken: "b", RefreshToken: "r2"}))
	_, err = mgr.Refresh(context.Background(), "b")
	assert.True(t, errors.Is(err, boom))
}

func TestManager_CancelledWaiterDoesNotAbortExchange(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	store := auth.NewMemoryStore(domain.Credentials{AccessToken: "old", RefreshToken: "r"})
	mgr, err := session.NewManager(refresherFunc(func(ctx context.Context, _ string) (domain.Credentials, error) {
		calls.Add(1)
		<-release
		if ctx.Err() != nil {
			return domain.Credentials{}, ctx.Err()
		}
		return domain.Credentials{AccessToken: "new", RefreshToken: "r2"}, nil
	}), store, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := mgr.Refresh(ctx, "old")
		first <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan string, 1)
	go func() {
		token, _ := mgr.Refresh(context.Background(), "old")
		second <- token
	}()

	cancel()
	assert.True(t, errors.Is(<-first, context.Canceled))
	close(release)

	select {
	case token := <-second:
		assert.Equal(t, "new", token)
	case <-time.After(2 * time.Second):
		t.Fatal("second waiter never received the refreshed token")
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "new", mgr.AccessToken())
}

func TestManager_InvalidateClearsStore(t *testing.T) {
	store := auth.NewMemoryStore(domain.Credentials{AccessToken: "a", RefreshToken: "r"})
	mgr, err := session.NewManager(refresherFunc(nil), store, nil)
	require.NoError(t, err)

	require.NoError(t, mgr.Invalidate())
	stored, _ := store.Load()
	assert.True(t, stored.IsZero())
	assert.Equal(t, "", mgr.AccessToken())
}
