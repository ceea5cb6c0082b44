package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haythbl004/uni-console/internal/models"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	sess := &Session{ID: "sess-1", UpstreamCookie: "token=abc", Nav: models.NavState{Mode: models.ViewList}}

	require.NoError(t, store.Create(context.Background(), sess))

	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "token=abc", got.UpstreamCookie)
	assert.Equal(t, models.ViewList, got.Nav.Mode)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	require.NoError(t, store.Create(context.Background(), &Session{ID: "sess-1"}))

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(context.Background(), "sess-1")
	require.Error(t, err)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Create(context.Background(), &Session{ID: "sess-1"}))
	require.NoError(t, store.Delete(context.Background(), "sess-1"))

	_, err := store.Get(context.Background(), "sess-1")
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	require.NoError(t, store.Create(context.Background(), &Session{ID: "sess-1", Nav: models.NavState{Mode: models.ViewList}}))

	first, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	first.Nav.Mode = models.ViewPlanning

	second, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.ViewList, second.Nav.Mode)
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	sess := &Session{ID: "sess-1", Nav: models.NavState{Mode: models.ViewList}}
	require.NoError(t, store.Create(context.Background(), sess))

	sess.Nav = models.NavState{Mode: models.ViewSessionList, ScheduleID: 3}
	require.NoError(t, store.Save(context.Background(), sess))

	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.ViewSessionList, got.Nav.Mode)
	assert.Equal(t, 3, got.Nav.ScheduleID)
}
