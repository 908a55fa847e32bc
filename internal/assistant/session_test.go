package assistant

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := OpenSessionStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	at := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append("sid-1",
		Message{Role: "user", Content: "do you do bridal makeup?", SentAt: at},
		Message{Role: "model", Content: "yes, at your doorstep", SentAt: at},
	))

	msgs, err := store.History("sid-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "yes, at your doorstep", msgs[1].Content)
}

func TestSessionStoreUnknownSessionIsEmpty(t *testing.T) {
	store := newTestStore(t)

	msgs, err := store.History("nobody")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSessionStoreTrimsHistory(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < MaxHistoryMessages+6; i++ {
		require.NoError(t, store.Append("sid-2",
			Message{Role: "user", Content: fmt.Sprintf("msg %d", i)}))
	}

	msgs, err := store.History("sid-2")
	require.NoError(t, err)
	require.Len(t, msgs, MaxHistoryMessages)
	assert.Equal(t, "msg 6", msgs[0].Content)
}

func TestSessionStoreClear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Append("sid-3", Message{Role: "user", Content: "hi"}))
	require.NoError(t, store.Clear("sid-3"))

	msgs, err := store.History("sid-3")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
