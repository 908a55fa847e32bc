package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glamease/glamease/config"
)

func TestChatFallsBackWhenBackendDisabled(t *testing.T) {
	store := newTestStore(t)
	client := NewClient(config.AssistantConfig{Enabled: false}, store)

	reply, err := client.Chat(context.Background(), "sid-x", "hello")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)

	// both turns are still recorded
	msgs, err := store.History("sid-x")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, FallbackReply, msgs[1].Content)
}
