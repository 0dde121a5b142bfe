package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"menumeters/internal/models"
)

func TestHubBroadcastsFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewWebSocketHub(zap.NewNop())
	go hub.Run(ctx)

	client := NewClientConnection("test", nil)
	require.True(t, hub.Register(client))

	require.NoError(t, hub.Present(ctx, models.Frame{Category: models.CategoryMemory, Text: []string{" 50.0%"}}))

	select {
	case msg := <-client.Send:
		assert.Equal(t, "frame", msg.Type)
		require.NotNil(t, msg.Frame)
		assert.Equal(t, models.CategoryMemory, msg.Frame.Category)
	case <-time.After(time.Second):
		t.Fatal("frame not delivered")
	}

	hub.Unregister(client.ID)
	assert.Zero(t, hub.ClientCount())

	_, open := <-client.Send
	assert.False(t, open, "send channel closed on unregister")
}

func TestHubPresentNeverBlocks(t *testing.T) {
	hub := NewWebSocketHub(zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = hub.Present(context.Background(), models.Frame{Category: models.CategoryCPU})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Present blocked without a running hub")
	}
}

func TestHubSendTo(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewWebSocketHub(zap.NewNop())
	go hub.Run(ctx)

	assert.False(t, hub.SendTo("nobody", WebSocketMessage{Type: "pong"}))

	client := NewClientConnection("c1", nil)
	require.True(t, hub.Register(client))
	require.True(t, hub.SendTo("c1", WebSocketMessage{Type: "pong"}))

	msg := <-client.Send
	assert.Equal(t, "pong", msg.Type)
}

func TestHubShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewWebSocketHub(zap.NewNop())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := NewClientConnection("c1", nil)
	require.True(t, hub.Register(client))

	cancel()
	<-done

	_, open := <-client.Send
	assert.False(t, open)
	assert.False(t, hub.Register(NewClientConnection("late", nil)))
}
