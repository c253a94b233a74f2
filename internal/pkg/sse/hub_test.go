package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesEveryConnection(t *testing.T) {
	h := NewHub()

	first, cleanupFirst := h.Subscribe("user-1")
	defer cleanupFirst()
	second, cleanupSecond := h.Subscribe("user-1")
	defer cleanupSecond()
	other, cleanupOther := h.Subscribe("user-2")
	defer cleanupOther()

	h.Publish("user-1", Event{Event: "notification", Data: "hello"})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Len(t, other, 0)

	got := <-first
	assert.Equal(t, "notification", got.Event)
}

func TestHub_CleanupDropsRegistration(t *testing.T) {
	h := NewHub()

	ch, cleanup := h.Subscribe("user-1")
	assert.Equal(t, 1, h.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, h.SubscriberCount("user-1"))

	_, open := <-ch
	assert.False(t, open)

	// Publishing to a user with no connections is a no-op.
	h.Publish("user-1", Event{Event: "notification"})
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	h := NewHub()

	ch, cleanup := h.Subscribe("user-1")
	defer cleanup()

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish("user-1", Event{Event: "notification"})
	}

	assert.Len(t, ch, subscriberBuffer, "overflow events are dropped, not queued")
}
