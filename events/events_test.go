package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEventEmitter verifies every subscribed handler receives published events in subscription order.
func TestEventEmitter(t *testing.T) {
	emitter := EventEmitter[int]{}
	received := make([]int, 0)

	emitter.Subscribe(func(event int) {
		received = append(received, event)
	})
	emitter.Subscribe(func(event int) {
		received = append(received, event*10)
	})

	emitter.Publish(7)
	emitter.Publish(8)
	assert.Equal(t, []int{7, 70, 8, 80}, received)
}

// TestEventEmitterWithoutSubscribers verifies publishing on an emitter with no subscribers is a no-op.
func TestEventEmitterWithoutSubscribers(t *testing.T) {
	emitter := EventEmitter[string]{}
	assert.NotPanics(t, func() {
		emitter.Publish("hello")
	})
}
