package events

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	first := bus.Subscribe(4)
	second := bus.Subscribe(4)

	change := Change{Kind: KindPost, ID: 7, Op: OpUpdated}
	bus.Publish(change)

	for _, ch := range []<-chan Change{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, change, got)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the change")
		}
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	bus.Publish(Change{Kind: KindAccount, ID: 1, Op: OpCreated})
}

func TestBusFullBufferDoesNotBlockPublisher(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	ch := bus.Subscribe(1)

	bus.Publish(Change{Kind: KindPoll, ID: 1, Op: OpCreated})

	done := make(chan struct{})
	go func() {
		// The buffer is full and nobody is draining, the publish must drop
		bus.Publish(Change{Kind: KindPoll, ID: 2, Op: OpUpdated})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}

	got := <-ch
	assert.Equal(t, int64(1), got.ID, "the first change is kept, the overflow is dropped")
	require.Empty(t, ch)
}

func TestBusSubscribeDefaultBuffer(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	ch := bus.Subscribe(0)

	for i := 1; i <= 16; i++ {
		bus.Publish(Change{Kind: KindAccount, ID: int64(i), Op: OpUpdated})
	}
	assert.Len(t, ch, 16)
}
