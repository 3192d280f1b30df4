package notification

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/vara-s830/playerd/internal/app/player"
	"github.com/vara-s830/playerd/internal/domain/track"
)

func collector(got *[]Update) Stream {
	return StreamFunc(func(u Update) error {
		*got = append(*got, u)
		return nil
	})
}

func TestManager_BroadcastOrderAndSequence(t *testing.T) {
	m := NewManager()

	var got []Update
	m.Subscribe(collector(&got))

	snaps := []player.Snapshot{
		{Status: player.StatusPlaying, TrackIndex: 0, Track: track.Track{Title: "a"}},
		{Status: player.StatusPlaying, TrackIndex: 0, Elapsed: 10 * time.Second},
		{Status: player.StatusPaused, TrackIndex: 0},
	}
	for _, s := range snaps {
		m.Broadcast(s, nil)
	}

	assert.Len(t, got, 3)
	for i, u := range got {
		assert.Equal(t, uint64(i+1), u.SequenceNo, "sequence numbers increase by one")
		assert.Equal(t, snaps[i].Status, u.State.Status, "updates arrive in broadcast order")
	}
}

func TestManager_MultipleSubscribers(t *testing.T) {
	m := NewManager()

	var first, second []Update
	m.Subscribe(collector(&first))
	m.Subscribe(collector(&second))
	assert.Equal(t, 2, m.Count())

	m.Broadcast(player.Snapshot{Status: player.StatusPlaying}, nil)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, first[0].SequenceNo, second[0].SequenceNo)
}

func TestManager_Unsubscribe(t *testing.T) {
	m := NewManager()

	var got []Update
	id := m.Subscribe(collector(&got))

	m.Broadcast(player.Snapshot{Status: player.StatusPlaying}, nil)
	m.Unsubscribe(id)
	m.Broadcast(player.Snapshot{Status: player.StatusStopped}, nil)

	assert.Len(t, got, 1, "no deliveries after unsubscribe")
	assert.Equal(t, 0, m.Count())
}

func TestManager_SelfUnsubscribeFromCallback(t *testing.T) {
	m := NewManager()

	var got []Update
	var id string
	id = m.Subscribe(StreamFunc(func(u Update) error {
		got = append(got, u)
		m.Unsubscribe(id)
		return nil
	}))

	// Unsubscribing from inside Send must not deadlock, and on the
	// broadcasting context it takes effect before the next broadcast.
	m.Broadcast(player.Snapshot{Status: player.StatusPlaying}, nil)
	m.Broadcast(player.Snapshot{Status: player.StatusPaused}, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, 0, m.Count())
}

func TestManager_UnsubscribeUnknownID(t *testing.T) {
	m := NewManager()
	m.Unsubscribe("not-a-subscription")
	assert.Equal(t, 0, m.Count())
}

func TestManager_ErrorSignal(t *testing.T) {
	m := NewManager()

	var got []Update
	m.Subscribe(collector(&got))

	m.Broadcast(player.Snapshot{Status: player.StatusStopped}, errors.New("track unplayable"))

	assert.Len(t, got, 1)
	assert.Equal(t, "track unplayable", got[0].Err)
}

func TestManager_FailingSubscriberIsDropped(t *testing.T) {
	m := NewManager()

	var healthy []Update
	m.Subscribe(StreamFunc(func(Update) error { return errors.New("gone") }))
	m.Subscribe(collector(&healthy))

	m.Broadcast(player.Snapshot{}, nil)
	assert.Equal(t, 1, m.Count(), "failing subscriber removed")

	m.Broadcast(player.Snapshot{}, nil)
	assert.Len(t, healthy, 2, "healthy subscriber keeps receiving")
}
