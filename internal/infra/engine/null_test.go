package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vara-s830/playerd/internal/domain/track"
)

func TestNullEngine_PositionAdvances(t *testing.T) {
	e := NewNull()
	defer e.Close()

	assert.Zero(t, e.Position(), "no position before play")

	e.Play(track.Track{Title: "a", Duration: time.Hour})
	time.Sleep(30 * time.Millisecond)

	pos := e.Position()
	assert.Greater(t, pos, time.Duration(0))
	assert.Less(t, pos, time.Second)
}

func TestNullEngine_PauseFreezesPosition(t *testing.T) {
	e := NewNull()
	defer e.Close()

	e.Play(track.Track{Title: "a", Duration: time.Hour})
	time.Sleep(20 * time.Millisecond)
	e.Pause()

	frozen := e.Position()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, e.Position(), "position frozen while paused")

	e.Resume()
	time.Sleep(20 * time.Millisecond)
	assert.Greater(t, e.Position(), frozen, "position advances after resume")
}

func TestNullEngine_PositionClampedToDuration(t *testing.T) {
	e := NewNull()
	defer e.Close()

	e.Play(track.Track{Title: "short", Duration: 5 * time.Millisecond})
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, e.Position())
}

func TestNullEngine_StopResets(t *testing.T) {
	e := NewNull()
	defer e.Close()

	e.Play(track.Track{Title: "a", Duration: time.Hour})
	e.Stop()
	assert.Zero(t, e.Position())

	// Pause and Resume after stop are harmless.
	e.Pause()
	e.Resume()
	assert.Zero(t, e.Position())
}

func TestNullEngine_Seek(t *testing.T) {
	e := NewNull()
	defer e.Close()

	// Seek without a track is a no-op.
	e.Seek(time.Minute)
	assert.Zero(t, e.Position())

	e.Play(track.Track{Title: "a", Duration: time.Hour})
	e.Seek(10 * time.Minute)

	pos := e.Position()
	require.GreaterOrEqual(t, pos, 10*time.Minute)
	assert.Less(t, pos, 10*time.Minute+time.Second)
}

func TestNullEngine_NoErrors(t *testing.T) {
	e := NewNull()
	defer e.Close()

	select {
	case err := <-e.Errors():
		t.Fatalf("unexpected engine error: %v", err)
	default:
	}
}
