package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vara-s830/playerd/internal/domain/track"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "stopped", StatusStopped.String())
	assert.Equal(t, "playing", StatusPlaying.String())
	assert.Equal(t, "paused", StatusPaused.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestSnapshot_Projections(t *testing.T) {
	trk := track.Track{Title: "Track A", Artist: "Artist A", Duration: 200 * time.Second}

	tests := []struct {
		name         string
		snap         Snapshot
		wantTitle    string
		wantArtist   string
		wantProgress float64
		wantPlaying  bool
	}{
		{
			name:      "no track yields empty projections",
			snap:      Snapshot{Status: StatusStopped, TrackIndex: NoTrack},
			wantTitle: "", wantArtist: "", wantProgress: 0,
		},
		{
			name: "playing halfway",
			snap: Snapshot{
				Status: StatusPlaying, TrackIndex: 0, Track: trk,
				Elapsed: 100 * time.Second,
			},
			wantTitle: "Track A", wantArtist: "Artist A",
			wantProgress: 0.5, wantPlaying: true,
		},
		{
			name: "elapsed past duration clamps to one",
			snap: Snapshot{
				Status: StatusPaused, TrackIndex: 0, Track: trk,
				Elapsed: 500 * time.Second,
			},
			wantTitle: "Track A", wantArtist: "Artist A", wantProgress: 1,
		},
		{
			name: "zero duration yields zero progress",
			snap: Snapshot{
				Status: StatusPlaying, TrackIndex: 0,
				Track:   track.Track{Title: "Untimed"},
				Elapsed: 10 * time.Second,
			},
			wantTitle: "Untimed", wantProgress: 0, wantPlaying: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTitle, tt.snap.Title())
			assert.Equal(t, tt.wantArtist, tt.snap.Artist())
			assert.InDelta(t, tt.wantProgress, tt.snap.Progress(), 1e-9)
			assert.Equal(t, tt.wantPlaying, tt.snap.IsPlaying())
		})
	}
}
