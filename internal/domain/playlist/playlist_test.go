package playlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vara-s830/playerd/internal/domain/track"
)

func TestPlaylist_At(t *testing.T) {
	tracks := []track.Track{
		{Title: "Track A", Duration: 200 * time.Second},
		{Title: "Track B", Duration: 180 * time.Second},
	}

	tests := []struct {
		name      string
		tracks    []track.Track
		index     int
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "first track",
			tracks:    tracks,
			index:     0,
			wantTitle: "Track A",
		},
		{
			name:      "last track",
			tracks:    tracks,
			index:     1,
			wantTitle: "Track B",
		},
		{
			name:    "negative index",
			tracks:  tracks,
			index:   -1,
			wantErr: true,
		},
		{
			name:    "index past end",
			tracks:  tracks,
			index:   2,
			wantErr: true,
		},
		{
			name:    "empty playlist",
			tracks:  nil,
			index:   0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Name: "test", Tracks: tt.tracks}

			trk, err := p.At(tt.index)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfRange)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantTitle, trk.Title)
		})
	}
}

func TestPlaylist_TotalDuration(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []track.Track
		expected time.Duration
	}{
		{
			name:     "empty playlist",
			tracks:   []track.Track{},
			expected: 0,
		},
		{
			name: "single track",
			tracks: []track.Track{
				{Title: "a", Duration: 3 * time.Minute},
			},
			expected: 3 * time.Minute,
		},
		{
			name: "multiple tracks",
			tracks: []track.Track{
				{Title: "a", Duration: 2 * time.Minute},
				{Title: "b", Duration: 3*time.Minute + 30*time.Second},
				{Title: "c", Duration: 4 * time.Minute},
			},
			expected: 9*time.Minute + 30*time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Tracks: tt.tracks}
			assert.Equal(t, tt.expected, p.TotalDuration())
		})
	}
}

func TestPlaylist_Titles(t *testing.T) {
	p := &Playlist{
		Name: "evening",
		Tracks: []track.Track{
			{Title: "So What", Artist: "Miles Davis"},
			{Path: "/music/untagged.mp3"},
		},
	}

	assert.Equal(t, []string{"Miles Davis - So What", "untagged.mp3"}, p.Titles())
	assert.Equal(t, 2, p.Len())
}
