// Package playlist provides the Playlist domain entity.
package playlist

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/vara-s830/playerd/internal/domain/track"
)

// ErrOutOfRange is returned when a playlist index is outside [0, Len).
var ErrOutOfRange = errors.New("playlist index out of range")

// Playlist represents an ordered sequence of tracks.
// Insertion order is significant; duplicates are allowed.
type Playlist struct {
	Name   string        // Playlist display name
	Tracks []track.Track // Tracks in playback order
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// At returns the track at the given position.
func (p *Playlist) At(index int) (track.Track, error) {
	if index < 0 || index >= len(p.Tracks) {
		return track.Track{}, errors.Wrapf(ErrOutOfRange, "index %d, length %d", index, len(p.Tracks))
	}
	return p.Tracks[index], nil
}

// TotalDuration returns the total duration of all tracks.
func (p *Playlist) TotalDuration() time.Duration {
	var total time.Duration
	for _, t := range p.Tracks {
		total += t.Duration
	}
	return total
}

// Titles returns the display names of all tracks, in order.
func (p *Playlist) Titles() []string {
	titles := make([]string, len(p.Tracks))
	for i := range p.Tracks {
		titles[i] = p.Tracks[i].DisplayName()
	}
	return titles
}
