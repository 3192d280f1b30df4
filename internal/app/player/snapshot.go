package player

import (
	"time"

	"github.com/vara-s830/playerd/internal/domain/track"
)

// NoTrack is the TrackIndex value when no track is current.
const NoTrack = -1

// Snapshot is an immutable view of the playback state, published to
// subscribers on every change. Track is a value copy so observers can
// never mutate the store's playlist.
type Snapshot struct {
	Status      Status
	TrackIndex  int         // Playlist position of the current track, NoTrack when none
	Track       track.Track // Zero value when TrackIndex == NoTrack
	Elapsed     time.Duration
	PlaylistLen int
}

// HasTrack reports whether a current track is set.
func (s Snapshot) HasTrack() bool {
	return s.TrackIndex != NoTrack
}

// IsPlaying reports whether the status is Playing.
func (s Snapshot) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// Title returns the current track title, empty when no track.
func (s Snapshot) Title() string {
	if !s.HasTrack() {
		return ""
	}
	return s.Track.Title
}

// Artist returns the current track artist, empty when no track.
func (s Snapshot) Artist() string {
	if !s.HasTrack() {
		return ""
	}
	return s.Track.Artist
}

// Progress returns elapsed/duration clamped to [0, 1].
// Returns 0 when no track is set or the duration is unknown.
func (s Snapshot) Progress() float64 {
	if !s.HasTrack() || s.Track.Duration <= 0 {
		return 0
	}
	p := float64(s.Elapsed) / float64(s.Track.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
