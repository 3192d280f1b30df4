// Package player owns the authoritative playback state: status, current
// track, elapsed time, and playlist. All mutation is serialized on a single
// dispatch goroutine, and every committed change is published to subscribers.
package player

// Status represents the playback status.
type Status int

const (
	StatusStopped Status = iota // No current track
	StatusPlaying               // Track is playing
	StatusPaused                // Track is paused
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}
