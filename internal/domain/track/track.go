// Package track provides the Track domain entity.
package track

import (
	"path/filepath"
	"time"
)

// Track represents a single playable audio track.
// Immutable once constructed; the playlist owns the values.
type Track struct {
	Title    string        // Track title (from tags, or file name fallback)
	Artist   string        // Artist name
	Album    string        // Album name
	Path     string        // Location of the audio file
	Duration time.Duration // Track duration (0 when unknown)
}

// DisplayName returns "Artist - Title" for display purposes.
// Falls back to the title alone, then to the file base name.
func (t *Track) DisplayName() string {
	switch {
	case t.Title != "" && t.Artist != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return filepath.Base(t.Path)
	}
}
