// Package engine provides the playback engine port and its implementations.
// The engine is a dumb audio primitive: the playback store owns all state
// and drives the engine exclusively.
package engine

import (
	"time"

	"github.com/vara-s830/playerd/internal/domain/track"
)

// Engine is the playback primitive driven by the playback store.
// Commands never fail synchronously; decode and device failures are
// reported on the Errors channel.
type Engine interface {
	// Play starts playback of the given track from the beginning,
	// replacing whatever was playing before.
	Play(t track.Track)

	// Pause suspends audio output, keeping the current position.
	Pause()

	// Resume continues audio output after a Pause.
	Resume()

	// Stop ends playback and releases the current track.
	Stop()

	// Seek moves the playback position within the current track.
	Seek(pos time.Duration)

	// Position reports the engine's current playback position.
	// Returns 0 when nothing is loaded.
	Position() time.Duration

	// Errors delivers asynchronous playback failures (unplayable track,
	// device error). The channel is never closed before Close.
	Errors() <-chan error

	// Close releases engine resources. The engine must not be used after.
	Close() error
}
