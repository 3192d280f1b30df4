package engine

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	zlog "github.com/rs/zerolog/log"

	"github.com/vara-s830/playerd/internal/domain/track"
)

const resampleQuality = 4

// BeepEngine plays local audio files through the system speaker.
type BeepEngine struct {
	mu sync.Mutex

	buffer time.Duration

	// Speaker is initialized once, with the sample rate of the first
	// track. Later tracks with a different rate are resampled.
	initialized bool
	speakerRate beep.SampleRate

	format   beep.Format
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl

	errs chan error
}

// NewBeep creates a beep-backed engine. The speaker is initialized lazily
// on the first Play, since the sample rate is not known before.
func NewBeep(buffer time.Duration) *BeepEngine {
	return &BeepEngine{
		buffer: buffer,
		errs:   make(chan error, 8),
	}
}

// Play implements Engine.
func (e *BeepEngine) Play(t track.Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	f, err := os.Open(t.Path)
	if err != nil {
		e.reportLocked(errors.Wrapf(err, "failed to open %s", t.Path))
		return
	}

	streamer, format, err := decode(t.Path, f)
	if err != nil {
		f.Close()
		e.reportLocked(errors.Wrapf(err, "failed to decode %s", t.Path))
		return
	}

	if !e.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(e.buffer)); err != nil {
			streamer.Close()
			e.reportLocked(errors.Wrap(err, "failed to initialize speaker"))
			return
		}
		e.speakerRate = format.SampleRate
		e.initialized = true
	}

	var source beep.Streamer = streamer
	if format.SampleRate != e.speakerRate {
		source = beep.Resample(resampleQuality, format.SampleRate, e.speakerRate, streamer)
	}

	e.format = format
	e.streamer = streamer
	e.ctrl = &beep.Ctrl{Streamer: source}

	speaker.Play(e.ctrl)
	zlog.Debug().Msgf("engine: playing %s", t.Path)
}

// decode picks a decoder by file extension.
func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch {
	case strings.HasSuffix(path, ".mp3"):
		return mp3.Decode(f)
	case strings.HasSuffix(path, ".flac"):
		return flac.Decode(f)
	case strings.HasSuffix(path, ".ogg"):
		return vorbis.Decode(f)
	case strings.HasSuffix(path, ".wav"):
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, errors.Newf("unsupported audio format: %s", path)
	}
}

// Pause implements Engine.
func (e *BeepEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
}

// Resume implements Engine.
func (e *BeepEngine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
}

// Stop implements Engine.
func (e *BeepEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *BeepEngine) stopLocked() {
	if e.streamer == nil {
		return
	}
	// speaker.Clear locks the speaker itself, so clear before locking.
	speaker.Clear()

	speaker.Lock()
	e.streamer.Close()
	speaker.Unlock()

	e.streamer = nil
	e.ctrl = nil
}

// Seek implements Engine.
func (e *BeepEngine) Seek(pos time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.streamer == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()

	n := e.format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if n >= e.streamer.Len() {
		n = e.streamer.Len() - 1
	}
	if err := e.streamer.Seek(n); err != nil {
		e.reportLocked(errors.Wrap(err, "seek failed"))
	}
}

// Position implements Engine.
func (e *BeepEngine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return e.format.SampleRate.D(e.streamer.Position())
}

// Errors implements Engine.
func (e *BeepEngine) Errors() <-chan error {
	return e.errs
}

// Close implements Engine.
func (e *BeepEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	return nil
}

// reportLocked delivers an asynchronous engine failure without blocking.
func (e *BeepEngine) reportLocked(err error) {
	zlog.Warn().Msgf("engine failure: %v", err)
	select {
	case e.errs <- err:
	default:
		// A slow consumer loses older reports; the latest state is what matters.
	}
}
