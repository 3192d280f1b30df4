package player

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/vara-s830/playerd/internal/app/audiosession"
	"github.com/vara-s830/playerd/internal/domain/playlist"
	"github.com/vara-s830/playerd/internal/infra/engine"
)

// Errors
var (
	// ErrClosed is returned by commands issued after Close.
	ErrClosed = errors.New("player store is closed")
)

const defaultTickInterval = 500 * time.Millisecond

// Config holds store configuration.
type Config struct {
	TickInterval time.Duration // Engine position poll interval (default 500ms)
}

// Publisher broadcasts a committed state snapshot to subscribers.
// A non-nil err signals an engine failure alongside the snapshot.
type Publisher interface {
	Broadcast(snap Snapshot, err error)
}

// Store is the sole owner of the playback state. All mutation runs on a
// single dispatch goroutine consuming a task queue; public methods enqueue
// a task and wait for it, so callers see synchronous semantics while
// mutations never interleave. Commands issued from inside a subscriber
// callback already run on the dispatch goroutine and are executed inline,
// so observers may command the store from their callbacks. The engine
// handle is driven exclusively by the store.
type Store struct {
	engine engine.Engine
	pub    Publisher
	config Config

	// Mutable state, touched only on the dispatch goroutine.
	status   Status
	playlist playlist.Playlist
	current  int // index into playlist, NoTrack when none
	elapsed  time.Duration

	// Publication state, touched only on the dispatch goroutine.
	// Nested publications (from a command issued inside a callback) are
	// queued so every subscriber sees updates in production order.
	broadcasting bool
	pending      []publication

	dispatchGID atomic.Uint64

	tasks  chan task
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type publication struct {
	snap Snapshot
	err  error
}

type task struct {
	fn   func()
	done chan struct{}
}

// NewStore creates a store and starts its dispatch goroutine, the engine
// position poller, and the engine failure watcher. The store begins
// Stopped with an empty playlist.
func NewStore(eng engine.Engine, pub Publisher, config Config) *Store {
	if config.TickInterval <= 0 {
		config.TickInterval = defaultTickInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		engine:  eng,
		pub:     pub,
		config:  config,
		status:  StatusStopped,
		current: NoTrack,
		tasks:   make(chan task),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go s.dispatchLoop()
	go s.pollLoop()
	go s.watchEngine()

	return s
}

// Close stops the dispatch goroutine. Pending and subsequent commands
// return ErrClosed. The engine is not closed; its owner closes it.
func (s *Store) Close() {
	s.cancel()
	<-s.done
}

// dispatchLoop is the single consumer of the task queue. Every state
// mutation and every publication happens here, in FIFO order.
func (s *Store) dispatchLoop() {
	s.dispatchGID.Store(goroutineID())
	defer s.dispatchGID.Store(0)
	defer close(s.done)
	for {
		select {
		case t := <-s.tasks:
			t.fn()
			close(t.done)
		case <-s.ctx.Done():
			return
		}
	}
}

// do runs fn on the dispatch goroutine and waits for it to finish.
// A call that already originates on the dispatch goroutine (a subscriber
// commanding the store from its callback) runs inline: enqueueing would
// block forever, since the queue's only consumer is the caller itself.
func (s *Store) do(fn func()) error {
	if s.dispatchGID.Load() == goroutineID() {
		fn()
		return nil
	}

	t := task{fn: fn, done: make(chan struct{})}
	select {
	case s.tasks <- t:
	case <-s.ctx.Done():
		return ErrClosed
	}
	select {
	case <-t.done:
		return nil
	case <-s.ctx.Done():
		return ErrClosed
	}
}

// pollLoop feeds the engine position into the store while playing.
// Best-effort: ticks may be coalesced or skipped.
func (s *Store) pollLoop() {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = s.do(func() {
				if s.status != StatusPlaying {
					return
				}
				s.applyTick(s.engine.Position())
			})
		case <-s.ctx.Done():
			return
		}
	}
}

// watchEngine maps asynchronous engine failures to a forced stop plus an
// error publication.
func (s *Store) watchEngine() {
	for {
		select {
		case err, ok := <-s.engine.Errors():
			if !ok {
				return
			}
			_ = s.do(func() { s.applyEngineFailure(err) })
		case <-s.ctx.Done():
			return
		}
	}
}

// Play selects the track at the given playlist position and starts it.
// An invalid index leaves the state untouched and returns
// playlist.ErrOutOfRange.
func (s *Store) Play(index int) error {
	var opErr error
	if err := s.do(func() {
		trk, err := s.playlist.At(index)
		if err != nil {
			opErr = err
			return
		}

		s.current = index
		s.elapsed = 0
		s.status = StatusPlaying
		s.engine.Play(trk)

		zlog.Info().Msgf("playing: index=%d track=%s", index, trk.DisplayName())
		s.publish(nil)
	}); err != nil {
		return err
	}
	return opErr
}

// Pause suspends playback. No-op unless playing.
func (s *Store) Pause() {
	_ = s.do(func() { s.applyPause("pause") })
}

// Resume continues paused playback. No-op unless paused.
func (s *Store) Resume() {
	_ = s.do(func() { s.applyResume("resume") })
}

// Stop ends playback and clears the current track. Always valid.
func (s *Store) Stop() {
	_ = s.do(func() { s.applyStop(nil) })
}

// Tick records an engine-observed elapsed time. Ignored unless playing.
func (s *Store) Tick(observed time.Duration) {
	_ = s.do(func() {
		if s.status != StatusPlaying {
			return
		}
		s.applyTick(observed)
	})
}

// SetPlaylist atomically replaces the playlist. Playback stops and the
// current track is cleared; observers never see a partially updated list.
func (s *Store) SetPlaylist(pl playlist.Playlist) {
	_ = s.do(func() {
		if s.status != StatusStopped {
			s.engine.Stop()
		}
		s.playlist = pl
		s.current = NoTrack
		s.elapsed = 0
		s.status = StatusStopped

		zlog.Info().Msgf("playlist replaced: name=%s tracks=%d", pl.Name, pl.Len())
		s.publish(nil)
	})
}

// Snapshot returns the current state, serialized with mutations.
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	_ = s.do(func() { snap = s.snapshot() })
	return snap
}

// HandleInterruptionBegan reacts to an OS interruption taking over audio
// output: playback is paused so internal state matches reality.
// Implements audiosession.Handler.
func (s *Store) HandleInterruptionBegan() {
	_ = s.do(func() { s.applyPause("interruption") })
}

// HandleInterruptionEnded reacts to the interruption ending. Resumes only
// when the event source says playback may resume; the store does not infer
// eligibility itself. Implements audiosession.Handler.
func (s *Store) HandleInterruptionEnded(shouldResume bool) {
	_ = s.do(func() {
		if !shouldResume {
			zlog.Debug().Msg("interruption ended, resume not permitted")
			return
		}
		s.applyResume("interruption ended")
	})
}

// HandleRouteChange reacts to an output route change. Only a disappearing
// device pauses playback; other reasons are ignored.
// Implements audiosession.Handler.
func (s *Store) HandleRouteChange(reason audiosession.RouteReason) {
	_ = s.do(func() {
		if reason != audiosession.RouteDeviceUnavailable {
			zlog.Debug().Msgf("route change ignored: reason=%s", reason)
			return
		}
		s.applyPause("route device unavailable")
	})
}

// applyPause transitions Playing -> Paused. No-op in any other status.
func (s *Store) applyPause(cause string) {
	if s.status != StatusPlaying {
		return
	}
	s.status = StatusPaused
	s.engine.Pause()

	zlog.Info().Msgf("paused: cause=%s", cause)
	s.publish(nil)
}

// applyResume transitions Paused -> Playing. No-op in any other status.
func (s *Store) applyResume(cause string) {
	if s.status != StatusPaused {
		return
	}
	s.status = StatusPlaying
	s.engine.Resume()

	zlog.Info().Msgf("resumed: cause=%s", cause)
	s.publish(nil)
}

// applyStop transitions any status to Stopped and clears the current
// track. A non-nil err is forwarded to subscribers as an engine failure.
func (s *Store) applyStop(err error) {
	s.status = StatusStopped
	s.current = NoTrack
	s.elapsed = 0
	s.engine.Stop()

	s.publish(err)
}

// applyTick commits an observed elapsed time, clamped to the current
// track duration. Caller has already checked the status.
func (s *Store) applyTick(observed time.Duration) {
	if observed < 0 {
		observed = 0
	}
	if s.current != NoTrack {
		if trk, err := s.playlist.At(s.current); err == nil && trk.Duration > 0 && observed > trk.Duration {
			observed = trk.Duration
		}
	}
	s.elapsed = observed
	s.publish(nil)
}

func (s *Store) applyEngineFailure(err error) {
	zlog.Error().Msgf("engine failure, stopping: %v", err)
	s.applyStop(err)
}

func (s *Store) snapshot() Snapshot {
	snap := Snapshot{
		Status:      s.status,
		TrackIndex:  s.current,
		Elapsed:     s.elapsed,
		PlaylistLen: s.playlist.Len(),
	}
	if s.current != NoTrack {
		if trk, err := s.playlist.At(s.current); err == nil {
			snap.Track = trk
		}
	}
	return snap
}

// publish broadcasts the current snapshot. Called only on the dispatch
// goroutine, so subscribers observe publications in mutation order. A
// publication produced while an outer broadcast is in flight (a command
// issued from inside a callback) is queued and delivered after the outer
// broadcast completes, preserving production order for every subscriber.
func (s *Store) publish(err error) {
	if s.pub == nil {
		return
	}

	s.pending = append(s.pending, publication{snap: s.snapshot(), err: err})
	if s.broadcasting {
		return
	}

	s.broadcasting = true
	for len(s.pending) > 0 {
		p := s.pending[0]
		s.pending = s.pending[1:]
		s.pub.Broadcast(p.snap, p.err)
	}
	s.broadcasting = false
}

// goroutineID parses the numeric ID of the calling goroutine from its
// stack header ("goroutine N [running]:"). Goroutine IDs are never reused
// by the runtime, so a stale match after Close cannot occur.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
