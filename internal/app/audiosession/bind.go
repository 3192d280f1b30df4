package audiosession

import (
	"context"

	zlog "github.com/rs/zerolog/log"
)

// Handler receives audio session events. Implemented by the playback store,
// which serializes the calls onto its own dispatch context.
type Handler interface {
	HandleInterruptionBegan()
	HandleInterruptionEnded(shouldResume bool)
	HandleRouteChange(reason RouteReason)
}

// Bind drains events from the source channel and forwards them to the
// handler until the context is cancelled or the channel is closed.
// The source may deliver from any goroutine; the handler is responsible
// for redispatching onto its serialized context.
func Bind(ctx context.Context, events <-chan Event, h Handler) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			zlog.Debug().Msgf("audio session event: kind=%s", ev.Kind)
			switch ev.Kind {
			case InterruptionBegan:
				h.HandleInterruptionBegan()
			case InterruptionEnded:
				h.HandleInterruptionEnded(ev.ShouldResume)
			case RouteChanged:
				h.HandleRouteChange(ev.RouteReason)
			}
		case <-ctx.Done():
			return
		}
	}
}
