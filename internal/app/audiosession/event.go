// Package audiosession models OS-level audio session events:
// playback interruptions and output route changes.
package audiosession

// EventKind represents an audio session event kind.
type EventKind int

const (
	InterruptionBegan EventKind = iota // Another process took exclusive audio output
	InterruptionEnded                  // The interruption is over
	RouteChanged                       // The audio output route changed
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case InterruptionBegan:
		return "interruption_began"
	case InterruptionEnded:
		return "interruption_ended"
	case RouteChanged:
		return "route_changed"
	default:
		return "unknown"
	}
}

// RouteReason represents the reason for a route change.
type RouteReason int

const (
	RouteUnknown            RouteReason = iota // Unspecified reason
	RouteDeviceUnavailable                     // Output device disappeared (headphones unplugged)
	RouteNewDeviceAvailable                    // A new output device appeared
	RouteOverride                              // Output was overridden by the host
)

// String returns the string representation of the route reason.
func (r RouteReason) String() string {
	switch r {
	case RouteDeviceUnavailable:
		return "device_unavailable"
	case RouteNewDeviceAvailable:
		return "new_device_available"
	case RouteOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Event represents a single audio session event.
type Event struct {
	Kind         EventKind
	ShouldResume bool        // InterruptionEnded: whether playback may resume
	RouteReason  RouteReason // RouteChanged: why the route changed
}
