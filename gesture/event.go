package gesture

import "time"

// Source identifies which input device produced an event
type Source string

const (
	// SourceTouch is the primary touch-like input source
	SourceTouch Source = "touch"
	// SourceMouse is the secondary pointer-device source, processed only
	// when an engine is configured with EnableMouse
	SourceMouse Source = "mouse"
)

// Event is a normalized raw input event delivered to an engine by the host
// event-delivery mechanism. For multi-point sources only the first touch
// point is read.
type Event struct {
	// Touches holds the contact points; only Touches[0] is tracked
	Touches []Point

	// Cancelable marks events whose default action can be suppressed
	Cancelable bool

	// SuppressDefault is invoked on cancelable start/end events before
	// processing. May be nil.
	SuppressDefault func()

	// Source is the input device that produced the event; empty means touch
	Source Source

	// Time is the event timestamp; the engine stamps time.Now() when zero
	Time time.Time
}

// Point returns the tracked contact point, or a zero Point if there is none
func (e *Event) Point() Point {
	if e == nil || len(e.Touches) == 0 {
		return Point{}
	}
	return e.Touches[0]
}

// timestamp returns the event time, defaulting to now
func (e *Event) timestamp() time.Time {
	if e == nil || e.Time.IsZero() {
		return time.Now()
	}
	return e.Time
}

// suppress invokes the default-suppression action on cancelable events
func (e *Event) suppress() {
	if e != nil && e.Cancelable && e.SuppressDefault != nil {
		e.SuppressDefault()
	}
}

// fromMouse reports whether the event came from the secondary pointer device
func (e *Event) fromMouse() bool {
	return e != nil && e.Source == SourceMouse
}
