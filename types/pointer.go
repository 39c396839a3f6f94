package types

// Pointer action types, matching the recorded trace format
const (
	ActionPointerDown = "pointerDown"
	ActionPointerMove = "pointerMove"
	ActionPointerUp   = "pointerUp"
	ActionPause       = "pause"
)

// PointerAction represents a single action in a recorded pointer trace.
// Duration is virtual time in milliseconds spent on the action; positions
// are absolute coordinates.
type PointerAction struct {
	Type     string  `json:"type"`
	Duration int     `json:"duration"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// PointerEvent is a single normalized pointer event on the wire.
// Type is "down", "move" or "up"; TimestampMs is milliseconds since the
// Unix epoch, zero meaning "now".
type PointerEvent struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Source      string  `json:"source,omitempty"` // "touch" (default) or "mouse"
	Cancelable  bool    `json:"cancelable,omitempty"`
	TimestampMs int64   `json:"timestampMs,omitempty"`
}

// Pointer event types
const (
	PointerDown = "down"
	PointerMove = "move"
	PointerUp   = "up"
)
