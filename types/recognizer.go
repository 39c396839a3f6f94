package types

// RecognizerSpec declares a gesture recognizer's negotiation behavior so
// that engines can be built from configuration, a trace file, or an RPC
// request. Absent flags mean "reject" for the matching query.
type RecognizerSpec struct {
	// ID identifies the engine; empty means a random one is assigned
	ID string `json:"id,omitempty"`

	// EnableMouse accepts secondary pointer-device events
	EnableMouse bool `json:"enableMouse,omitempty"`

	// Query approvals, one per capture/bubble variant
	StartShouldSet        bool `json:"startShouldSet,omitempty"`
	StartShouldSetCapture bool `json:"startShouldSetCapture,omitempty"`
	MoveShouldSet         bool `json:"moveShouldSet,omitempty"`
	MoveShouldSetCapture  bool `json:"moveShouldSetCapture,omitempty"`

	// MoveThreshold is a drag dead zone: move queries only approve once
	// the pointer has traveled at least this far from the contact-down
	// position. Zero means no dead zone.
	MoveThreshold float64 `json:"moveThreshold,omitempty"`
}
