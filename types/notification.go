package types

import "github.com/bmcmahen/panresponder/gesture"

// Notification kinds, one per engine notification callback
const (
	NotifyGrant     = "grant"
	NotifyMove      = "move"
	NotifyRelease   = "release"
	NotifyTerminate = "terminate"
)

// GestureNotification is one engine notification on the wire
type GestureNotification struct {
	EngineID string        `json:"engineId"`
	Kind     string        `json:"kind"`
	State    gesture.State `json:"state"`
}
