package commands

import (
	"time"

	"github.com/bmcmahen/panresponder/trace"
	"github.com/bmcmahen/panresponder/types"
)

// replayEpoch anchors the virtual clock so replayed kinematics are
// deterministic regardless of wall time. Nonzero so the first event never
// falls back to wall-clock stamping.
var replayEpoch = time.Unix(1, 0).UTC()

// ReplayCommand runs a recorded trace against an isolated registry and
// returns every notification the engines fired, in order. The live
// registry, if any, is untouched.
func ReplayCommand(tr *trace.Trace) *CommandResponse {
	registry, err := NewEngineRegistry(0)
	if err != nil {
		return NewErrorResponse(err)
	}

	var notifications []types.GestureNotification
	registry.SetSink(func(n types.GestureNotification) {
		notifications = append(notifications, n)
	})

	for _, spec := range tr.Recognizers {
		if _, err := registry.Create(spec); err != nil {
			return NewErrorResponse(err)
		}
	}

	clock := replayEpoch
	var pos struct{ x, y float64 }
	down := false

	for _, action := range tr.Actions {
		clock = clock.Add(time.Duration(action.Duration) * time.Millisecond)

		switch action.Type {
		case types.ActionPause:
			continue
		case types.ActionPointerMove:
			pos.x, pos.y = action.X, action.Y
			if !down {
				// hover: positions the pointer without a contact
				continue
			}
		case types.ActionPointerDown:
			down = true
		case types.ActionPointerUp:
			down = false
		}

		ev := types.PointerEvent{
			X:           pos.x,
			Y:           pos.y,
			TimestampMs: clock.UnixMilli(),
		}
		switch action.Type {
		case types.ActionPointerDown:
			ev.Type = types.PointerDown
		case types.ActionPointerMove:
			ev.Type = types.PointerMove
		case types.ActionPointerUp:
			ev.Type = types.PointerUp
		}

		if err := registry.Pointer(ev); err != nil {
			return NewErrorResponse(err)
		}
	}

	return NewSuccessResponse(notifications)
}
