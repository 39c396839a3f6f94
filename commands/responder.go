package commands

import (
	"fmt"
)

// ResponderCommand returns the owner of the active claim, or an empty
// responder when no gesture is in flight
func ResponderCommand() *CommandResponse {
	registry := GetRegistry()
	if registry == nil {
		return NewErrorResponse(fmt.Errorf("no engine registry configured"))
	}

	owner := registry.Responder()
	return NewSuccessResponse(map[string]interface{}{
		"responder": owner,
		"active":    owner != "",
	})
}

// TerminateResponderCommand force-clears the active claim, invoking the
// holder's terminate notification. No-op when no claim exists.
func TerminateResponderCommand() *CommandResponse {
	registry := GetRegistry()
	if registry == nil {
		return NewErrorResponse(fmt.Errorf("no engine registry configured"))
	}

	registry.Terminate()
	return NewSuccessResponse(map[string]interface{}{
		"message": "Terminated current responder",
	})
}

// RecentGesturesCommand returns up to limit completed gestures, newest first
func RecentGesturesCommand(limit int) *CommandResponse {
	registry := GetRegistry()
	if registry == nil {
		return NewErrorResponse(fmt.Errorf("no engine registry configured"))
	}
	return NewSuccessResponse(registry.Recent(limit))
}
