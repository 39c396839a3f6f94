package commands

import (
	"fmt"

	"github.com/bmcmahen/panresponder/types"
)

// PointerCommand routes a single pointer event through the engine hub and
// reports who holds the claim afterwards
func PointerCommand(ev types.PointerEvent) *CommandResponse {
	registry := GetRegistry()
	if registry == nil {
		return NewErrorResponse(fmt.Errorf("no engine registry configured"))
	}

	if err := registry.Pointer(ev); err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"responder": registry.Responder(),
	})
}
