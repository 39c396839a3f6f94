package commands

import (
	"fmt"

	"github.com/bmcmahen/panresponder/types"
)

// CreateEngineCommand attaches a new engine built from a recognizer spec
func CreateEngineCommand(spec types.RecognizerSpec) *CommandResponse {
	registry := GetRegistry()
	if registry == nil {
		return NewErrorResponse(fmt.Errorf("no engine registry configured"))
	}

	id, err := registry.Create(spec)
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"id": id,
	})
}

// RemoveEngineCommand detaches an engine by id
func RemoveEngineCommand(id string) *CommandResponse {
	registry := GetRegistry()
	if registry == nil {
		return NewErrorResponse(fmt.Errorf("no engine registry configured"))
	}
	if id == "" {
		return NewErrorResponse(fmt.Errorf("engine id is required"))
	}

	if err := registry.Remove(id); err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Removed engine %s", id),
	})
}

// ListEnginesCommand returns the attached engines in attach order
func ListEnginesCommand() *CommandResponse {
	registry := GetRegistry()
	if registry == nil {
		return NewErrorResponse(fmt.Errorf("no engine registry configured"))
	}
	return NewSuccessResponse(registry.List())
}
