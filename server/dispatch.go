package server

import (
	"encoding/json"
	"fmt"

	"github.com/bmcmahen/panresponder/commands"
	"github.com/bmcmahen/panresponder/trace"
	"github.com/bmcmahen/panresponder/types"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// GetMethodRegistry returns a map of method names to handler functions.
// This is used by both the HTTP endpoint and websocket connections.
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"engines":             handleEngines,
		"engine_create":       handleEngineCreate,
		"engine_remove":       handleEngineRemove,
		"pointer":             handlePointer,
		"responder_get":       handleResponderGet,
		"responder_terminate": handleResponderTerminate,
		"gestures_recent":     handleGesturesRecent,
		"replay":              handleReplay,
	}
}

// Execute dispatches a method call using the registry
func Execute(method string, params json.RawMessage) (interface{}, error) {
	registry := GetMethodRegistry()

	handler, exists := registry[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}

// unwrap converts a command envelope into a JSON-RPC result or error
func unwrap(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleEngines(json.RawMessage) (interface{}, error) {
	return unwrap(commands.ListEnginesCommand())
}

func handleEngineCreate(params json.RawMessage) (interface{}, error) {
	var spec types.RecognizerSpec
	if len(params) > 0 {
		if err := json.Unmarshal(params, &spec); err != nil {
			return nil, fmt.Errorf("invalid parameters: %v", err)
		}
	}
	return unwrap(commands.CreateEngineCommand(spec))
}

type engineRemoveParams struct {
	ID string `json:"id"`
}

func handleEngineRemove(params json.RawMessage) (interface{}, error) {
	var p engineRemoveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: id", err)
	}
	return unwrap(commands.RemoveEngineCommand(p.ID))
}

func handlePointer(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: type, x, y")
	}

	var ev types.PointerEvent
	if err := json.Unmarshal(params, &ev); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: type, x, y", err)
	}
	return unwrap(commands.PointerCommand(ev))
}

func handleResponderGet(json.RawMessage) (interface{}, error) {
	return unwrap(commands.ResponderCommand())
}

func handleResponderTerminate(json.RawMessage) (interface{}, error) {
	return unwrap(commands.TerminateResponderCommand())
}

type gesturesRecentParams struct {
	Limit int `json:"limit"`
}

func handleGesturesRecent(params json.RawMessage) (interface{}, error) {
	var p gesturesRecentParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %v", err)
		}
	}
	return unwrap(commands.RecentGesturesCommand(p.Limit))
}

func handleReplay(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: recognizers, actions")
	}

	tr, err := trace.Parse(params)
	if err != nil {
		return nil, err
	}
	return unwrap(commands.ReplayCommand(tr))
}
