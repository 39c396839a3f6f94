// Package trace parses recorded pointer traces: a set of recognizer
// declarations plus a WebDriver-style action list (pointerDown,
// pointerMove, pointerUp, pause) replayed on a virtual clock.
package trace

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmcmahen/panresponder/types"
)

// Trace is a recorded pointer session
type Trace struct {
	Recognizers []types.RecognizerSpec `json:"recognizers"`
	Actions     []types.PointerAction  `json:"actions"`
}

// Parse decodes and validates a JSON trace
func Parse(data []byte) (*Trace, error) {
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %v", err)
	}

	if len(tr.Recognizers) == 0 {
		return nil, fmt.Errorf("trace has no recognizers")
	}
	seen := make(map[string]bool)
	for _, r := range tr.Recognizers {
		if r.ID != "" && seen[r.ID] {
			return nil, fmt.Errorf("duplicate recognizer id %q", r.ID)
		}
		seen[r.ID] = true
	}

	for i, a := range tr.Actions {
		switch a.Type {
		case types.ActionPointerDown, types.ActionPointerMove, types.ActionPointerUp, types.ActionPause:
		default:
			return nil, fmt.Errorf("action %d: unknown type %q", i, a.Type)
		}
		if a.Duration < 0 {
			return nil, fmt.Errorf("action %d: negative duration", i)
		}
	}

	return &tr, nil
}

// Load reads and parses a trace file
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
