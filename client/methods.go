package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bmcmahen/panresponder/history"
	"github.com/bmcmahen/panresponder/types"
)

// EngineInfo mirrors one entry of the server's engines listing
type EngineInfo struct {
	ID     string               `json:"id"`
	Holder bool                 `json:"holder"`
	Spec   types.RecognizerSpec `json:"spec"`
}

func (c *Client) CreateEngine(spec types.RecognizerSpec) (string, error) {
	result, err := c.call("engine_create", spec)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		return "", fmt.Errorf("failed to parse engine_create response: %w", err)
	}
	return resp.ID, nil
}

func (c *Client) RemoveEngine(id string) error {
	_, err := c.call("engine_remove", map[string]string{"id": id})
	return err
}

func (c *Client) ListEngines() ([]EngineInfo, error) {
	result, err := c.call("engines", nil)
	if err != nil {
		return nil, err
	}

	var engines []EngineInfo
	if err := json.Unmarshal(result, &engines); err != nil {
		return nil, fmt.Errorf("failed to parse engines response: %w", err)
	}
	return engines, nil
}

// Pointer feeds one pointer event into the server's gesture hub and
// returns the claim holder after dispatch, or "" when unclaimed
func (c *Client) Pointer(ev types.PointerEvent) (string, error) {
	result, err := c.call("pointer", ev)
	if err != nil {
		return "", err
	}

	var resp struct {
		Responder string `json:"responder"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		return "", fmt.Errorf("failed to parse pointer response: %w", err)
	}
	return resp.Responder, nil
}

func (c *Client) Responder() (string, bool, error) {
	result, err := c.call("responder_get", nil)
	if err != nil {
		return "", false, err
	}

	var resp struct {
		Responder string `json:"responder"`
		Active    bool   `json:"active"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		return "", false, fmt.Errorf("failed to parse responder_get response: %w", err)
	}
	return resp.Responder, resp.Active, nil
}

func (c *Client) TerminateResponder() error {
	_, err := c.call("responder_terminate", nil)
	return err
}

func (c *Client) RecentGestures(limit int) ([]history.Record, error) {
	result, err := c.call("gestures_recent", map[string]int{"limit": limit})
	if err != nil {
		return nil, err
	}

	var records []history.Record
	if err := json.Unmarshal(result, &records); err != nil {
		return nil, fmt.Errorf("failed to parse gestures_recent response: %w", err)
	}
	return records, nil
}

// Replay runs a recorded trace on the server against a throwaway
// registry and returns the notifications it produced. Traces can take
// a while to validate and run, so this uses a generous timeout.
func (c *Client) Replay(raw json.RawMessage) ([]types.GestureNotification, error) {
	result, err := c.callWithTimeout("replay", raw, 30*time.Second)
	if err != nil {
		return nil, err
	}

	var notifications []types.GestureNotification
	if err := json.Unmarshal(result, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse replay response: %w", err)
	}
	return notifications, nil
}

// Subscribe asks the server to push gesture notifications over this
// connection; they arrive on Notifications()
func (c *Client) Subscribe() error {
	_, err := c.call("subscribe", nil)
	return err
}

func (c *Client) Unsubscribe() error {
	_, err := c.call("unsubscribe", nil)
	return err
}
