package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmcmahen/panresponder/commands"
)

// newTestMux wires the HTTP surface the way StartServer does, against a
// fresh registry, without binding a real port
func newTestMux(t *testing.T) (*http.ServeMux, *bool) {
	t.Helper()

	registry, err := commands.NewEngineRegistry(0)
	require.NoError(t, err)
	commands.SetRegistry(registry)
	t.Cleanup(func() { commands.SetRegistry(nil) })

	shutdownRequested := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", func(w http.ResponseWriter, r *http.Request) {
		handleJSONRPC(w, r, func() { shutdownRequested = true })
	})
	return mux, &shutdownRequested
}

func rpcCall(t *testing.T, url string, method string, params interface{}) JSONRPCResponse {
	t.Helper()

	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		require.NoError(t, err)
		raw = data
	}

	body, err := json.Marshal(JSONRPCRequest{JSONRPC: "2.0", Method: method, Params: raw, ID: 1})
	require.NoError(t, err)

	resp, err := http.Post(url+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	return rpcResp
}

func TestServerBanner(t *testing.T) {
	mux, _ := newTestMux(t)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var banner map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&banner))
	assert.Equal(t, "ok", banner["status"])
}

func TestServerRejectsInvalidRequests(t *testing.T) {
	mux, _ := newTestMux(t)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	// not json
	resp, err := http.Post(ts.URL+"/rpc", "application/json", bytes.NewReader([]byte("{nope")))
	require.NoError(t, err)
	var rpcResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	resp.Body.Close()
	require.NotNil(t, rpcResp.Error)

	// wrong version
	body, _ := json.Marshal(JSONRPCRequest{JSONRPC: "1.0", Method: "engines", ID: 1})
	resp, err = http.Post(ts.URL+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	resp.Body.Close()
	require.NotNil(t, rpcResp.Error)

	// unknown method
	rpcResp = rpcCall(t, ts.URL, "does_not_exist", nil)
	require.NotNil(t, rpcResp.Error)
	errObj := rpcResp.Error.(map[string]interface{})
	assert.Equal(t, float64(ErrCodeMethodNotFound), errObj["code"])
}

func TestServerGestureFlow(t *testing.T) {
	mux, _ := newTestMux(t)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	created := rpcCall(t, ts.URL, "engine_create", map[string]interface{}{
		"id":             "card",
		"startShouldSet": true,
	})
	require.Nil(t, created.Error)

	down := rpcCall(t, ts.URL, "pointer", map[string]interface{}{
		"type": "down", "x": 0.0, "y": 0.0, "timestampMs": 1000,
	})
	require.Nil(t, down.Error)
	result := down.Result.(map[string]interface{})
	assert.Equal(t, "card", result["responder"])

	rpcCall(t, ts.URL, "pointer", map[string]interface{}{
		"type": "move", "x": 3.0, "y": 4.0, "timestampMs": 1100,
	})
	up := rpcCall(t, ts.URL, "pointer", map[string]interface{}{
		"type": "up", "x": 3.0, "y": 4.0, "timestampMs": 1200,
	})
	require.Nil(t, up.Error)

	responder := rpcCall(t, ts.URL, "responder_get", nil)
	require.Nil(t, responder.Error)
	assert.Equal(t, false, responder.Result.(map[string]interface{})["active"])

	recent := rpcCall(t, ts.URL, "gestures_recent", map[string]int{"limit": 10})
	require.Nil(t, recent.Error)
	records := recent.Result.([]interface{})
	require.Len(t, records, 1)
	record := records[0].(map[string]interface{})
	assert.Equal(t, "card", record["engineId"])
	assert.Equal(t, "released", record["outcome"])
	assert.InDelta(t, 5.0, record["distance"].(float64), 1e-9)
}

func TestServerReplayMethod(t *testing.T) {
	mux, _ := newTestMux(t)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp := rpcCall(t, ts.URL, "replay", map[string]interface{}{
		"recognizers": []map[string]interface{}{{"id": "g", "startShouldSet": true}},
		"actions": []map[string]interface{}{
			{"type": "pointerDown", "x": 0, "y": 0},
			{"type": "pointerMove", "duration": 100, "x": 10, "y": 0},
			{"type": "pointerUp"},
		},
	})
	require.Nil(t, resp.Error)

	notifications := resp.Result.([]interface{})
	require.Len(t, notifications, 3)
	first := notifications[0].(map[string]interface{})
	assert.Equal(t, "grant", first["kind"])
}

func TestServerShutdownMethod(t *testing.T) {
	mux, requested := newTestMux(t)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	resp := rpcCall(t, ts.URL, "server.shutdown", nil)
	require.Nil(t, resp.Error)
	assert.True(t, *requested)
}

func TestServerAuthMiddleware(t *testing.T) {
	mux, _ := newTestMux(t)
	ts := httptest.NewServer(authMiddleware(mux, "sekret"))
	defer ts.Close()

	// banner stays open
	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// rpc without the key is rejected
	body, _ := json.Marshal(JSONRPCRequest{JSONRPC: "2.0", Method: "engines", ID: 1})
	resp, err = http.Post(ts.URL+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// with the key it goes through
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/rpc", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer sekret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
