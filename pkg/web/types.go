package web

import (
	"encoding/json"
	"time"

	"github.com/inspectra/go-scopecam/pkg/engine"
)

// EventType identifies a websocket event from the daemon.
type EventType string

const (
	// TypeState carries a full control-surface snapshot.
	TypeState EventType = "state"
)

// Event is the wrapper for all websocket messages.
type Event struct {
	Type      EventType       `json:"type"`
	Timestamp int64           `json:"ts"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

func encodeStateEvent(snap engine.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		Type:      TypeState,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	})
}

// SetParamRequest is the body of POST /api/params/:name. Value sliders
// send value; the two mode toggles send auto.
type SetParamRequest struct {
	Value *float64 `json:"value,omitempty"`
	Auto  *bool    `json:"auto,omitempty"`
}

// SetModeRequest is the body of POST /api/mode.
type SetModeRequest struct {
	Mode string `json:"mode"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Mode    string `json:"mode"`
	Clients int    `json:"clients"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
