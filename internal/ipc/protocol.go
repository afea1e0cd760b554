// Package ipc is the line-delimited JSON protocol between the CLI and a
// running daemon over a unix socket. Each connection carries one request
// line and one response line.
package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/screenplace/internal/monitor"
)

// CommandType names a request.
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandApplyPreset CommandType = "APPLY_PRESET"
)

const (
	statusOK    = "OK"
	statusError = "ERROR"
)

// Request is one client line.
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is one server line. Data is set on OK, Error on ERROR.
type Response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData answers GET_STATUS.
type StatusData struct {
	Backend        string `json:"backend"`
	ConfigPath     string `json:"config_path,omitempty"`
	HotkeysBound   int    `json:"hotkeys_bound"`
	PlacementCount int    `json:"placement_count"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	DaemonRunning  bool   `json:"daemon_running"`
}

// MonitorsData answers GET_MONITORS.
type MonitorsData struct {
	Monitors []monitor.Summary `json:"monitors"`
}

// ApplyPresetPayload is the payload of APPLY_PRESET. A zero window means the
// active window.
type ApplyPresetPayload struct {
	Preset string `json:"preset"`
	Window uint32 `json:"window,omitempty"`
}

func okResponse(data any) *Response {
	if data == nil {
		return &Response{Status: statusOK}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return errorResponse("marshal response data: %v", err)
	}
	return &Response{Status: statusOK, Data: raw}
}

func errorResponse(format string, args ...any) *Response {
	return &Response{Status: statusError, Error: fmt.Sprintf(format, args...)}
}

// encodeLine marshals v followed by the line terminator.
func encodeLine(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
