package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/screenplace/internal/platform"
)

// ErrDaemon wraps errors reported by the daemon itself, as opposed to
// transport failures.
var ErrDaemon = errors.New("daemon error")

// Client sends one request per connection to the daemon socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient returns a client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

func (c *Client) roundTrip(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	line, err := encodeLine(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	if _, err := conn.Write(line); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(reply, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.Status == statusError {
		return nil, fmt.Errorf("%w: %s", ErrDaemon, resp.Error)
	}
	return &resp, nil
}

func (c *Client) call(cmd CommandType, payload, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", cmd, err)
		}
		req.Payload = raw
	}

	resp, err := c.roundTrip(context.Background(), req)
	if err != nil || out == nil {
		return err
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("parse %s data: %w", cmd, err)
	}
	return nil
}

// Reload asks the daemon to re-read its config.
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus returns the daemon counters.
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetMonitors returns the monitors as the daemon sees them.
func (c *Client) GetMonitors() (*MonitorsData, error) {
	var data MonitorsData
	if err := c.call(CommandGetMonitors, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ApplyPreset asks the daemon to place a window. A zero window means the
// active one.
func (c *Client) ApplyPreset(preset string, window uint32) (*platform.Placement, error) {
	var placed platform.Placement
	if err := c.call(CommandApplyPreset, ApplyPresetPayload{Preset: preset, Window: window}, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}

// Ping reports whether the daemon answers.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
