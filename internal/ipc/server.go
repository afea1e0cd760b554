package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/screenplace/internal/logging"
	"github.com/1broseidon/screenplace/internal/monitor"
	"github.com/1broseidon/screenplace/internal/platform"
)

// Service is what the daemon exposes over the socket.
type Service interface {
	Status() StatusData
	Monitors() []monitor.Summary
	ApplyPreset(name string, w monitor.WindowHandle) (platform.Placement, error)
	Reload() error
}

type handlerFunc func(payload json.RawMessage) (any, error)

// readTimeout bounds how long a client may take to send its request line.
const readTimeout = 5 * time.Second

// Accept failures back off from minAcceptDelay, doubling up to maxAcceptDelay.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Server answers requests on a unix socket, one goroutine per connection.
type Server struct {
	socketPath string
	service    Service
	handlers   map[CommandType]handlerFunc
	logger     *slog.Logger

	listener net.Listener
	conns    sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
}

// NewServer prepares a server on socketPath.
func NewServer(socketPath string, service Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		socketPath: socketPath,
		service:    service,
		logger:     logger,
		done:       make(chan struct{}),
	}
	s.handlers = map[CommandType]handlerFunc{
		CommandReload: func(json.RawMessage) (any, error) {
			if err := service.Reload(); err != nil {
				return nil, fmt.Errorf("reload config: %w", err)
			}
			return nil, nil
		},
		CommandGetStatus: func(json.RawMessage) (any, error) {
			return service.Status(), nil
		},
		CommandGetMonitors: func(json.RawMessage) (any, error) {
			return MonitorsData{Monitors: service.Monitors()}, nil
		},
		CommandApplyPreset: s.applyPreset,
	}
	return s
}

// Start binds the socket, replacing a stale one, and accepts in the
// background. The socket is only accessible to the owner.
func (s *Server) Start() error {
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		ln.Close()
		return fmt.Errorf("restrict socket permissions: %w", err)
	}
	s.listener = ln
	s.logger.Info("IPC server listening", "socket", s.socketPath)

	s.conns.Add(1)
	go s.accept()
	return nil
}

func (s *Server) accept() {
	defer s.conns.Done()
	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay = min(2*delay, maxAcceptDelay)
			}
			s.logger.Warn("IPC accept error", "error", err, "retry_in", delay)
			select {
			case <-s.done:
				return
			case <-time.After(delay):
			}
			continue
		}
		delay = 0
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.serve(conn)
		}()
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if len(line) == 0 && err != nil {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	var resp *Response
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		resp = errorResponse("invalid request: %v", err)
	} else {
		resp = s.handleCommand(&req)
	}

	out, err := encodeLine(resp)
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}
	if _, err := conn.Write(out); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC command", "command", string(req.Command))

	h, ok := s.handlers[req.Command]
	if !ok {
		return errorResponse("unknown command: %s", req.Command)
	}
	data, err := h(req.Payload)
	if err != nil {
		return errorResponse("%v", err)
	}
	return okResponse(data)
}

func (s *Server) applyPreset(payload json.RawMessage) (any, error) {
	var req ApplyPresetPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("invalid apply payload: %w", err)
	}
	if req.Preset == "" {
		return nil, errors.New("preset is required")
	}
	placed, err := s.service.ApplyPreset(req.Preset, monitor.WindowHandle(req.Window))
	if err != nil {
		return nil, fmt.Errorf("apply preset %q: %w", req.Preset, err)
	}
	return placed, nil
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket file. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.conns.Wait()
		os.Remove(s.socketPath)
	})
}
