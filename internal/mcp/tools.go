package mcp

import (
	"context"
	"math"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/screenplace/internal/config"
	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	all := s.session.Monitors.All()
	out := ListMonitorsOutput{
		Backend:      s.session.Backend.Name(),
		MultiMonitor: s.session.Monitors.Capabilities().MultiMonitor,
		Monitors:     make([]monitor.Summary, len(all)),
	}
	for i, m := range all {
		out.Monitors[i] = m.Summary()
	}
	return nil, out, nil
}

func (s *Server) handleMonitorAt(_ context.Context, _ *mcpsdk.CallToolRequest, args MonitorAtInput) (*mcpsdk.CallToolResult, MonitorAtOutput, error) {
	var m monitor.Monitor
	if args.Logical {
		m = s.session.Monitors.FromLogicalPoint(geometry.LogicalPoint{X: args.X, Y: args.Y})
	} else {
		m = s.session.Monitors.FromPoint(geometry.Point{
			X: int(math.Round(args.X)),
			Y: int(math.Round(args.Y)),
		})
	}
	return nil, MonitorAtOutput{Monitor: m.Summary()}, nil
}

func (s *Server) handleComputePlacement(_ context.Context, _ *mcpsdk.CallToolRequest, args ComputePlacementInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	p, err := resolvePreset(s.session.Config, args.PlacementInput)
	if err != nil {
		return nil, PlacementOutput{}, err
	}
	placed, err := s.session.Compute(p)
	if err != nil {
		return nil, PlacementOutput{}, err
	}
	return nil, PlacementOutput{Placement: placed}, nil
}

func (s *Server) handlePlaceWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args PlaceWindowInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	p, err := resolvePreset(s.session.Config, args.PlacementInput)
	if err != nil {
		return nil, PlacementOutput{}, err
	}
	placed, err := s.session.Apply(p, monitor.WindowHandle(args.Window))
	if err != nil {
		return nil, PlacementOutput{}, err
	}
	s.logger.Debug("place_window", "window", uint32(placed.Window), "anchor", string(placed.Anchor))
	return nil, PlacementOutput{Placement: placed}, nil
}

func resolvePreset(cfg *config.Config, in PlacementInput) (config.Preset, error) {
	return cfg.Overlay(in.Preset, config.Preset{
		Anchor:        in.Anchor,
		Width:         in.Width,
		Height:        in.Height,
		WidthPercent:  in.WidthPercent,
		HeightPercent: in.HeightPercent,
		Monitor:       in.Monitor,
		Clamp:         in.Clamp,
		WorkArea:      in.WorkArea,
	})
}
