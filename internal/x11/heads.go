package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"

	"github.com/1broseidon/screenplace/internal/geometry"
	"github.com/1broseidon/screenplace/internal/monitor"
)

// Xinerama heads have no server-side id; they get handles above the 32-bit
// XID range so they never collide with RandR CRTC ids.
const xineramaHandleBase monitor.Handle = 1 << 32

// head is one active display as reported by the server.
type head struct {
	handle  monitor.Handle
	bounds  geometry.Rect
	name    string
	primary bool
	// Physical size of the first output, zero when unknown.
	mmWidth  uint32
	mmHeight uint32
}

// heads lists the active displays in server order.
func (c *Connection) heads() ([]head, error) {
	switch {
	case c.randr:
		hs, err := c.randrHeads()
		if err == nil && len(hs) > 0 {
			return hs, nil
		}
		if !c.xinerama {
			return hs, err
		}
		c.logger.Debug("randr returned no heads, trying xinerama", "error", err)
		return c.xineramaHeads()
	case c.xinerama:
		return c.xineramaHeads()
	default:
		return nil, fmt.Errorf("neither randr 1.2 nor xinerama is available")
	}
}

func (c *Connection) screenResources() (*randr.GetScreenResourcesCurrentReply, error) {
	conn := c.XUtil.Conn()
	if c.randrCurrent {
		return randr.GetScreenResourcesCurrent(conn, c.Root).Reply()
	}
	res, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, err
	}
	return &randr.GetScreenResourcesCurrentReply{
		Timestamp:       res.Timestamp,
		ConfigTimestamp: res.ConfigTimestamp,
		Crtcs:           res.Crtcs,
		Outputs:         res.Outputs,
	}, nil
}

func (c *Connection) randrHeads() ([]head, error) {
	conn := c.XUtil.Conn()

	resources, err := c.screenResources()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if p, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primaryOutput = p.Output
	}

	var heads []head
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			c.logger.Debug("skipping crtc", "crtc", uint32(crtc), "error", err)
			continue
		}

		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		h := head{
			handle: monitor.Handle(crtc),
			bounds: geometry.Rect{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
			name: fmt.Sprintf("CRTC-%d", crtc),
		}
		for _, out := range info.Outputs {
			if out == primaryOutput && primaryOutput != 0 {
				h.primary = true
			}
		}
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			h.name = string(out.Name)
			h.mmWidth, h.mmHeight = out.MmWidth, out.MmHeight
		}
		heads = append(heads, h)
	}

	markFirstPrimary(heads)
	return heads, nil
}

func (c *Connection) xineramaHeads() ([]head, error) {
	rects, err := xinerama.PhysicalHeads(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to query xinerama heads: %w", err)
	}

	heads := make([]head, 0, len(rects))
	for i, r := range rects {
		heads = append(heads, head{
			handle: xineramaHandleBase + monitor.Handle(i),
			bounds: fromXRect(r),
			name:   fmt.Sprintf("XINERAMA-%d", i),
		})
	}
	markFirstPrimary(heads)
	return heads, nil
}

// markFirstPrimary flags the first head when the server names no primary.
func markFirstPrimary(heads []head) {
	for _, h := range heads {
		if h.primary {
			return
		}
	}
	if len(heads) > 0 {
		heads[0].primary = true
	}
}

func (c *Connection) findHead(h monitor.Handle) (head, error) {
	heads, err := c.heads()
	if err != nil {
		return head{}, err
	}
	for _, hd := range heads {
		if hd.handle == h {
			return hd, nil
		}
	}
	return head{}, fmt.Errorf("%w: handle %d", monitor.ErrMonitorNotFound, h)
}

func candidates(heads []head) []monitor.Candidate {
	out := make([]monitor.Candidate, len(heads))
	for i, h := range heads {
		out[i] = monitor.Candidate{Handle: h.handle, Bounds: h.bounds, Primary: h.primary}
	}
	return out
}

func fromXRect(r xrect.Rect) geometry.Rect {
	return geometry.Rect{X: r.X(), Y: r.Y(), Width: r.Width(), Height: r.Height()}
}
