package backend

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"

	"displays/layout"
)

// X11 drives the display through the RandR extension. Enumeration records
// which crtc and which mode ids back each output so a later Apply can
// address the hardware again; those records are refreshed on every Outputs
// call.
type X11 struct {
	conn *xgb.Conn
	root xproto.Window

	configTimestamp xproto.Timestamp
	byName          map[string]x11Output
	modeIDs         map[modeKey]randr.Mode
	freeCrtcs       []randr.Crtc
}

type x11Output struct {
	id   randr.Output
	crtc randr.Crtc
}

// modeKey identifies a mode by geometry and refresh in millihertz, which is
// stable across the float conversion both directions.
type modeKey struct {
	width, height int
	refreshMilli  int
}

func keyFor(width, height int, refresh float64) modeKey {
	return modeKey{width, height, int(math.Round(refresh * 1000))}
}

// NewX11 connects to the X server and initializes RandR.
func NewX11() (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: init randr: %w", err)
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &X11{conn: conn, root: root}, nil
}

func (x *X11) Name() string { return "x11" }

// Close drops the X server connection.
func (x *X11) Close() {
	x.conn.Close()
}

// Outputs enumerates every connected output with at least one mode.
func (x *X11) Outputs() ([]layout.Output, error) {
	resources, err := randr.GetScreenResources(x.conn, x.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: screen resources: %w", err)
	}

	x.configTimestamp = resources.ConfigTimestamp
	x.byName = map[string]x11Output{}
	x.modeIDs = map[modeKey]randr.Mode{}
	x.freeCrtcs = nil

	modes := map[randr.Mode]layout.Mode{}
	for _, info := range resources.Modes {
		m := layout.Mode{
			Width:   int(info.Width),
			Height:  int(info.Height),
			Refresh: modeRefresh(info),
		}
		modes[randr.Mode(info.Id)] = m
		x.modeIDs[keyFor(m.Width, m.Height, m.Refresh)] = randr.Mode(info.Id)
	}

	crtcs := map[randr.Crtc]*randr.GetCrtcInfoReply{}
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(x.conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("x11: crtc info: %w", err)
		}
		crtcs[crtc] = info
		if info.Mode == 0 {
			x.freeCrtcs = append(x.freeCrtcs, crtc)
		}
	}

	var outputs []layout.Output
	for _, id := range resources.Outputs {
		info, err := randr.GetOutputInfo(x.conn, id, 0).Reply()
		if err != nil {
			return nil, fmt.Errorf("x11: output info: %w", err)
		}
		if info.Connection != randr.ConnectionConnected || len(info.Modes) == 0 {
			continue
		}

		out := layout.Output{
			Name:      string(info.Name),
			Scale:     1.0,
			Transform: layout.TransformNormal,
		}
		if info.MmWidth > 0 && info.MmHeight > 0 {
			out.PhysicalSize = fmt.Sprintf("%dmm x %dmm", info.MmWidth, info.MmHeight)
		}

		for i, mid := range info.Modes {
			m, ok := modes[mid]
			if !ok {
				continue
			}
			m.Preferred = i < int(info.NumPreferred)
			out.Modes = append(out.Modes, m)
		}
		if len(out.Modes) == 0 {
			continue
		}

		if crtc, ok := crtcs[info.Crtc]; ok && crtc.Mode != 0 {
			out.Enabled = true
			out.X, out.Y = int(crtc.X), int(crtc.Y)
			out.Transform = transformFromRotation(crtc.Rotation)
			if m, ok := modes[crtc.Mode]; ok {
				for i := range out.Modes {
					if out.Modes[i].Width == m.Width && out.Modes[i].Height == m.Height &&
						out.Modes[i].Refresh == m.Refresh {
						out.Modes[i].Current = true
						break
					}
				}
			}
		}
		ensureCurrent(out.Modes)

		x.byName[out.Name] = x11Output{id: id, crtc: info.Crtc}
		outputs = append(outputs, out)
	}

	log.Debug("enumerated outputs", "backend", "x11", "count", len(outputs))
	return outputs, nil
}

// Apply reconfigures each output's crtc in turn. Per-output scale is an
// arrangement-canvas concept only; RandR has no counterpart, so it is not
// applied here.
func (x *X11) Apply(outputs []layout.Output) error {
	if x.byName == nil {
		if _, err := x.Outputs(); err != nil {
			return err
		}
	}

	for i := range outputs {
		if err := x.applyOne(&outputs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (x *X11) applyOne(o *layout.Output) error {
	hw, ok := x.byName[o.Name]
	if !ok {
		return fmt.Errorf("x11: unknown output %q", o.Name)
	}

	if !o.Enabled {
		if hw.crtc == 0 {
			return nil
		}
		_, err := randr.SetCrtcConfig(x.conn, hw.crtc, 0, x.configTimestamp,
			0, 0, 0, randr.RotationRotate0, nil).Reply()
		if err != nil {
			return fmt.Errorf("x11: disable %s: %w", o.Name, err)
		}
		return nil
	}

	crtc := hw.crtc
	if crtc == 0 {
		if len(x.freeCrtcs) == 0 {
			return fmt.Errorf("x11: no free crtc for %s", o.Name)
		}
		crtc, x.freeCrtcs = x.freeCrtcs[0], x.freeCrtcs[1:]
	}

	m := o.CurrentMode()
	mode, ok := x.modeIDs[keyFor(m.Width, m.Height, m.Refresh)]
	if !ok {
		return fmt.Errorf("x11: no mode %s on %s", m, o.Name)
	}

	_, err := randr.SetCrtcConfig(x.conn, crtc, 0, x.configTimestamp,
		int16(o.X), int16(o.Y), mode, rotationFor(o.Transform),
		[]randr.Output{hw.id}).Reply()
	if err != nil {
		return fmt.Errorf("x11: configure %s: %w", o.Name, err)
	}
	return nil
}

// Watch subscribes to RandR change notifications and invokes onChange from a
// background goroutine whenever the screen configuration changes.
func (x *X11) Watch(onChange func()) error {
	err := randr.SelectInputChecked(x.conn, x.root,
		randr.NotifyMaskScreenChange|
			randr.NotifyMaskCrtcChange|
			randr.NotifyMaskOutputChange).Check()
	if err != nil {
		return fmt.Errorf("x11: subscribe to events: %w", err)
	}

	go func() {
		for {
			ev, err := x.conn.WaitForEvent()
			if err != nil {
				log.Error("waiting for X server event", "err", err)
				continue
			}
			if ev == nil {
				return
			}
			if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
				onChange()
			}
		}
	}()
	return nil
}

func modeRefresh(info randr.ModeInfo) float64 {
	total := int(info.Htotal) * int(info.Vtotal)
	if total == 0 {
		return 0
	}
	return float64(info.DotClock) / float64(total)
}

func rotationFor(t layout.Transform) uint16 {
	switch t {
	case layout.Transform90:
		return randr.RotationRotate90
	case layout.Transform180:
		return randr.RotationRotate180
	case layout.Transform270:
		return randr.RotationRotate270
	case layout.TransformFlipped:
		return randr.RotationRotate0 | randr.RotationReflectX
	case layout.TransformFlipped90:
		return randr.RotationRotate90 | randr.RotationReflectX
	case layout.TransformFlipped180:
		return randr.RotationRotate180 | randr.RotationReflectX
	case layout.TransformFlipped270:
		return randr.RotationRotate270 | randr.RotationReflectX
	}
	return randr.RotationRotate0
}

func transformFromRotation(r uint16) layout.Transform {
	flipped := r&(randr.RotationReflectX|randr.RotationReflectY) != 0
	switch {
	case r&randr.RotationRotate90 != 0:
		if flipped {
			return layout.TransformFlipped90
		}
		return layout.Transform90
	case r&randr.RotationRotate180 != 0:
		if flipped {
			return layout.TransformFlipped180
		}
		return layout.Transform180
	case r&randr.RotationRotate270 != 0:
		if flipped {
			return layout.TransformFlipped270
		}
		return layout.Transform270
	}
	if flipped {
		return layout.TransformFlipped
	}
	return layout.TransformNormal
}
