// Package backend connects the arrangement editor to the display server. A
// Provider enumerates the connected outputs and applies an arrangement to
// the live session; SaveConf persists an arrangement to the compositor's
// monitors file. Apply and save are independent: neither implies the other.
package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"displays/layout"
	"displays/settings"
)

// ErrNoBackend means neither a Wayland nor an X11 session was found.
var ErrNoBackend = errors.New("backend: no display server detected")

// Provider talks to one kind of display server.
type Provider interface {
	// Name identifies the backend, e.g. "wlr" or "x11".
	Name() string

	// Outputs enumerates the connected outputs. Every returned output has
	// exactly one current mode.
	Outputs() ([]layout.Output, error)

	// Apply pushes an already-normalized arrangement to the live display
	// server. On failure nothing is assumed about partial application; the
	// caller's in-memory arrangement stays as it was.
	Apply(outputs []layout.Output) error
}

// Watcher is implemented by providers that can report hardware changes, so
// the session can re-enumerate when outputs come and go.
type Watcher interface {
	Watch(onChange func()) error
}

// Detect picks a provider. An explicit backend in the settings wins;
// otherwise the session environment decides.
func Detect(cfg settings.AppSettings) (Provider, error) {
	switch cfg.Backend {
	case "wlr":
		return NewWLR(), nil
	case "x11":
		return NewX11()
	case "":
	default:
		return nil, fmt.Errorf("backend: unknown backend %q", cfg.Backend)
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return NewWLR(), nil
	}
	if os.Getenv("DISPLAY") != "" {
		return NewX11()
	}
	return nil, ErrNoBackend
}

// SaveConf writes the arrangement to cfg.MonitorsConfPath, one output
// directive per line in the form compositors driven by wlr-randr consume.
// The caller normalizes first; the conf format rejects negative positions.
func SaveConf(outputs []layout.Output, cfg settings.AppSettings) error {
	var b strings.Builder
	for i := range outputs {
		b.WriteString(confLine(&outputs[i]))
		b.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(cfg.MonitorsConfPath), 0o755); err != nil {
		return fmt.Errorf("backend: save: %w", err)
	}
	if err := os.WriteFile(cfg.MonitorsConfPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("backend: save: %w", err)
	}
	return nil
}

func confLine(o *layout.Output) string {
	if !o.Enabled {
		return fmt.Sprintf("output %s disable", o.Name)
	}
	m := o.CurrentMode()
	return fmt.Sprintf("output %s enable mode %dx%d@%.3f position %d,%d scale %.2f transform %s",
		o.Name, m.Width, m.Height, m.Refresh, o.X, o.Y, o.Scale, o.Transform)
}

// ensureCurrent establishes the exactly-one-current invariant on freshly
// enumerated modes: servers occasionally report an output without flagging a
// current mode, in which case the preferred mode, or failing that the first,
// stands in.
func ensureCurrent(modes []layout.Mode) {
	current := -1
	for i := range modes {
		if modes[i].Current {
			if current >= 0 {
				modes[i].Current = false
				continue
			}
			current = i
		}
	}
	if current >= 0 || len(modes) == 0 {
		return
	}
	for i := range modes {
		if modes[i].Preferred {
			modes[i].Current = true
			return
		}
	}
	modes[0].Current = true
}
