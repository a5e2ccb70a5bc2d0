package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"displays/layout"
)

// WLR drives wlroots compositors through the wlr-randr command line tool,
// the stable management interface those compositors expose.
type WLR struct {
	// run invokes wlr-randr; swapped out in tests.
	run func(args ...string) ([]byte, error)
}

// NewWLR returns a provider backed by the wlr-randr binary on PATH.
func NewWLR() *WLR {
	return &WLR{run: runWlrRandr}
}

func (w *WLR) Name() string { return "wlr" }

func runWlrRandr(args ...string) ([]byte, error) {
	out, err := exec.Command("wlr-randr", args...).Output()
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) && len(exit.Stderr) > 0 {
			return nil, fmt.Errorf("wlr-randr: %s", bytes.TrimSpace(exit.Stderr))
		}
		return nil, fmt.Errorf("wlr-randr: %w", err)
	}
	return out, nil
}

// wlrOutput mirrors one entry of `wlr-randr --json`.
type wlrOutput struct {
	Name         string  `json:"name"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	PhysicalSize wlrSize `json:"physical_size"`
	Enabled      bool    `json:"enabled"`
	Modes        []struct {
		Width     int     `json:"width"`
		Height    int     `json:"height"`
		Refresh   float64 `json:"refresh"`
		Preferred bool    `json:"preferred"`
		Current   bool    `json:"current"`
	} `json:"modes"`
	Position struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"position"`
	Transform string  `json:"transform"`
	Scale     float64 `json:"scale"`
}

type wlrSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Outputs runs `wlr-randr --json` and converts every entry with at least one
// mode into the layout model.
func (w *WLR) Outputs() ([]layout.Output, error) {
	raw, err := w.run("--json")
	if err != nil {
		return nil, err
	}

	var entries []wlrOutput
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("wlr-randr: parse output list: %w", err)
	}

	outputs := make([]layout.Output, 0, len(entries))
	for _, e := range entries {
		if len(e.Modes) == 0 {
			log.Debug("skipping output without modes", "output", e.Name)
			continue
		}
		outputs = append(outputs, e.toOutput())
	}
	log.Debug("enumerated outputs", "backend", "wlr", "count", len(outputs))
	return outputs, nil
}

func (e wlrOutput) toOutput() layout.Output {
	out := layout.Output{
		Name:        e.Name,
		Description: strings.TrimSpace(e.Make + " " + e.Model),
		X:           e.Position.X,
		Y:           e.Position.Y,
		Scale:       e.Scale,
		Transform:   layout.Transform(e.Transform),
		Enabled:     e.Enabled,
	}
	if e.PhysicalSize.Width > 0 && e.PhysicalSize.Height > 0 {
		out.PhysicalSize = fmt.Sprintf("%dmm x %dmm", e.PhysicalSize.Width, e.PhysicalSize.Height)
	}
	if out.Scale <= 0 {
		out.Scale = 1.0
	}
	if out.Transform == "" {
		out.Transform = layout.TransformNormal
	}

	out.Modes = make([]layout.Mode, len(e.Modes))
	for i, m := range e.Modes {
		out.Modes[i] = layout.Mode{
			Width:     m.Width,
			Height:    m.Height,
			Refresh:   m.Refresh,
			Current:   m.Current,
			Preferred: m.Preferred,
		}
	}
	ensureCurrent(out.Modes)
	return out
}

// Apply pushes the arrangement in a single wlr-randr invocation so the
// compositor sees one atomic configuration.
func (w *WLR) Apply(outputs []layout.Output) error {
	args := applyArgs(outputs)
	log.Debug("applying arrangement", "backend", "wlr", "args", strings.Join(args, " "))

	if _, err := w.run(args...); err != nil {
		return err
	}
	return nil
}

func applyArgs(outputs []layout.Output) []string {
	var args []string
	for i := range outputs {
		o := &outputs[i]
		args = append(args, "--output", o.Name)
		if !o.Enabled {
			args = append(args, "--off")
			continue
		}
		m := o.CurrentMode()
		args = append(args,
			"--on",
			"--mode", fmt.Sprintf("%dx%d@%.3fHz", m.Width, m.Height, m.Refresh),
			"--pos", fmt.Sprintf("%d,%d", o.X, o.Y),
			"--scale", strconv.FormatFloat(o.Scale, 'f', -1, 64),
			"--transform", string(o.Transform),
		)
	}
	return args
}
