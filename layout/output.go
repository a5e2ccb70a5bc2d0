// Package layout models an arrangement of display outputs on a 2D canvas
// and implements the geometry, snapping and pointer interaction needed to
// edit it. It is a pure library with no dependency on any toolkit; a frontend
// feeds it pointer events and paints the rectangles it projects.
//
// Positions are integers in a shared logical coordinate space, in logical
// pixels at scale 1.0. Once normalized (see Arrangement.Normalize) every
// position is non-negative, which is what display-server configurations
// require.
package layout

import "fmt"

// Transform is an output rotation/flip, using the names compositors use.
type Transform string

const (
	TransformNormal     Transform = "normal"
	Transform90         Transform = "90"
	Transform180        Transform = "180"
	Transform270        Transform = "270"
	TransformFlipped    Transform = "flipped"
	TransformFlipped90  Transform = "flipped-90"
	TransformFlipped180 Transform = "flipped-180"
	TransformFlipped270 Transform = "flipped-270"
)

// Transforms lists every transform in presentation order.
func Transforms() []Transform {
	return []Transform{
		TransformNormal, Transform90, Transform180, Transform270,
		TransformFlipped, TransformFlipped90, TransformFlipped180, TransformFlipped270,
	}
}

// Swapped reports whether the transform rotates by a quarter turn,
// exchanging an output's width and height.
func (t Transform) Swapped() bool {
	switch t {
	case Transform90, Transform270, TransformFlipped90, TransformFlipped270:
		return true
	}
	return false
}

// Mode is one resolution and refresh rate an output supports.
// Width and Height are physical pixels, before scaling.
type Mode struct {
	Width, Height int
	Refresh       float64
	Current       bool
	Preferred     bool
}

func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%.3fHz", m.Width, m.Height, m.Refresh)
}

// Output is one managed display.
type Output struct {
	Name         string
	Description  string
	PhysicalSize string

	// X, Y are the output's logical position. They may go negative while a
	// drag is in flight; Arrangement.Normalize restores the invariant before
	// anything is applied or saved.
	X, Y int

	Scale     float64
	Transform Transform
	Enabled   bool

	// Modes holds every supported mode. Exactly one has Current set.
	Modes []Mode
}

// CurrentMode returns the output's active mode. Enumeration marks exactly one
// mode current and every mutation keeps it that way, so a missing current
// mode is a bug, not a state to paper over.
func (o *Output) CurrentMode() Mode {
	for _, m := range o.Modes {
		if m.Current {
			return m
		}
	}
	panic(fmt.Sprintf("layout: output %q has no current mode", o.Name))
}

// SelectMode marks the i-th mode current and clears the rest. It reports
// whether i was in range; out-of-range leaves the output untouched.
func (o *Output) SelectMode(i int) bool {
	if i < 0 || i >= len(o.Modes) {
		return false
	}
	for j := range o.Modes {
		o.Modes[j].Current = j == i
	}
	return true
}

// Arrangement is the full ordered set of outputs plus the current selection.
// One session owns one Arrangement and mutates it in place.
type Arrangement struct {
	Outputs []Output

	selected int
}

// NewArrangement takes ownership of outputs. The first output starts
// selected, matching what an editing session presents on open.
func NewArrangement(outputs []Output) *Arrangement {
	a := &Arrangement{Outputs: outputs, selected: -1}
	if len(outputs) > 0 {
		a.selected = 0
	}
	return a
}

func (a *Arrangement) Len() int { return len(a.Outputs) }

// Output returns the i-th output, or nil if i is stale.
func (a *Arrangement) Output(i int) *Output {
	if i < 0 || i >= len(a.Outputs) {
		return nil
	}
	return &a.Outputs[i]
}

// Select makes the i-th output the selection target and reports whether the
// index was valid. Selecting an invalid index changes nothing.
func (a *Arrangement) Select(i int) bool {
	if i < 0 || i >= len(a.Outputs) {
		return false
	}
	a.selected = i
	return true
}

// Selected returns the selected output index, if any.
func (a *Arrangement) Selected() (int, bool) {
	if a.selected < 0 || a.selected >= len(a.Outputs) {
		return 0, false
	}
	return a.selected, true
}

// SelectedOutput returns the selected output, or nil when nothing is
// selected.
func (a *Arrangement) SelectedOutput() *Output {
	i, ok := a.Selected()
	if !ok {
		return nil
	}
	return &a.Outputs[i]
}
