package layout

// LogicalSize returns the output's on-canvas size in logical pixels: the
// current mode divided by the scale factor, with width and height exchanged
// for quarter-turn transforms. Truncates like the scale division a
// compositor performs.
func (o *Output) LogicalSize() (w, h int) {
	m := o.CurrentMode()
	w = int(float64(m.Width) / o.Scale)
	h = int(float64(m.Height) / o.Scale)
	if o.Transform.Swapped() {
		return h, w
	}
	return w, h
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
