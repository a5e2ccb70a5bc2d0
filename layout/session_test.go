package layout

import "testing"

// ident is a unit projection: surface pixels and logical pixels coincide, so
// event positions in tests read directly as logical coordinates.
var ident = Projection{Scale: 1}

func TestPointerDownSelectsAndStartsDrag(t *testing.T) {
	s := NewSession(pair())

	i, hit := s.PointerDown(ident, 2000, 500)
	if !hit || i != 1 {
		t.Fatalf("PointerDown = (%d, %v), want hit on output 1", i, hit)
	}
	if sel, _ := s.arr.Selected(); sel != 1 {
		t.Errorf("selection = %d, want 1", sel)
	}
	if d, ok := s.Dragging(); !ok || d != 1 {
		t.Errorf("Dragging() = (%d, %v), want (1, true)", d, ok)
	}
}

func TestPointerDownOutsideKeepsSelection(t *testing.T) {
	s := NewSession(pair())
	s.arr.Select(1)

	_, hit := s.PointerDown(ident, 9000, 9000)
	if hit {
		t.Fatal("PointerDown outside every output reported a hit")
	}
	if sel, _ := s.arr.Selected(); sel != 1 {
		t.Errorf("selection = %d, want unchanged 1", sel)
	}
	if _, ok := s.Dragging(); ok {
		t.Error("press outside must not start a drag")
	}
}

func TestPointerDownLastMatchWins(t *testing.T) {
	// Two outputs stacked on the same spot: the later one in list order takes
	// the press.
	a := NewArrangement([]Output{
		testOutput("DP-1", 0, 0, 1920, 1080),
		testOutput("HDMI-1", 0, 0, 1920, 1080),
	})
	s := NewSession(a)

	i, hit := s.PointerDown(ident, 100, 100)
	if !hit || i != 1 {
		t.Errorf("PointerDown = (%d, %v), want the last overlapping output", i, hit)
	}
}

func TestDragMovesWithSnap(t *testing.T) {
	s := NewSession(pair())
	s.PointerDown(ident, 100, 100)

	// A move clear of every edge lands on the grid.
	if !s.PointerMove(ident, 612, 355) {
		t.Fatal("PointerMove during drag reported no change")
	}
	if out := s.arr.Output(0); out.X != 510 || out.Y != 260 {
		t.Errorf("output at (%d, %d), want grid-snapped (510, 260)", out.X, out.Y)
	}

	// Moving back so the right edge comes within the threshold of the
	// neighbour snaps flush, not to the raw spot.
	s.PointerMove(ident, 130, 100)
	if out := s.arr.Output(0); out.X != 0 || out.Y != 0 {
		t.Errorf("output at (%d, %d), want snapped (0, 0)", out.X, out.Y)
	}
}

func TestDragScaleCorrection(t *testing.T) {
	// At projection scale 0.5 a 100-pixel surface move is 200 logical pixels.
	s := NewSession(NewArrangement([]Output{testOutput("DP-1", 0, 0, 1920, 1080)}))
	p := Projection{Scale: 0.5}

	s.PointerDown(p, 10, 10)
	s.PointerMove(p, 110, 10)
	if out := s.arr.Output(0); out.X != 200 {
		t.Errorf("output x = %d, want 200", out.X)
	}
}

func TestDragClampsToOrigin(t *testing.T) {
	s := NewSession(NewArrangement([]Output{testOutput("DP-1", 0, 0, 1920, 1080)}))

	s.PointerDown(ident, 500, 500)
	s.PointerMove(ident, -2000, -2000)
	if out := s.arr.Output(0); out.X != 0 || out.Y != 0 {
		t.Errorf("output at (%d, %d), want clamped (0, 0)", out.X, out.Y)
	}
}

func TestDragComputedFromPressPoint(t *testing.T) {
	// Deltas are taken against the press point, not accumulated per event, so
	// intermediate snapping never skews the final position.
	s := NewSession(NewArrangement([]Output{testOutput("DP-1", 1000, 1000, 1920, 1080)}))

	s.PointerDown(ident, 1500, 1500)
	s.PointerMove(ident, 1513, 1500) // snaps back onto the grid at 1010
	s.PointerMove(ident, 1700, 1500)
	if out := s.arr.Output(0); out.X != 1200 {
		t.Errorf("output x = %d, want 1200", out.X)
	}
}

func TestPointerUpEndsDrag(t *testing.T) {
	s := NewSession(pair())
	s.PointerDown(ident, 100, 100)
	s.PointerUp()

	if _, ok := s.Dragging(); ok {
		t.Fatal("Dragging() after release")
	}

	// Further movement is hover, not drag.
	s.PointerMove(ident, 2000, 500)
	if out := s.arr.Output(0); out.X != 0 {
		t.Errorf("released output moved to x=%d", out.X)
	}
	if h, ok := s.Hovered(); !ok || h != 1 {
		t.Errorf("Hovered() = (%d, %v), want (1, true)", h, ok)
	}
}

func TestHoverTracking(t *testing.T) {
	s := NewSession(pair())

	if !s.PointerMove(ident, 100, 100) {
		t.Fatal("entering an output must report a change")
	}
	if s.PointerMove(ident, 200, 200) {
		t.Error("moving within the same output must not report a change")
	}
	if !s.PointerMove(ident, 9000, 9000) {
		t.Error("leaving every output must report a change")
	}
	if _, ok := s.Hovered(); ok {
		t.Error("Hovered() with pointer outside every output")
	}
}

func TestHoverDoesNotTouchSelection(t *testing.T) {
	s := NewSession(pair())
	s.arr.Select(0)

	s.PointerMove(ident, 2000, 500)
	if sel, _ := s.arr.Selected(); sel != 0 {
		t.Errorf("selection = %d after hover, want 0", sel)
	}

	// And selecting must not disturb hover.
	s.arr.Select(1)
	if h, ok := s.Hovered(); !ok || h != 1 {
		t.Errorf("Hovered() = (%d, %v) after select, want (1, true)", h, ok)
	}
}

func TestStaleDragIndex(t *testing.T) {
	s := NewSession(pair())
	s.PointerDown(ident, 100, 100)

	// The arrangement shrinks mid-drag; the session must drop the drag
	// rather than index out of range.
	s.arr.Outputs = s.arr.Outputs[:0]
	if s.PointerMove(ident, 300, 300) {
		t.Error("PointerMove with stale drag index reported a change")
	}
	if _, ok := s.Dragging(); ok {
		t.Error("stale drag still active")
	}
}

func TestClearHover(t *testing.T) {
	s := NewSession(pair())
	s.PointerMove(ident, 100, 100)

	if !s.ClearHover() {
		t.Fatal("ClearHover() = false with an active hover")
	}
	if s.ClearHover() {
		t.Error("second ClearHover() = true, want false")
	}
}
