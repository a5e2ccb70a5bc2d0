package layout

import "math"

// Session tracks pointer-driven interaction with an arrangement: which
// output is being dragged and which is hovered. One session owns one
// arrangement for its whole lifetime and is driven from a single event
// thread; nothing here blocks or needs locking.
//
// Hover is tracked independently of dragging and selection. It exists purely
// for visual feedback and never alters the selection.
type Session struct {
	arr     *Arrangement
	drag    *dragState
	hovered int
}

// dragState pins the pointer position and the output position at
// press time; moves are computed against these, not accumulated.
type dragState struct {
	index              int
	pointerX, pointerY float64
	originX, originY   int
}

// NewSession wraps an arrangement for interactive editing.
func NewSession(a *Arrangement) *Session {
	return &Session{arr: a, hovered: -1}
}

// Arrangement returns the arrangement this session edits.
func (s *Session) Arrangement() *Arrangement { return s.arr }

// PointerDown handles a press at surface position (x, y). A press inside an
// output's projected rectangle begins a drag of that output and selects it;
// when rectangles overlap the last one in arrangement order wins. A press
// outside every rectangle leaves the selection alone.
//
// Reports the pressed output and whether anything was hit; a hit also means
// the selection effect fired.
func (s *Session) PointerDown(p Projection, x, y float64) (int, bool) {
	hit := -1
	for i := range s.arr.Outputs {
		if p.OutputRect(&s.arr.Outputs[i]).Contains(x, y) {
			hit = i
		}
	}
	if hit < 0 {
		s.drag = nil
		return 0, false
	}

	out := &s.arr.Outputs[hit]
	s.drag = &dragState{
		index:    hit,
		pointerX: x, pointerY: y,
		originX: out.X, originY: out.Y,
	}
	s.arr.Select(hit)
	return hit, true
}

// PointerMove handles pointer motion at surface position (x, y).
//
// While dragging it converts the surface delta into logical pixels, offsets
// the drag-start position, clamps to the origin, snaps, and writes the
// snapped position into the model, so the on-screen result already reflects
// the snap mid-drag. Otherwise it retargets hover by hit-testing every
// output, last match winning.
//
// Reports whether anything visible changed, which is exactly when a cached
// rendering of the canvas must be invalidated.
func (s *Session) PointerMove(p Projection, x, y float64) bool {
	if s.drag != nil {
		return s.moveDragged(p, x, y)
	}

	hovered := -1
	for i := range s.arr.Outputs {
		if p.OutputRect(&s.arr.Outputs[i]).Contains(x, y) {
			hovered = i
		}
	}
	if hovered == s.hovered {
		return false
	}
	s.hovered = hovered
	return true
}

func (s *Session) moveDragged(p Projection, x, y float64) bool {
	out := s.arr.Output(s.drag.index)
	if out == nil {
		// The arrangement shrank under us; treat the drag as gone.
		s.drag = nil
		return false
	}

	newX := s.drag.originX + int(math.Round((x-s.drag.pointerX)/p.Scale))
	newY := s.drag.originY + int(math.Round((y-s.drag.pointerY)/p.Scale))
	newX, newY = clampOrigin(newX, newY)
	newX, newY = Snap(s.arr, s.drag.index, newX, newY)

	if out.X == newX && out.Y == newY {
		return false
	}
	out.X, out.Y = newX, newY
	return true
}

// PointerUp ends any drag in progress. Position mutations all happen on
// move, so release changes nothing else.
func (s *Session) PointerUp() {
	s.drag = nil
}

// Dragging returns the index of the output being dragged, if any.
func (s *Session) Dragging() (int, bool) {
	if s.drag == nil {
		return 0, false
	}
	return s.drag.index, true
}

// Hovered returns the index of the hovered output, if any. A stale index is
// reported as no hover.
func (s *Session) Hovered() (int, bool) {
	if s.hovered < 0 || s.hovered >= len(s.arr.Outputs) {
		return 0, false
	}
	return s.hovered, true
}

// ClearHover drops the hover target, as when the pointer leaves the canvas.
// Reports whether that changed anything.
func (s *Session) ClearHover() bool {
	if s.hovered == -1 {
		return false
	}
	s.hovered = -1
	return true
}
