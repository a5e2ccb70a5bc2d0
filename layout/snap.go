package layout

// SnapThreshold is the maximum distance, in logical pixels, at which a
// dragged edge locks onto a neighbour's edge.
const SnapThreshold = 40

// gridStep is the fallback alignment grid when no neighbour edge is close.
const gridStep = 10

// Snap adjusts the dragged output's provisional position so it aligns with a
// neighbouring edge, or failing that with a 10-pixel grid. The two axes snap
// independently. A neighbour only offers its horizontal edges when the two
// outputs overlap vertically (within the threshold), and vice versa, so
// outputs that are nowhere near each other on an axis never attract across
// it. On each axis three alignments are offered per neighbour: flush after
// the neighbour, flush before it, and start-aligned with it; the closest
// offer under the threshold wins across all neighbours.
//
// The returned coordinates are clamped to be non-negative.
func Snap(a *Arrangement, index, x, y int) (int, int) {
	dragged := a.Output(index)
	if dragged == nil {
		return clampOrigin(x, y)
	}
	w, h := dragged.LogicalSize()

	left, right := x, x+w
	top, bottom := y, y+h

	snappedX, snappedY := x, y
	minDistX, minDistY := SnapThreshold, SnapThreshold

	for i := range a.Outputs {
		if i == index {
			continue
		}
		other := &a.Outputs[i]
		otherW, otherH := other.LogicalSize()

		otherLeft, otherRight := other.X, other.X+otherW
		otherTop, otherBottom := other.Y, other.Y+otherH

		xOverlap := left < otherRight+SnapThreshold && right > otherLeft-SnapThreshold
		yOverlap := top < otherBottom+SnapThreshold && bottom > otherTop-SnapThreshold

		if yOverlap {
			if d := abs(left - otherRight); d < minDistX {
				minDistX, snappedX = d, otherRight
			}
			if d := abs(right - otherLeft); d < minDistX {
				minDistX, snappedX = d, otherLeft-w
			}
			if d := abs(left - otherLeft); d < minDistX {
				minDistX, snappedX = d, otherLeft
			}
		}

		if xOverlap {
			if d := abs(top - otherBottom); d < minDistY {
				minDistY, snappedY = d, otherBottom
			}
			if d := abs(bottom - otherTop); d < minDistY {
				minDistY, snappedY = d, otherTop-h
			}
			if d := abs(top - otherTop); d < minDistY {
				minDistY, snappedY = d, otherTop
			}
		}
	}

	// No edge claimed the axis: settle on the grid instead.
	if snappedX == x {
		snappedX = roundToGrid(snappedX)
	}
	if snappedY == y {
		snappedY = roundToGrid(snappedY)
	}

	return clampOrigin(snappedX, snappedY)
}

func roundToGrid(v int) int {
	half := gridStep / 2
	if v < 0 {
		return -((-v + half) / gridStep) * gridStep
	}
	return (v + half) / gridStep * gridStep
}

func clampOrigin(x, y int) (int, int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
