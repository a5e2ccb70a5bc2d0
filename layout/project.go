package layout

// Layout projection constants. The world span is over-provisioned so outputs
// never touch the surface edge and there is room to drag them apart.
const (
	spanWidthFactor  = 1.5
	spanHeightFactor = 2.5
	minSpanWidth     = 4000
	minSpanHeight    = 3000

	defaultMaxHeight  = 1080
	defaultFirstWidth = 1920
)

// Projection maps logical coordinates onto a drawing surface: a single
// uniform scale factor plus a translation.
type Projection struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Project fits the whole arrangement into a surface of the given pixel size.
// The scale is uniform on both axes, the first output is centered
// horizontally and the tallest extent vertically. Cheap enough to recompute
// on every paint, which also keeps it correct across surface resizes.
func Project(a *Arrangement, surfaceW, surfaceH float64) Projection {
	totalW := 0
	maxH := defaultMaxHeight
	for i := range a.Outputs {
		w, h := a.Outputs[i].LogicalSize()
		totalW += w
		if h > maxH {
			maxH = h
		}
	}

	spanX := float64(totalW) * spanWidthFactor
	if spanX < minSpanWidth {
		spanX = minSpanWidth
	}
	spanY := float64(maxH) * spanHeightFactor
	if spanY < minSpanHeight {
		spanY = minSpanHeight
	}

	scale := surfaceW / spanX
	if s := surfaceH / spanY; s < scale {
		scale = s
	}

	firstW := float64(defaultFirstWidth)
	if len(a.Outputs) > 0 {
		w, _ := a.Outputs[0].LogicalSize()
		firstW = float64(w)
	}

	return Projection{
		Scale:   scale,
		OffsetX: surfaceW/2 - (firstW/2)*scale,
		OffsetY: surfaceH/2 - (float64(maxH)/2)*scale,
	}
}

// OutputRect returns the surface rectangle the output occupies under this
// projection.
func (p Projection) OutputRect(o *Output) Rect {
	w, h := o.LogicalSize()
	return Rect{
		X: float64(o.X)*p.Scale + p.OffsetX,
		Y: float64(o.Y)*p.Scale + p.OffsetY,
		W: float64(w) * p.Scale,
		H: float64(h) * p.Scale,
	}
}
