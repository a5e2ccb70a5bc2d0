package layout

// Normalize shifts every output uniformly so the smallest coordinate on each
// axis becomes zero. Display-server configurations reject negative
// positions, so this runs before every apply and save. Relative placement is
// preserved and a second call is a no-op. Reports whether anything moved.
func (a *Arrangement) Normalize() bool {
	if len(a.Outputs) == 0 {
		return false
	}

	minX, minY := a.Outputs[0].X, a.Outputs[0].Y
	for i := range a.Outputs {
		if a.Outputs[i].X < minX {
			minX = a.Outputs[i].X
		}
		if a.Outputs[i].Y < minY {
			minY = a.Outputs[i].Y
		}
	}

	offsetX, offsetY := 0, 0
	if minX < 0 {
		offsetX = -minX
	}
	if minY < 0 {
		offsetY = -minY
	}
	if offsetX == 0 && offsetY == 0 {
		return false
	}

	for i := range a.Outputs {
		a.Outputs[i].X += offsetX
		a.Outputs[i].Y += offsetY
	}
	return true
}
