package layout

import "testing"

func TestNormalizeShiftsToOrigin(t *testing.T) {
	a := NewArrangement([]Output{
		testOutput("DP-1", -500, -20, 1920, 1080),
		testOutput("HDMI-1", 1420, 300, 1920, 1080),
	})

	if !a.Normalize() {
		t.Fatal("Normalize() = false, want true for negative positions")
	}

	if a.Outputs[0].X != 0 || a.Outputs[0].Y != 0 {
		t.Errorf("first output at (%d, %d), want (0, 0)", a.Outputs[0].X, a.Outputs[0].Y)
	}
	if a.Outputs[1].X != 1920 || a.Outputs[1].Y != 320 {
		t.Errorf("second output at (%d, %d), want relative placement preserved at (1920, 320)",
			a.Outputs[1].X, a.Outputs[1].Y)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	a := NewArrangement([]Output{
		testOutput("DP-1", -100, 40, 1920, 1080),
		testOutput("HDMI-1", 1820, -60, 1920, 1080),
	})

	a.Normalize()
	first := make([]Output, len(a.Outputs))
	copy(first, a.Outputs)

	if a.Normalize() {
		t.Error("second Normalize() = true, want no-op")
	}
	for i := range a.Outputs {
		if a.Outputs[i].X != first[i].X || a.Outputs[i].Y != first[i].Y {
			t.Errorf("output %d moved on second normalize", i)
		}
	}
}

func TestNormalizeAxesIndependent(t *testing.T) {
	// Only Y is negative; X must stay put.
	a := NewArrangement([]Output{
		testOutput("DP-1", 250, -90, 1920, 1080),
	})

	a.Normalize()
	if a.Outputs[0].X != 250 || a.Outputs[0].Y != 0 {
		t.Errorf("output at (%d, %d), want (250, 0)", a.Outputs[0].X, a.Outputs[0].Y)
	}
}

func TestNormalizeNonNegativeUntouched(t *testing.T) {
	a := NewArrangement([]Output{
		testOutput("DP-1", 10, 0, 1920, 1080),
		testOutput("HDMI-1", 1930, 400, 1920, 1080),
	})

	if a.Normalize() {
		t.Error("Normalize() = true, want false when every position is already non-negative")
	}
	// A positive minimum is not pulled back to zero.
	if a.Outputs[0].X != 10 {
		t.Errorf("first output x = %d, want 10", a.Outputs[0].X)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if NewArrangement(nil).Normalize() {
		t.Error("Normalize() on empty arrangement = true, want false")
	}
}
