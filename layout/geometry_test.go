package layout

import "testing"

func testOutput(name string, x, y, w, h int) Output {
	return Output{
		Name:      name,
		X:         x,
		Y:         y,
		Scale:     1.0,
		Transform: TransformNormal,
		Enabled:   true,
		Modes: []Mode{
			{Width: w, Height: h, Refresh: 60.0, Current: true, Preferred: true},
		},
	}
}

func TestLogicalSize(t *testing.T) {
	tests := []struct {
		name      string
		scale     float64
		transform Transform
		wantW     int
		wantH     int
	}{
		{"normal at scale 1", 1.0, TransformNormal, 1920, 1080},
		{"rotated 90", 1.0, Transform90, 1080, 1920},
		{"rotated 270", 1.0, Transform270, 1080, 1920},
		{"rotated 180 keeps orientation", 1.0, Transform180, 1920, 1080},
		{"flipped keeps orientation", 1.0, TransformFlipped, 1920, 1080},
		{"flipped-90", 1.0, TransformFlipped90, 1080, 1920},
		{"flipped-270", 1.0, TransformFlipped270, 1080, 1920},
		{"scale 2", 2.0, TransformNormal, 960, 540},
		{"scale 1.5 truncates", 1.5, TransformNormal, 1280, 720},
		{"scale 2 rotated", 2.0, Transform90, 540, 960},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := testOutput("DP-1", 0, 0, 1920, 1080)
			out.Scale = tt.scale
			out.Transform = tt.transform

			w, h := out.LogicalSize()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("LogicalSize() = (%d, %d), want (%d, %d)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLogicalSizeFractionalScale(t *testing.T) {
	out := testOutput("DP-1", 0, 0, 2560, 1440)
	out.Scale = 1.25

	w, h := out.LogicalSize()
	if w != 2048 || h != 1152 {
		t.Errorf("LogicalSize() = (%d, %d), want (2048, 1152)", w, h)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner inclusive", 10, 20, true},
		{"right edge exclusive", 110, 40, false},
		{"bottom edge exclusive", 50, 70, false},
		{"left of rect", 9, 40, false},
		{"above rect", 50, 19, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
