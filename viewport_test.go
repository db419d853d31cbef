package wirescape

import "testing"

func TestViewportPixelRatio(t *testing.T) {
	tests := []struct {
		dpr, want float64
	}{
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{3, 2},
		{0, 1},
		{-1, 1},
	}
	for _, tt := range tests {
		v := Viewport{Width: 100, Height: 100, DevicePixelRatio: tt.dpr}
		if got := v.PixelRatio(); got != tt.want {
			t.Errorf("PixelRatio(dpr %v) = %v, want %v", tt.dpr, got, tt.want)
		}
	}
}

func TestViewportOutputSize(t *testing.T) {
	v := Viewport{Width: 1920, Height: 1080, DevicePixelRatio: 3}
	w, h := v.OutputSize()
	if w != 3840 || h != 2160 {
		t.Errorf("OutputSize = %dx%d, want 3840x2160", w, h)
	}
	if a := v.Aspect(); a != 1920.0/1080.0 {
		t.Errorf("Aspect = %v", a)
	}
	if a := (Viewport{}).Aspect(); a != 1 {
		t.Errorf("degenerate Aspect = %v, want 1", a)
	}
}
