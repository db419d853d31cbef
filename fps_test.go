package wirescape

import "testing"

func TestFPSOverlayRefresh(t *testing.T) {
	f := NewFPSOverlay()
	f.Update(0.016)
	if !f.drawn || f.sinceUpdate != 0 {
		t.Fatalf("first Update should draw: drawn=%v since=%v", f.drawn, f.sinceUpdate)
	}
	f.Update(0.3)
	if f.sinceUpdate != 0.3 {
		t.Errorf("since = %v, want 0.3", f.sinceUpdate)
	}
	f.Update(0.3)
	if f.sinceUpdate != 0 {
		t.Errorf("since = %v after refresh, want 0", f.sinceUpdate)
	}
}
