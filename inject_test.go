package wirescape

import (
	"testing"
)

func TestInjectQueueOrder(t *testing.T) {
	s := &Session{}
	s.InjectMove(1, 2)
	s.InjectPress(3, 4)
	s.Pointer.Move(5, 6)
	s.InjectWheel(-2)

	want := []InputState{
		{X: 1, Y: 2, Moved: true},
		{X: 3, Y: 4, Moved: true, Pressed: true},
		{X: 5, Y: 6, Moved: true, WheelY: -2},
	}
	for i, w := range want {
		got, ok := s.popInjected()
		if !ok {
			t.Fatalf("event %d missing", i)
		}
		if got != w {
			t.Errorf("event %d = %+v, want %+v", i, got, w)
		}
	}
	if _, ok := s.popInjected(); ok {
		t.Error("queue should be empty")
	}
}

func TestInjectDragFrames(t *testing.T) {
	s := &Session{}
	s.InjectDrag(0, 0, 100, 50, 5)
	if len(s.injectQueue) != 5 {
		t.Fatalf("drag queued %d events, want 5", len(s.injectQueue))
	}
	for i, evt := range s.injectQueue[:4] {
		if !evt.pressed {
			t.Errorf("event %d not pressed", i)
		}
	}
	if mid := s.injectQueue[2]; mid.x != 50 || mid.y != 25 {
		t.Errorf("midpoint = (%v, %v), want (50, 25)", mid.x, mid.y)
	}
	last := s.injectQueue[4]
	if last.pressed || last.x != 100 || last.y != 50 {
		t.Errorf("last event = %+v, want release at (100, 50)", last)
	}

	s.injectQueue = nil
	s.InjectDrag(0, 0, 10, 10, 0)
	if len(s.injectQueue) != 2 {
		t.Errorf("short drag queued %d events, want 2", len(s.injectQueue))
	}
}
