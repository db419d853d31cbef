package wirescape

// syntheticInput is a single injected frame of input. Viewport coordinates
// are used, identical to what Poll reports for real input.
type syntheticInput struct {
	x, y    float64
	pressed bool
	wheelY  float64
}

// InjectMove queues a pointer move to (x, y) with no button held. The event
// is consumed on the next Tick and replaces real input for that frame.
func (s *Session) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{x: x, y: y})
}

// InjectPress queues a pointer move to (x, y) with the primary button held.
func (s *Session) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{x: x, y: y, pressed: true})
}

// InjectWheel queues a wheel step at the last known pointer position.
func (s *Session) InjectWheel(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticInput{
		x: s.Pointer.TargetX, y: s.Pointer.TargetY, wheelY: dy,
	})
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated held moves, and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (s *Session) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectPress(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectMove(toX, toY)
}

// popInjected removes and returns the oldest queued event.
func (s *Session) popInjected() (InputState, bool) {
	if len(s.injectQueue) == 0 {
		return InputState{}, false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return InputState{
		X: evt.x, Y: evt.y,
		Moved:   true,
		Pressed: evt.pressed,
		WheelY:  evt.wheelY,
	}, true
}
