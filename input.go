package wirescape

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Handler registry ---

type triggerHandler struct {
	id uint32
	fn func(TriggerContext)
}

type handlerRegistry struct {
	pointerEnter []triggerHandler
	pointerLeave []triggerHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerEnter:
		h.reg.pointerEnter = removeTriggerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeTriggerHandler(h.reg.pointerLeave, h.id)
	}
}

func removeTriggerHandler(s []triggerHandler, id uint32) []triggerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = triggerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(event EventType, fn func(TriggerContext)) CallbackHandle {
	r.nextID++
	id := r.nextID
	h := triggerHandler{id: id, fn: fn}
	switch event {
	case EventPointerEnter:
		r.pointerEnter = append(r.pointerEnter, h)
	case EventPointerLeave:
		r.pointerLeave = append(r.pointerLeave, h)
	}
	return CallbackHandle{id: id, reg: r, event: event}
}

func (r *handlerRegistry) fire(event EventType, ctx TriggerContext) {
	var hs []triggerHandler
	switch event {
	case EventPointerEnter:
		hs = r.pointerEnter
	case EventPointerLeave:
		hs = r.pointerLeave
	}
	for _, h := range hs {
		h.fn(ctx)
	}
}

// --- Input sources ---

// InputState is one frame of device input in viewport coordinates.
type InputState struct {
	X, Y float64
	// Moved reports whether X and Y carry a new pointer position.
	Moved   bool
	Pressed bool // primary button held
	WheelY  float64

	TogglePanel bool
	Quit        bool
}

// InputSource polls device input once per frame. pixelRatio converts the
// host's device-pixel cursor coordinates into viewport coordinates.
type InputSource interface {
	Poll(pixelRatio float64) InputState
}

// EbitenInput reads the mouse, wheel and keyboard through Ebitengine.
type EbitenInput struct {
	// PanelKey toggles the debug panel.
	PanelKey ebiten.Key

	lastX, lastY int
	seen         bool
}

// NewEbitenInput returns an input source with H as the panel key.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{PanelKey: ebiten.KeyH}
}

// Poll implements InputSource.
func (in *EbitenInput) Poll(pixelRatio float64) InputState {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	mx, my := ebiten.CursorPosition()
	moved := !in.seen || mx != in.lastX || my != in.lastY
	in.lastX, in.lastY, in.seen = mx, my, true

	_, wy := ebiten.Wheel()
	return InputState{
		X:           float64(mx) / pixelRatio,
		Y:           float64(my) / pixelRatio,
		Moved:       moved,
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:      wy,
		TogglePanel: inpututil.IsKeyJustPressed(in.PanelKey),
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}
