package wirescape

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// SessionOptions supplies the collaborators of a Session. Zero values pick
// the defaults noted per field.
type SessionOptions struct {
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
	// Clock defaults to a WallClock.
	Clock Clock
	// Input is polled once per Tick. Nil means injected events only.
	Input InputSource
	// Assets are the reveal images, one per trigger. Required when the
	// reveal pass is enabled.
	Assets []*ImageAsset
	// ExitWhenScriptDone ends the loop one frame after the test script
	// finishes.
	ExitWhenScriptDone bool
}

// Session is the per-window scene context: it owns every piece of mutable
// state and is the only driver of the frame loop. Tick and Draw must be
// called from the same goroutine.
type Session struct {
	Config Config
	log    *slog.Logger

	Viewport Viewport
	Renderer *Renderer
	Scene    *Scene
	Controls *OrbitControls
	Pointer  PointerTracker

	// Optional passes; nil when disabled.
	Shader   *ShaderPass
	Triggers *TriggerList
	Dimmer   *Dimmer
	Reveal   *RevealEffect
	Panel    *DebugPanel
	Scroll   *ScrollTrigger
	FPS      *FPSOverlay

	clock       Clock
	input       InputSource
	lastElapsed float64
	frame       uint64

	injectQueue     []syntheticInput
	testRunner      *TestRunner
	exitWhenDone    bool
	screenshotQueue []string

	reloads  chan Config
	sceneImg *ebiten.Image

	// layoutOverride pins the viewport after a scripted resize so the
	// host's layout pass does not undo it.
	layoutOverride *Viewport
}

// NewSession builds the scene, passes and input wiring described by cfg.
// Setup fails fast: any invalid config or missing asset is an error.
func NewSession(cfg Config, opts SessionOptions) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		Config:       cfg,
		log:          opts.Logger,
		clock:        opts.Clock,
		input:        opts.Input,
		exitWhenDone: opts.ExitWhenScriptDone,
		reloads:      make(chan Config, 1),
	}
	if s.log == nil {
		s.log = discardLogger()
	}
	if s.clock == nil {
		s.clock = NewWallClock()
	}

	s.Scene = BuildScene(cfg)
	s.Controls = NewOrbitControls(s.Scene.Camera)
	s.Controls.EnableDamping = cfg.Camera.Damping
	s.Controls.DampingFactor = cfg.Camera.DampingFactor
	s.Renderer = NewRenderer(cfg)

	if cfg.Passes.Shader {
		s.Shader = NewShaderPass(cfg.Shader.Thickness, cfg.Shader.StrengthNoise)
	}
	if cfg.Passes.Reveal {
		if err := s.setupReveal(cfg, opts.Assets); err != nil {
			return nil, err
		}
	}
	if cfg.Passes.DebugPanel {
		s.setupPanel()
	}
	if cfg.Passes.Scroll {
		s.Scroll = NewScrollTrigger(cfg.Scroll.Start, cfg.Scroll.End, cfg.Scroll.Speed)
		if poly := s.Scene.Mesh(MeshPolyhedron); poly != nil {
			s.Scroll.Scrub(&poly.Rotation.Y, poly.Rotation.Y+cfg.Scroll.Rotation, ease.Linear)
		}
	}
	if cfg.ShowFPS {
		s.FPS = NewFPSOverlay()
	}
	if cfg.Script != "" {
		runner, err := LoadTestScriptFile(cfg.Script)
		if err != nil {
			return nil, err
		}
		s.testRunner = runner
	}

	s.Resize(float64(cfg.Width), float64(cfg.Height), 1)
	s.log.Info("session ready",
		"meshes", len(s.Scene.Meshes()),
		"shader", s.Shader != nil,
		"reveal", s.Reveal != nil,
		"panel", s.Panel != nil,
		"scroll", s.Scroll != nil,
	)
	return s, nil
}

func (s *Session) setupReveal(cfg Config, assets []*ImageAsset) error {
	if len(assets) == 0 {
		return fmt.Errorf("reveal: %w", ErrNoImages)
	}
	labels := cfg.Reveal.Labels
	if len(labels) == 0 {
		labels = make([]string, len(assets))
		for i := range labels {
			labels[i] = fmt.Sprintf("Project %02d", i+1)
		}
	}
	if len(labels) != len(assets) {
		return fmt.Errorf("%w: reveal has %d labels for %d images", ErrInvalidConfig, len(labels), len(assets))
	}
	rc := cfg.Reveal
	s.Triggers = NewTriggerList(labels, rc.ListX, rc.ListY, rc.ItemWidth, rc.ItemHeight, rc.ItemGap)
	s.Dimmer = NewDimmer(s.Triggers, rc.DimOpacity, float32(rc.DimDuration))
	s.Reveal = NewRevealEffect(assets, rc.DisplayWidth, rc.DisplayHeight)
	s.Reveal.Attach(s.Triggers)
	return nil
}

// Slider ranges of the debug panel.
const (
	positionRange = 10
	positionStep  = 0.01
)

func (s *Session) setupPanel() {
	p := NewDebugPanel(float64(s.Config.Width)-panelWidth-16, 16)
	bindVec := func(v *Vec3, name string) {
		p.Bind(&v.X, name+" position x", -positionRange, positionRange, positionStep)
		p.Bind(&v.Y, name+" position y", -positionRange, positionRange, positionStep)
		p.Bind(&v.Z, name+" position z", -positionRange, positionRange, positionStep)
	}
	bindVec(&s.Scene.Camera.Position, "camera")
	for _, m := range s.Scene.Meshes() {
		bindVec(&m.Position, m.Name)
	}
	if s.Shader != nil {
		p.Bind(&s.Shader.Thickness, "shader thickness", 0, 10, 0.01)
		p.Bind(&s.Shader.StrengthNoise, "shader noise strength", 0, 1, 0.01)
	}
	s.Panel = p
}

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger {
	return s.log
}

// Frame returns the number of completed Ticks.
func (s *Session) Frame() uint64 {
	return s.frame
}

// Resize applies a new viewport: the camera aspect becomes width/height and
// the renderer output follows the viewport size at the capped pixel ratio.
func (s *Session) Resize(width, height, devicePixelRatio float64) {
	v := Viewport{Width: width, Height: height, DevicePixelRatio: devicePixelRatio}
	if v == s.Viewport {
		return
	}
	s.Viewport = v
	s.Scene.Camera.SetAspect(float32(v.Aspect()))
	s.Renderer.SetPixelRatio(v.PixelRatio())
	s.Renderer.SetSize(width, height)
	s.log.Debug("resize", "width", width, "height", height, "pixel_ratio", v.PixelRatio())
}

// PinViewport resizes to the given viewport and keeps it there: later host
// layouts report this size instead of the window's.
func (s *Session) PinViewport(width, height, devicePixelRatio float64) {
	v := Viewport{Width: width, Height: height, DevicePixelRatio: devicePixelRatio}
	s.layoutOverride = &v
	s.Resize(width, height, devicePixelRatio)
}

// LayoutOverride returns the pinned viewport, if any.
func (s *Session) LayoutOverride() (Viewport, bool) {
	if s.layoutOverride == nil {
		return Viewport{}, false
	}
	return *s.layoutOverride, true
}

// Reload hands a new config to the session; it is applied at the start of
// the next Tick. Safe to call from any goroutine. A pending config that was
// not yet applied is replaced.
func (s *Session) Reload(cfg Config) {
	for {
		select {
		case s.reloads <- cfg:
			return
		default:
		}
		select {
		case <-s.reloads:
		default:
		}
	}
}

func (s *Session) drainReloads() {
	for {
		select {
		case cfg := <-s.reloads:
			s.applyConfig(cfg)
		default:
			return
		}
	}
}

// applyConfig copies the live-editable fields of cfg into the running
// scene. Pass toggles and window size need a restart.
func (s *Session) applyConfig(cfg Config) {
	old := s.Config
	if cfg.Passes != old.Passes || cfg.Width != old.Width || cfg.Height != old.Height {
		s.log.Warn("config reload: passes and window size apply on restart")
	}

	s.Renderer.ClearColor = ColorHex(cfg.Background)
	s.Renderer.Transparent = cfg.Transparent
	s.Renderer.Antialias = cfg.Antialias
	s.Renderer.Debug = cfg.Debug

	cam := s.Scene.Camera
	cam.FOV, cam.Near, cam.Far = cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far
	cam.UpdateProjection()
	if cfg.Camera.Position != old.Camera.Position {
		cam.Position = cfg.Camera.Position
	}
	s.Controls.EnableDamping = cfg.Camera.Damping
	s.Controls.DampingFactor = cfg.Camera.DampingFactor

	if poly := s.Scene.Mesh(MeshPolyhedron); poly != nil {
		pc := cfg.Polyhedron
		if pc.Radius != old.Polyhedron.Radius || pc.Detail != old.Polyhedron.Detail {
			poly.Geometry = NewDodecahedron(pc.Radius, pc.Detail)
		}
		poly.Material.Color = ColorHex(pc.Color)
		poly.Material.Wireframe = pc.Wireframe
		poly.Position = pc.Position
	}
	if water := s.Scene.Mesh(MeshWater); water != nil {
		wc := cfg.Plane
		op := old.Plane
		if wc.Width != op.Width || wc.Height != op.Height ||
			wc.WidthSegments != op.WidthSegments || wc.HeightSegments != op.HeightSegments {
			water.Geometry = NewPlane(wc.Width, wc.Height, wc.WidthSegments, wc.HeightSegments)
		}
		water.Material.Color = ColorHex(wc.Color)
		water.Material.Wireframe = wc.Wireframe
		water.Position = wc.Position
		water.Rotation = wc.Rotation
	}

	if s.Shader != nil {
		s.Shader.Thickness = cfg.Shader.Thickness
		s.Shader.StrengthNoise = cfg.Shader.StrengthNoise
	}
	if s.Reveal != nil {
		s.Reveal.DisplayWidth = cfg.Reveal.DisplayWidth
		s.Reveal.DisplayHeight = cfg.Reveal.DisplayHeight
	}
	if s.Dimmer != nil {
		s.Dimmer.DimOpacity = cfg.Reveal.DimOpacity
		s.Dimmer.Duration = float32(cfg.Reveal.DimDuration)
	}

	// Passes stay as built; keep the running set so the warning is not
	// repeated on every later reload.
	cfg.Passes = old.Passes
	cfg.Width, cfg.Height = old.Width, old.Height
	s.Config = cfg
	s.log.Info("config applied")
}

// pollInput returns the next injected event, or the device state when no
// injection is pending.
func (s *Session) pollInput() InputState {
	if in, ok := s.popInjected(); ok {
		return in
	}
	if s.input == nil {
		return InputState{X: s.Pointer.TargetX, Y: s.Pointer.TargetY}
	}
	return s.input.Poll(s.Viewport.PixelRatio())
}

// Tick advances the session by one frame. It returns ebiten.Termination
// when the user quits or a script run has finished.
func (s *Session) Tick() error {
	var t0 time.Time
	if s.Config.Debug {
		t0 = time.Now()
	}
	if s.exitWhenDone && s.testRunner != nil && s.testRunner.Done() {
		s.log.Info("script finished", "frames", s.frame)
		return ebiten.Termination
	}

	s.drainReloads()

	in := s.pollInput()
	if in.Quit {
		return ebiten.Termination
	}
	if in.TogglePanel && s.Panel != nil {
		s.Panel.Toggle()
	}
	consumed := false
	if s.Panel != nil {
		consumed = s.Panel.HandlePointer(in.X, in.Y, in.Pressed)
	}
	s.Controls.HandleDrag(in.X, in.Y, in.Pressed && !consumed, s.Viewport.Height)
	if in.WheelY != 0 && !consumed {
		if s.Scroll != nil {
			s.Scroll.Scroll(in.WheelY)
		} else {
			s.Controls.HandleWheel(in.WheelY)
		}
	}
	if in.Moved {
		s.Pointer.Move(in.X, in.Y)
		if s.Triggers != nil {
			s.Triggers.Update(in.X, in.Y)
		}
	}

	elapsed := s.clock.Elapsed()
	dt := elapsed - s.lastElapsed
	s.lastElapsed = elapsed

	s.Controls.Update()
	if s.Shader != nil {
		s.Shader.SetTime(elapsed)
	}
	if s.Reveal != nil {
		s.Reveal.State.Step()
	}
	s.Pointer.Smooth(s.Config.Reveal.Smoothing)
	if s.Dimmer != nil {
		s.Dimmer.Update(float32(dt))
	}
	if s.FPS != nil {
		s.FPS.Update(dt)
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	s.frame++
	if s.Config.Debug {
		stats := s.Renderer.Stats
		stats.tickTime = time.Since(t0)
		s.debugLog(stats)
	}
	return nil
}

// Draw renders one frame onto screen, which is sized in device pixels.
func (s *Session) Draw(screen *ebiten.Image) {
	pr := s.Viewport.PixelRatio()
	if s.Shader != nil {
		s.ensureSceneImage(screen.Bounds().Dx(), screen.Bounds().Dy())
		s.Renderer.Render(s.sceneImg, s.Scene)
		screen.Clear()
		s.Shader.Apply(s.sceneImg, screen)
	} else {
		s.Renderer.Render(screen, s.Scene)
	}
	if s.Triggers != nil {
		s.Triggers.Draw(screen, pr)
	}
	if s.Reveal != nil {
		s.Reveal.Draw(screen, s.Pointer.PointerPosition, pr)
	}
	if s.Panel != nil {
		s.Panel.Draw(screen, pr)
	}
	if s.FPS != nil {
		s.FPS.Draw(screen, pr)
	}
	s.flushScreenshots(screen)
}

func (s *Session) ensureSceneImage(w, h int) {
	if s.sceneImg != nil {
		b := s.sceneImg.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		s.sceneImg.Deallocate()
	}
	s.sceneImg = ebiten.NewImage(w, h)
}
