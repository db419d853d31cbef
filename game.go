package wirescape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game adapts a Session to ebiten.Game. Ebitengine calls Update and Draw
// once per refresh and LayoutF whenever the window size changes.
type Game struct {
	Session *Session
	ctx     context.Context
}

// NewGame wraps s. The loop ends when ctx is done.
func NewGame(ctx context.Context, s *Session) *Game {
	return &Game{Session: s, ctx: ctx}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	return g.Session.Tick()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Session.Draw(screen)
}

// LayoutF resizes the session to the outside size and returns the screen
// size in device pixels, so scene lines stay sharp on high-DPI monitors.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = m.DeviceScaleFactor()
	}
	return g.layout(outsideWidth, outsideHeight, dpr)
}

// layout applies the host size, or the scripted viewport when a test script
// has pinned one, and returns the screen size in device pixels.
func (g *Game) layout(outsideWidth, outsideHeight, dpr float64) (float64, float64) {
	s := g.Session
	if v, ok := s.LayoutOverride(); ok {
		outsideWidth, outsideHeight, dpr = v.Width, v.Height, v.DevicePixelRatio
	}
	s.Resize(outsideWidth, outsideHeight, dpr)
	pr := s.Viewport.PixelRatio()
	return outsideWidth * pr, outsideHeight * pr
}

// Layout implements ebiten.Game. Ebitengine prefers LayoutF when present.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// RunOptions configures Run.
type RunOptions struct {
	// Logger defaults to a text logger on stderr at the config's level.
	Logger *slog.Logger
	// ConfigPath, when set, is watched and reloaded on change.
	ConfigPath string
}

// maxAssetSize bounds decoded reveal images; larger images are downscaled.
const maxAssetSize = 1024

// Run loads the reveal assets, opens a window and runs the frame loop until
// the window closes, Escape is pressed, ctx is done or a script run ends.
func Run(ctx context.Context, cfg Config, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		l, err := NewLogger(os.Stderr, cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
	}

	var assets []*ImageAsset
	if cfg.Passes.Reveal {
		var err error
		assets, err = loadRevealAssets(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}

	s, err := NewSession(cfg, SessionOptions{
		Logger:             logger,
		Input:              NewEbitenInput(),
		Assets:             assets,
		ExitWhenScriptDone: cfg.Script != "",
	})
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.ConfigPath != "" {
		w, err := NewConfigWatcher(opts.ConfigPath, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			if err := w.Run(ctx, s.Reload); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	err = ebiten.RunGameWithOptions(NewGame(ctx, s), &ebiten.RunGameOptions{
		ScreenTransparent: cfg.Transparent,
	})
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// loadRevealAssets loads the configured images, or generates one placeholder
// per label (four when there are no labels) when none are configured.
func loadRevealAssets(ctx context.Context, cfg Config, logger *slog.Logger) ([]*ImageAsset, error) {
	rc := cfg.Reveal
	if len(rc.Images) == 0 {
		n := len(rc.Labels)
		if n == 0 {
			n = 4
		}
		w, h := int(rc.DisplayWidth), int(rc.DisplayHeight)
		if w <= 0 || h <= 0 {
			w, h = 320, 200
		}
		logger.Info("no reveal images configured, using placeholders", "count", n)
		return PlaceholderImages(n, w, h), nil
	}
	assets, err := LoadImages(ctx, rc.Images, LoadOptions{MaxWidth: maxAssetSize, MaxHeight: maxAssetSize})
	if err != nil {
		return nil, err
	}
	logger.Info("reveal images loaded", "count", len(assets))
	return assets, nil
}
