package wirescape

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the overlay text is redrawn, in seconds.
const fpsRefresh = 0.5

// FPSOverlay displays the current FPS and TPS in the top-right corner.
type FPSOverlay struct {
	img         *ebiten.Image
	sinceUpdate float64
	drawn       bool
}

// NewFPSOverlay creates an overlay. Its text refreshes every half second.
func NewFPSOverlay() *FPSOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &FPSOverlay{img: ebiten.NewImage(100, 32)}
}

// Update advances the refresh timer by dt seconds.
func (f *FPSOverlay) Update(dt float64) {
	f.sinceUpdate += dt
	if f.drawn && f.sinceUpdate < fpsRefresh {
		return
	}
	f.sinceUpdate = 0
	f.drawn = true

	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Draw composites the overlay onto screen scaled by pixelRatio.
func (f *FPSOverlay) Draw(screen *ebiten.Image, pixelRatio float64) {
	if !f.drawn {
		return
	}
	b := f.img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(pixelRatio, pixelRatio)
	op.GeoM.Translate(float64(screen.Bounds().Dx())-float64(b.Dx())*pixelRatio, 0)
	screen.DrawImage(f.img, &op)
}
