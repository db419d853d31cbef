package wirescape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNoImages is returned when an image list is empty.
	ErrNoImages = errors.New("no images")
	// ErrUnsupportedImage is returned for data that is not a decodable image.
	ErrUnsupportedImage = errors.New("unsupported image")
)

// ImageAsset is a decoded image, loaded once at startup and never mutated.
type ImageAsset struct {
	Source  string
	Decoded image.Image
	Image   *ebiten.Image
}

// Width returns the pixel width of the decoded image.
func (a *ImageAsset) Width() int { return a.Decoded.Bounds().Dx() }

// Height returns the pixel height of the decoded image.
func (a *ImageAsset) Height() int { return a.Decoded.Bounds().Dy() }

// LoadOptions controls LoadImages.
type LoadOptions struct {
	// Client fetches http(s) sources. Nil uses http.DefaultClient.
	Client *http.Client
	// MaxWidth and MaxHeight downscale larger images to fit. Zero disables.
	MaxWidth, MaxHeight int
}

// LoadImages loads every source in order. A source is a file path (a leading
// ~ is expanded) or an http(s) URL. The first failure aborts the load.
func LoadImages(ctx context.Context, sources []string, opts LoadOptions) ([]*ImageAsset, error) {
	if len(sources) == 0 {
		return nil, ErrNoImages
	}
	assets := make([]*ImageAsset, 0, len(sources))
	for _, src := range sources {
		data, err := readSource(ctx, src, opts.Client)
		if err != nil {
			return nil, fmt.Errorf("load image %s: %w", src, err)
		}
		img, err := decodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("load image %s: %w", src, err)
		}
		img = fitImage(img, opts.MaxWidth, opts.MaxHeight)
		assets = append(assets, newImageAsset(src, img))
	}
	return assets, nil
}

func newImageAsset(src string, img image.Image) *ImageAsset {
	return &ImageAsset{Source: src, Decoded: img, Image: ebiten.NewImageFromImage(img)}
}

func readSource(ctx context.Context, src string, client *http.Client) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return data, nil
	}
	path, err := homedir.Expand(src)
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// decodeImage sniffs the data before decoding so non-image payloads (an HTML
// error page, say) fail with ErrUnsupportedImage instead of a decoder error.
func decodeImage(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrUnsupportedImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	return img, nil
}

// fitImage downscales img to fit within maxW×maxH, keeping its aspect ratio.
func fitImage(img image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 || maxH <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))
	return transform.Resize(img, nw, nh, transform.Linear)
}

// PlaceholderImages generates n distinct gradient images of size w×h. The
// demo uses them when no image sources are configured.
func PlaceholderImages(n, w, h int) []*ImageAsset {
	assets := make([]*ImageAsset, 0, n)
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		hue := float64(i) / float64(max(n, 1))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				t := float64(x+y) / float64(w+h)
				r, g, b := hueToRGB(hue + t*0.25)
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
		assets = append(assets, newImageAsset(fmt.Sprintf("placeholder:%d", i), img))
	}
	return assets
}

// hueToRGB converts a hue in turns (fully saturated, full value) to RGB.
func hueToRGB(h float64) (r, g, b uint8) {
	h -= float64(int(h))
	if h < 0 {
		h++
	}
	seg := h * 6
	f := seg - float64(int(seg))
	q := uint8((1 - f) * 255)
	t := uint8(f * 255)
	switch int(seg) % 6 {
	case 0:
		return 255, t, 0
	case 1:
		return q, 255, 0
	case 2:
		return 0, 255, t
	case 3:
		return 0, q, 255
	case 4:
		return t, 0, 255
	default:
		return 255, 0, q
	}
}
