package wirescape

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadImagesFromFileAndHTTP(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	if err := os.WriteFile(file, encodeTestPNG(t, 40, 30), 0o644); err != nil {
		t.Fatal(err)
	}

	remote := encodeTestPNG(t, 20, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(remote)
	}))
	defer srv.Close()

	assets, err := LoadImages(context.Background(), []string{file, srv.URL + "/b.png"}, LoadOptions{Client: srv.Client()})
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 2 {
		t.Fatalf("got %d assets, want 2", len(assets))
	}
	if assets[0].Source != file {
		t.Errorf("source = %q, want %q", assets[0].Source, file)
	}
	if w, h := assets[0].Width(), assets[0].Height(); w != 40 || h != 30 {
		t.Errorf("file image = %dx%d, want 40x30", w, h)
	}
	if w := assets[1].Width(); w != 20 {
		t.Errorf("remote width = %d, want 20", w)
	}
	if assets[1].Image == nil {
		t.Error("remote image not uploaded")
	}
}

func TestLoadImagesFitsLargeImages(t *testing.T) {
	file := filepath.Join(t.TempDir(), "wide.png")
	if err := os.WriteFile(file, encodeTestPNG(t, 100, 50), 0o644); err != nil {
		t.Fatal(err)
	}

	assets, err := LoadImages(context.Background(), []string{file}, LoadOptions{MaxWidth: 50, MaxHeight: 50})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := assets[0].Width(), assets[0].Height(); w != 50 || h != 25 {
		t.Errorf("fitted = %dx%d, want 50x25", w, h)
	}
}

func TestLoadImagesErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := LoadImages(ctx, nil, LoadOptions{}); !errors.Is(err, ErrNoImages) {
		t.Errorf("no sources: err = %v, want ErrNoImages", err)
	}

	text := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(text, []byte("<html>not found</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImages(ctx, []string{text}, LoadOptions{}); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("html body: err = %v, want ErrUnsupportedImage", err)
	}

	if _, err := LoadImages(ctx, []string{filepath.Join(t.TempDir(), "missing.png")}, LoadOptions{}); err == nil {
		t.Error("missing file: expected an error")
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := LoadImages(ctx, []string{srv.URL + "/gone.png"}, LoadOptions{Client: srv.Client()})
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Errorf("404: err = %v, want an unexpected status error", err)
	}
}

func TestPlaceholderImages(t *testing.T) {
	assets := PlaceholderImages(3, 16, 8)
	if len(assets) != 3 {
		t.Fatalf("got %d placeholders, want 3", len(assets))
	}
	for i, a := range assets {
		if a.Width() != 16 || a.Height() != 8 {
			t.Errorf("placeholder %d = %dx%d, want 16x8", i, a.Width(), a.Height())
		}
	}
	// Each placeholder starts from a different hue.
	if c0, c1 := assets[0].Decoded.At(0, 0), assets[1].Decoded.At(0, 0); c0 == c1 {
		t.Errorf("placeholders 0 and 1 share the color %v", c0)
	}
}

func TestHueToRGB(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{0.5, 0, 255, 255},
		{1, 255, 0, 0},
		{-0.5, 0, 255, 255},
	}
	for _, tt := range tests {
		r, g, b := hueToRGB(tt.h)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("hueToRGB(%v) = (%d, %d, %d), want (%d, %d, %d)", tt.h, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
