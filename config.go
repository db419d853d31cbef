package wirescape

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "WIRESCAPE_"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config declares one variant of the scene. The near-identical demo variants
// differ only in these values.
type Config struct {
	Title    string `toml:"title" yaml:"title" env:"TITLE"`
	Width    int    `toml:"width" yaml:"width" env:"WIDTH"`
	Height   int    `toml:"height" yaml:"height" env:"HEIGHT"`
	LogLevel string `toml:"log_level" yaml:"log_level" env:"LOG_LEVEL"`
	Debug    bool   `toml:"debug" yaml:"debug" env:"DEBUG"`
	ShowFPS  bool   `toml:"show_fps" yaml:"show_fps" env:"SHOW_FPS"`

	// Background is the 0xRRGGBB clear color; Transparent leaves the
	// screen cleared to transparent black instead.
	Background  uint32 `toml:"background" yaml:"background" env:"BACKGROUND"`
	Transparent bool   `toml:"transparent" yaml:"transparent" env:"TRANSPARENT"`
	Antialias   bool   `toml:"antialias" yaml:"antialias" env:"ANTIALIAS"`

	Camera     CameraConfig     `toml:"camera" yaml:"camera" envPrefix:"CAMERA_"`
	Polyhedron PolyhedronConfig `toml:"polyhedron" yaml:"polyhedron" envPrefix:"POLYHEDRON_"`
	Plane      PlaneConfig      `toml:"plane" yaml:"plane" envPrefix:"PLANE_"`
	Passes     PassesConfig     `toml:"passes" yaml:"passes" envPrefix:"PASSES_"`
	Shader     ShaderConfig     `toml:"shader" yaml:"shader" envPrefix:"SHADER_"`
	Reveal     RevealConfig     `toml:"reveal" yaml:"reveal" envPrefix:"REVEAL_"`
	Scroll     ScrollConfig     `toml:"scroll" yaml:"scroll" envPrefix:"SCROLL_"`

	// Script is an optional JSON test script run by the frame loop.
	Script        string `toml:"script" yaml:"script" env:"SCRIPT"`
	ScreenshotDir string `toml:"screenshot_dir" yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`
}

// CameraConfig configures the perspective camera and its orbit controls.
type CameraConfig struct {
	FOV           float32 `toml:"fov" yaml:"fov" env:"FOV"`
	Near          float32 `toml:"near" yaml:"near" env:"NEAR"`
	Far           float32 `toml:"far" yaml:"far" env:"FAR"`
	Position      Vec3    `toml:"position" yaml:"position" envPrefix:"POSITION_"`
	Damping       bool    `toml:"damping" yaml:"damping" env:"DAMPING"`
	DampingFactor float32 `toml:"damping_factor" yaml:"damping_factor" env:"DAMPING_FACTOR"`
}

// PolyhedronConfig configures the dodecahedron mesh.
type PolyhedronConfig struct {
	Radius    float32 `toml:"radius" yaml:"radius" env:"RADIUS"`
	Detail    int     `toml:"detail" yaml:"detail" env:"DETAIL"`
	Color     uint32  `toml:"color" yaml:"color" env:"COLOR"`
	Wireframe bool    `toml:"wireframe" yaml:"wireframe" env:"WIREFRAME"`
	Position  Vec3    `toml:"position" yaml:"position" envPrefix:"POSITION_"`
}

// PlaneConfig configures the segmented "water" plane.
type PlaneConfig struct {
	Width          float32 `toml:"width" yaml:"width" env:"WIDTH"`
	Height         float32 `toml:"height" yaml:"height" env:"HEIGHT"`
	WidthSegments  int     `toml:"width_segments" yaml:"width_segments" env:"WIDTH_SEGMENTS"`
	HeightSegments int     `toml:"height_segments" yaml:"height_segments" env:"HEIGHT_SEGMENTS"`
	Color          uint32  `toml:"color" yaml:"color" env:"COLOR"`
	Wireframe      bool    `toml:"wireframe" yaml:"wireframe" env:"WIREFRAME"`
	Position       Vec3    `toml:"position" yaml:"position" envPrefix:"POSITION_"`
	Rotation       Vec3    `toml:"rotation" yaml:"rotation" envPrefix:"ROTATION_"`
}

// PassesConfig switches the optional effects on and off.
type PassesConfig struct {
	Shader     bool `toml:"shader" yaml:"shader" env:"SHADER"`
	Reveal     bool `toml:"reveal" yaml:"reveal" env:"REVEAL"`
	DebugPanel bool `toml:"debug_panel" yaml:"debug_panel" env:"DEBUG_PANEL"`
	Scroll     bool `toml:"scroll" yaml:"scroll" env:"SCROLL"`
}

// ShaderConfig holds the initial shader uniforms.
type ShaderConfig struct {
	Thickness     float32 `toml:"thickness" yaml:"thickness" env:"THICKNESS"`
	StrengthNoise float32 `toml:"strength_noise" yaml:"strength_noise" env:"STRENGTH_NOISE"`
}

// RevealConfig configures the hover list and the pixelation reveal.
type RevealConfig struct {
	// Images and Labels are parallel: trigger i shows image i.
	Images []string `toml:"images" yaml:"images" env:"IMAGES" envSeparator:","`
	Labels []string `toml:"labels" yaml:"labels" env:"LABELS" envSeparator:","`

	// DisplayWidth and DisplayHeight are the on-screen box of the preview in
	// viewport pixels. Zero uses the image's own size.
	DisplayWidth  float64 `toml:"display_width" yaml:"display_width" env:"DISPLAY_WIDTH"`
	DisplayHeight float64 `toml:"display_height" yaml:"display_height" env:"DISPLAY_HEIGHT"`

	// Smoothing is the per-frame factor of the pointer follow, in (0, 1).
	Smoothing float64 `toml:"smoothing" yaml:"smoothing" env:"SMOOTHING"`

	DimOpacity  float64 `toml:"dim_opacity" yaml:"dim_opacity" env:"DIM_OPACITY"`
	DimDuration float64 `toml:"dim_duration" yaml:"dim_duration" env:"DIM_DURATION"`

	// List layout of the trigger items, in viewport pixels.
	ListX      float64 `toml:"list_x" yaml:"list_x" env:"LIST_X"`
	ListY      float64 `toml:"list_y" yaml:"list_y" env:"LIST_Y"`
	ItemWidth  float64 `toml:"item_width" yaml:"item_width" env:"ITEM_WIDTH"`
	ItemHeight float64 `toml:"item_height" yaml:"item_height" env:"ITEM_HEIGHT"`
	ItemGap    float64 `toml:"item_gap" yaml:"item_gap" env:"ITEM_GAP"`
}

// ScrollConfig maps wheel scrolling to a scrubbed polyhedron rotation.
type ScrollConfig struct {
	Start    float64 `toml:"start" yaml:"start" env:"START"`
	End      float64 `toml:"end" yaml:"end" env:"END"`
	Rotation float32 `toml:"rotation" yaml:"rotation" env:"ROTATION"`
	Speed    float64 `toml:"speed" yaml:"speed" env:"SPEED"`
}

// DefaultConfig returns the configuration of the reference scene: a black
// wireframe dodecahedron floating over a dark blue wireframe plane.
func DefaultConfig() Config {
	return Config{
		Title:      "wirescape",
		Width:      1280,
		Height:     720,
		LogLevel:   "info",
		Background: 0xffffff,
		Antialias:  true,
		Camera: CameraConfig{
			FOV:           75,
			Near:          0.1,
			Far:           100,
			Position:      Vec3{0, 5, 20},
			Damping:       true,
			DampingFactor: defaultDampingFactor,
		},
		Polyhedron: PolyhedronConfig{
			Radius:    5,
			Detail:    5,
			Color:     0x000000,
			Wireframe: true,
			Position:  Vec3{0, 5, 0},
		},
		Plane: PlaneConfig{
			Width:          40,
			Height:         40,
			WidthSegments:  50,
			HeightSegments: 50,
			Color:          0x202b31,
			Wireframe:      true,
			Position:       Vec3{0, -5, 0},
			Rotation:       Vec3{X: math.Pi / 2},
		},
		Passes: PassesConfig{
			Reveal:     true,
			DebugPanel: true,
		},
		Shader: ShaderConfig{
			Thickness:     1,
			StrengthNoise: 0.2,
		},
		Reveal: RevealConfig{
			DisplayWidth:  320,
			DisplayHeight: 200,
			Smoothing:     0.075,
			DimOpacity:    0.2,
			DimDuration:   0.3,
			ListX:         40,
			ListY:         80,
			ItemWidth:     260,
			ItemHeight:    32,
			ItemGap:       12,
		},
		Scroll: ScrollConfig{
			Start:    0,
			End:      1000,
			Rotation: 2 * math.Pi,
			Speed:    40,
		},
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig returns DefaultConfig overlaid with the file at path (when path
// is not empty) and then with WIRESCAPE_* environment variables. The file
// format follows the extension: .toml, .yaml or .yml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile decodes the file at path on top of c. Unknown keys are errors.
func (c *Config) mergeFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand config path %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.decode(filepath.Ext(expanded), data)
}

func (c *Config) decode(ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("parse toml config: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}
	return nil
}

// Validate reports every problem found, joined, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	if c.Width <= 0 || c.Height <= 0 {
		add("window size %dx%d must be positive", c.Width, c.Height)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		add("log level %q must be debug, info, warn or error", c.LogLevel)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		add("camera fov %v must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera clip planes near=%v far=%v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.DampingFactor <= 0 || c.Camera.DampingFactor > 1 {
		add("camera damping factor %v must be in (0, 1]", c.Camera.DampingFactor)
	}
	if c.Polyhedron.Radius <= 0 {
		add("polyhedron radius %v must be positive", c.Polyhedron.Radius)
	}
	if c.Polyhedron.Detail < 0 {
		add("polyhedron detail %d must not be negative", c.Polyhedron.Detail)
	}
	if c.Plane.Width <= 0 || c.Plane.Height <= 0 {
		add("plane size %vx%v must be positive", c.Plane.Width, c.Plane.Height)
	}
	if c.Plane.WidthSegments < 1 || c.Plane.HeightSegments < 1 {
		add("plane segments %dx%d must be at least 1", c.Plane.WidthSegments, c.Plane.HeightSegments)
	}
	if c.Reveal.Smoothing <= 0 || c.Reveal.Smoothing >= 1 {
		add("reveal smoothing %v must be in (0, 1)", c.Reveal.Smoothing)
	}
	if c.Reveal.DimOpacity < 0 || c.Reveal.DimOpacity > 1 {
		add("reveal dim opacity %v must be in [0, 1]", c.Reveal.DimOpacity)
	}
	if c.Passes.Reveal && len(c.Reveal.Labels) > 0 && len(c.Reveal.Images) > 0 && len(c.Reveal.Labels) != len(c.Reveal.Images) {
		add("reveal has %d labels for %d images", len(c.Reveal.Labels), len(c.Reveal.Images))
	}
	if c.Passes.Scroll && c.Scroll.End <= c.Scroll.Start {
		add("scroll range [%v, %v] is empty", c.Scroll.Start, c.Scroll.End)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
