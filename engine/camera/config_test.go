package camera

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := map[string]struct {
		mutate func(*Config)
		field  string
	}{
		"SmoothnessAtOne":      {mutate: func(c *Config) { c.Orbit.Smoothness = 1 }, field: "orbit.smoothness"},
		"NegativeSmoothness":   {mutate: func(c *Config) { c.Pan.Smoothness = -0.1 }, field: "pan.smoothness"},
		"NaNSensitivity":       {mutate: func(c *Config) { c.Zoom.Sensitivity = float32(math.NaN()) }, field: "zoom.sensitivity"},
		"InvertedLimits":       {mutate: func(c *Config) { c.ZoomLimits = Limits{Lower: common.Ptr[float32](5), Upper: common.Ptr[float32](1)} }, field: "zoom_limits"},
		"ZeroSphere":           {mutate: func(c *Config) { c.FocusBounds = FocusBounds{Shape: BoundSphere} }, field: "focus_bounds"},
		"FlatBox":              {mutate: func(c *Config) { c.FocusBounds = FocusBounds{Shape: BoundBox, HalfExtents: mgl32.Vec3{1, 0, 1}} }, field: "focus_bounds"},
		"FovTooWide":           {mutate: func(c *Config) { c.Projection.Fov = math.Pi }, field: "projection.fov"},
		"NearBeyondFar":        {mutate: func(c *Config) { c.Projection.Near = 10; c.Projection.Far = 1 }, field: "projection.clip"},
		"ZeroLineZoom":         {mutate: func(c *Config) { c.Bindings.LineZoom = 0 }, field: "bindings.line_zoom"},
		"ZeroBaseRotation":     {mutate: func(c *Config) { c.Base.Rotation = mgl32.Quat{} }, field: "base.rotation"},
		"NegativeMaxTouchJump": {mutate: func(c *Config) { c.MaxTouchJump = -1 }, field: "max_touch_jump"},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Expected a *ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Expected field: %s, got: %s", tt.field, ce.Field)
			}
		})
	}
}

func TestConfigSanitizeReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orbit.Smoothness = 2
	cfg.AlphaLimits = Limits{Lower: common.Ptr[float32](1), Upper: common.Ptr[float32](0)}
	cfg.Orbit.Sensitivity = 3

	out, err := cfg.sanitize(DefaultConfig())
	if err == nil {
		t.Fatal("Expected errors")
	}
	fields := map[string]bool{}
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ce *ConfigError
		if errors.As(e, &ce) {
			fields[ce.Field] = true
		}
	}
	if !fields["orbit.smoothness"] || !fields["alpha_limits"] || len(fields) != 2 {
		t.Errorf("unexpected fields %v", fields)
	}
	if out.Orbit.Smoothness != 0.8 || out.AlphaLimits.Bounded() {
		t.Error("rejected fields should fall back")
	}
	if out.Orbit.Sensitivity != 3 {
		t.Error("accepted fields should be kept")
	}
}

func TestConfigNormalizesBaseRotation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Base.Rotation = mgl32.Quat{W: 2}
	out, err := cfg.sanitize(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mgl32.FloatEqualThreshold(out.Base.Rotation.Len(), 1, 1e-6) {
		t.Errorf("Expected a unit quaternion, got %v", out.Base.Rotation)
	}
}

const sampleConfig = `
projection:
  kind: orthographic
orbit:
  smoothness: 0.5
  reverse_x: true
roll:
  enabled: true
zoom_limits:
  lower: 2
  upper: 50
allow_upside_down: true
focus_bounds:
  shape: sphere
  center: [0, 1, 0]
  radius: 10
base:
  up: [0, 0, 1]
bindings:
  pan:
    button: left
    modifier: lshift
  keys:
    roll_left: [q]
    roll_right: [e]
  trackpad: blender_like
  trackpad_modifier_zoom: lctrl
  scroll_pixels_per_line: 120
  touch: two_finger_orbit
max_touch_jump: 200
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Projection.Kind != Orthographic {
		t.Error("Expected orthographic projection")
	}
	if cfg.Orbit.Smoothness != 0.5 || !cfg.Orbit.ReverseX || cfg.Orbit.Sensitivity != 1 {
		t.Errorf("unexpected orbit axis %+v", cfg.Orbit)
	}
	if !cfg.Roll.Enabled || cfg.Roll.Smoothness != 0.8 {
		t.Errorf("unexpected roll axis %+v", cfg.Roll)
	}
	if *cfg.ZoomLimits.Lower != 2 || *cfg.ZoomLimits.Upper != 50 {
		t.Errorf("unexpected zoom limits")
	}
	if cfg.FocusBounds.Shape != BoundSphere || cfg.FocusBounds.Center != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("unexpected focus bounds %+v", cfg.FocusBounds)
	}
	if up := cfg.Base.Rotation.Rotate(mgl32.Vec3{0, 1, 0}); !vecNear(up, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("Expected base up +Z, got %v", up)
	}
	b := cfg.Bindings
	if b.Pan.Button != common.MouseButtonLeft || b.Pan.Modifier == nil || *b.Pan.Modifier != common.KeyLeftShift {
		t.Errorf("unexpected pan trigger %+v", b.Pan)
	}
	if b.Orbit.Button != common.MouseButtonLeft || b.Orbit.Modifier != nil {
		t.Errorf("orbit trigger should keep its default, got %+v", b.Orbit)
	}
	if len(b.Keys.RollLeft) != 1 || b.Keys.RollLeft[0] != common.KeyQ {
		t.Errorf("unexpected roll keys %v", b.Keys.RollLeft)
	}
	if b.Trackpad != input.TrackpadBlenderLike || b.TrackpadModifierZoom == nil || b.TrackpadModifierPan != nil {
		t.Error("unexpected trackpad settings")
	}
	if b.ScrollPixelsPerLine != 120 || b.LineZoom != input.DefaultLineZoom {
		t.Errorf("unexpected calibration %f %f", b.ScrollPixelsPerLine, b.LineZoom)
	}
	if b.Touch != input.TouchTwoFingerOrbit || cfg.MaxTouchJump != 200 {
		t.Error("unexpected touch settings")
	}
}

func TestLoadConfigEmptyIsDefault(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Orbit != def.Orbit || cfg.Projection != def.Projection || cfg.Bindings.LineZoom != def.Bindings.LineZoom {
		t.Error("empty document should produce the defaults")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := map[string]struct {
		doc   string
		field string
	}{
		"UnknownKey":        {doc: "bindings:\n  keys:\n    zoom_in: [hyperspace]\n", field: "bindings.keys.zoom_in"},
		"UnknownButton":     {doc: "bindings:\n  orbit:\n    button: fourth\n", field: "bindings.orbit.button"},
		"UnknownAction":     {doc: "bindings:\n  keys:\n    jump: [space]\n", field: "bindings.keys.jump"},
		"BadSmoothness":     {doc: "zoom:\n  smoothness: 1.5\n", field: "zoom.smoothness"},
		"ShortVector":       {doc: "base:\n  offset: [1, 2]\n", field: "base.offset"},
		"UnknownProjection": {doc: "projection:\n  kind: fisheye\n", field: "projection.kind"},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.doc))
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Expected a *ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Expected field: %s, got: %s", tt.field, ce.Field)
			}
		})
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	if _, err := LoadConfig(strings.NewReader("orbit:\n  speed: 3\n")); err == nil {
		t.Error("Expected an error for an unknown field")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxTouchJump != 200 {
		t.Errorf("Expected: %f, got: %f", 200.0, cfg.MaxTouchJump)
	}
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a wrapped not-exist error, got %v", err)
	}
}
