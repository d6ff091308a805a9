package camera

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// The file types mirror Config with optional fields so that anything left out of a
// file keeps its default.

type planarAxisFile struct {
	Enabled     *bool    `yaml:"enabled"`
	Sensitivity *float32 `yaml:"sensitivity"`
	Smoothness  *float32 `yaml:"smoothness"`
	ReverseX    *bool    `yaml:"reverse_x"`
	ReverseY    *bool    `yaml:"reverse_y"`
}

type scalarAxisFile struct {
	Enabled     *bool    `yaml:"enabled"`
	Sensitivity *float32 `yaml:"sensitivity"`
	Smoothness  *float32 `yaml:"smoothness"`
	Reverse     *bool    `yaml:"reverse"`
}

type limitsFile struct {
	Lower *float32 `yaml:"lower"`
	Upper *float32 `yaml:"upper"`
}

type projectionFile struct {
	Kind string   `yaml:"kind"`
	Fov  *float32 `yaml:"fov"`
	Near *float32 `yaml:"near"`
	Far  *float32 `yaml:"far"`
}

type focusBoundsFile struct {
	Shape       string    `yaml:"shape"`
	Center      []float32 `yaml:"center"`
	Radius      float32   `yaml:"radius"`
	HalfExtents []float32 `yaml:"half_extents"`
}

type baseFile struct {
	Offset []float32 `yaml:"offset"`
	Up     []float32 `yaml:"up"`
}

type triggerFile struct {
	Button   string `yaml:"button"`
	Modifier string `yaml:"modifier"`
}

type keyRatesFile struct {
	Orbit *float32 `yaml:"orbit"`
	Pan   *float32 `yaml:"pan"`
	Zoom  *float32 `yaml:"zoom"`
	Roll  *float32 `yaml:"roll"`
}

type bindingsFile struct {
	Orbit                *triggerFile        `yaml:"orbit"`
	Pan                  *triggerFile        `yaml:"pan"`
	Keys                 map[string][]string `yaml:"keys"`
	KeyRates             *keyRatesFile       `yaml:"key_rates"`
	Trackpad             string              `yaml:"trackpad"`
	TrackpadModifierPan  string              `yaml:"trackpad_modifier_pan"`
	TrackpadModifierZoom string              `yaml:"trackpad_modifier_zoom"`
	TrackpadSensitivity  *float32            `yaml:"trackpad_sensitivity"`
	PinchToZoom          *bool               `yaml:"pinch_to_zoom"`
	ScrollPixelsPerLine  *float32            `yaml:"scroll_pixels_per_line"`
	LineZoom             *float32            `yaml:"line_zoom"`
	PinchLines           *float32            `yaml:"pinch_lines"`
	Touch                string              `yaml:"touch"`
}

type configFile struct {
	Enabled         *bool            `yaml:"enabled"`
	Window          *uint32          `yaml:"window"`
	Viewport        []float32        `yaml:"viewport"`
	Order           *int             `yaml:"order"`
	Projection      *projectionFile  `yaml:"projection"`
	Orbit           *planarAxisFile  `yaml:"orbit"`
	Pan             *planarAxisFile  `yaml:"pan"`
	Zoom            *scalarAxisFile  `yaml:"zoom"`
	Roll            *scalarAxisFile  `yaml:"roll"`
	AlphaLimits     *limitsFile      `yaml:"alpha_limits"`
	BetaLimits      *limitsFile      `yaml:"beta_limits"`
	ZoomLimits      *limitsFile      `yaml:"zoom_limits"`
	AllowUpsideDown *bool            `yaml:"allow_upside_down"`
	FocusBounds     *focusBoundsFile `yaml:"focus_bounds"`
	Base            *baseFile        `yaml:"base"`
	Bindings        *bindingsFile    `yaml:"bindings"`
	MaxTouchJump    *float32         `yaml:"max_touch_jump"`
}

// LoadConfigFile reads a YAML camera configuration from path.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the defaults overlaid with the file's values
//   - error: an error if the file cannot be read, parsed or validated
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open camera config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// LoadConfig decodes a YAML camera configuration. Fields missing from the document
// keep their DefaultConfig value; unknown fields are rejected. The result is validated
// and every invalid field is reported.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - Config: the decoded configuration
//   - error: an error if decoding fails or any field is invalid
func LoadConfig(r io.Reader) (Config, error) {
	var f configFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode camera config: %w", err)
	}

	cfg := DefaultConfig()
	var v validator
	f.apply(&cfg, &v)
	if err := errors.Join(v.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (f configFile) apply(cfg *Config, v *validator) {
	set(&cfg.Enabled, f.Enabled)
	if f.Window != nil {
		cfg.Window = common.WindowID(*f.Window)
	}
	if f.Viewport != nil {
		if len(f.Viewport) != 4 {
			v.require(false, "viewport", "expected [min_x, min_y, max_x, max_y]", func() {})
		} else {
			cfg.Viewport = common.Rect{
				Min: mgl32.Vec2{f.Viewport[0], f.Viewport[1]},
				Max: mgl32.Vec2{f.Viewport[2], f.Viewport[3]},
			}
		}
	}
	set(&cfg.Order, f.Order)
	set(&cfg.AllowUpsideDown, f.AllowUpsideDown)
	set(&cfg.MaxTouchJump, f.MaxTouchJump)

	if p := f.Projection; p != nil {
		switch strings.ToLower(p.Kind) {
		case "":
		case "perspective":
			cfg.Projection.Kind = Perspective
		case "orthographic":
			cfg.Projection.Kind = Orthographic
		default:
			v.require(false, "projection.kind", fmt.Sprintf("unknown projection %q", p.Kind), func() {})
		}
		set(&cfg.Projection.Fov, p.Fov)
		set(&cfg.Projection.Near, p.Near)
		set(&cfg.Projection.Far, p.Far)
	}

	f.Orbit.apply(&cfg.Orbit)
	f.Pan.apply(&cfg.Pan)
	f.Zoom.apply(&cfg.Zoom)
	f.Roll.apply(&cfg.Roll)
	f.AlphaLimits.apply(&cfg.AlphaLimits)
	f.BetaLimits.apply(&cfg.BetaLimits)
	f.ZoomLimits.apply(&cfg.ZoomLimits)

	if fb := f.FocusBounds; fb != nil {
		switch strings.ToLower(fb.Shape) {
		case "", "none":
			cfg.FocusBounds = FocusBounds{}
		case "sphere":
			cfg.FocusBounds = FocusBounds{Shape: BoundSphere, Radius: fb.Radius}
		case "box":
			cfg.FocusBounds = FocusBounds{Shape: BoundBox}
			vec3(v, "focus_bounds.half_extents", fb.HalfExtents, &cfg.FocusBounds.HalfExtents)
		default:
			v.require(false, "focus_bounds.shape", fmt.Sprintf("unknown shape %q", fb.Shape), func() {})
		}
		vec3(v, "focus_bounds.center", fb.Center, &cfg.FocusBounds.Center)
	}

	if b := f.Base; b != nil {
		if b.Up != nil {
			var up mgl32.Vec3
			vec3(v, "base.up", b.Up, &up)
			cfg.Base = BaseFromUp(up)
		}
		vec3(v, "base.offset", b.Offset, &cfg.Base.Offset)
	}

	if f.Bindings != nil {
		f.Bindings.apply(&cfg.Bindings, v)
	}
}

func vec3(v *validator, field string, src []float32, dst *mgl32.Vec3) {
	if src == nil {
		return
	}
	if len(src) != 3 {
		v.require(false, field, fmt.Sprintf("expected 3 components, got %d", len(src)), func() {})
		return
	}
	*dst = mgl32.Vec3{src[0], src[1], src[2]}
}

func (a *planarAxisFile) apply(dst *PlanarAxis) {
	if a == nil {
		return
	}
	set(&dst.Enabled, a.Enabled)
	set(&dst.Sensitivity, a.Sensitivity)
	set(&dst.Smoothness, a.Smoothness)
	set(&dst.ReverseX, a.ReverseX)
	set(&dst.ReverseY, a.ReverseY)
}

func (a *scalarAxisFile) apply(dst *ScalarAxis) {
	if a == nil {
		return
	}
	set(&dst.Enabled, a.Enabled)
	set(&dst.Sensitivity, a.Sensitivity)
	set(&dst.Smoothness, a.Smoothness)
	set(&dst.Reverse, a.Reverse)
}

func (l *limitsFile) apply(dst *Limits) {
	if l == nil {
		return
	}
	*dst = Limits{Lower: l.Lower, Upper: l.Upper}
}

func (b *bindingsFile) apply(dst *input.Bindings, v *validator) {
	if b.Orbit != nil {
		dst.Orbit = b.Orbit.trigger(v, "bindings.orbit")
	}
	if b.Pan != nil {
		dst.Pan = b.Pan.trigger(v, "bindings.pan")
	}

	keys := map[string]*[]common.Key{
		"orbit_left":  &dst.Keys.OrbitLeft,
		"orbit_right": &dst.Keys.OrbitRight,
		"orbit_up":    &dst.Keys.OrbitUp,
		"orbit_down":  &dst.Keys.OrbitDown,
		"pan_left":    &dst.Keys.PanLeft,
		"pan_right":   &dst.Keys.PanRight,
		"pan_up":      &dst.Keys.PanUp,
		"pan_down":    &dst.Keys.PanDown,
		"zoom_in":     &dst.Keys.ZoomIn,
		"zoom_out":    &dst.Keys.ZoomOut,
		"roll_left":   &dst.Keys.RollLeft,
		"roll_right":  &dst.Keys.RollRight,
	}
	for action, names := range b.Keys {
		field := "bindings.keys." + action
		target, ok := keys[action]
		if !ok {
			v.require(false, field, "unknown action", func() {})
			continue
		}
		parsed := make([]common.Key, 0, len(names))
		for _, name := range names {
			k, err := common.ParseKey(name)
			if err != nil {
				v.require(false, field, err.Error(), func() {})
				continue
			}
			parsed = append(parsed, k)
		}
		*target = parsed
	}

	if r := b.KeyRates; r != nil {
		set(&dst.KeyRates.Orbit, r.Orbit)
		set(&dst.KeyRates.Pan, r.Pan)
		set(&dst.KeyRates.Zoom, r.Zoom)
		set(&dst.KeyRates.Roll, r.Roll)
	}

	switch strings.ToLower(b.Trackpad) {
	case "":
	case "default_zoom":
		dst.Trackpad = input.TrackpadDefaultZoom
	case "blender_like":
		dst.Trackpad = input.TrackpadBlenderLike
	default:
		v.require(false, "bindings.trackpad", fmt.Sprintf("unknown behavior %q", b.Trackpad), func() {})
	}
	if b.TrackpadModifierPan != "" {
		dst.TrackpadModifierPan = modifier(v, "bindings.trackpad_modifier_pan", b.TrackpadModifierPan)
	}
	if b.TrackpadModifierZoom != "" {
		dst.TrackpadModifierZoom = modifier(v, "bindings.trackpad_modifier_zoom", b.TrackpadModifierZoom)
	}
	set(&dst.TrackpadSensitivity, b.TrackpadSensitivity)
	set(&dst.PinchToZoom, b.PinchToZoom)
	set(&dst.ScrollPixelsPerLine, b.ScrollPixelsPerLine)
	set(&dst.LineZoom, b.LineZoom)
	set(&dst.PinchLines, b.PinchLines)

	switch strings.ToLower(b.Touch) {
	case "":
	case "one_finger_orbit":
		dst.Touch = input.TouchOneFingerOrbit
	case "two_finger_orbit":
		dst.Touch = input.TouchTwoFingerOrbit
	default:
		v.require(false, "bindings.touch", fmt.Sprintf("unknown touch controls %q", b.Touch), func() {})
	}
}

func (t *triggerFile) trigger(v *validator, field string) input.Trigger {
	var out input.Trigger
	btn, err := common.ParseMouseButton(t.Button)
	if err != nil {
		v.require(false, field+".button", err.Error(), func() {})
	}
	out.Button = btn
	if t.Modifier != "" {
		out.Modifier = modifier(v, field+".modifier", t.Modifier)
	}
	return out
}

func modifier(v *validator, field, name string) *common.Key {
	k, err := common.ParseKey(name)
	if err != nil {
		v.require(false, field, err.Error(), func() {})
		return nil
	}
	return &k
}
