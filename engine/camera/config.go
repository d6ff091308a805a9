package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// MinZoom is the floor for radius and orthographic zoom, whatever the configured limits.
const MinZoom float32 = 0.05

// ProjectionKind selects perspective or orthographic projection.
type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

// Projection holds the lens parameters of a camera.
type Projection struct {
	Kind ProjectionKind
	// Fov is the vertical field of view in radians. Perspective only.
	Fov  float32
	Near float32
	Far  float32
}

// PlanarAxis configures a two-dimensional control such as orbit or pan.
type PlanarAxis struct {
	Enabled     bool
	Sensitivity float32
	// Smoothness in [0, 1). 0 moves instantly.
	Smoothness float32
	ReverseX   bool
	ReverseY   bool
}

// ScalarAxis configures a one-dimensional control such as zoom or roll.
type ScalarAxis struct {
	Enabled     bool
	Sensitivity float32
	// Smoothness in [0, 1). 0 moves instantly.
	Smoothness float32
	Reverse    bool
}

// Limits is an optional closed range. A nil bound is open.
type Limits struct {
	Lower *float32
	Upper *float32
}

// Bounded reports whether either bound is set.
func (l Limits) Bounded() bool {
	return l.Lower != nil || l.Upper != nil
}

// Clamp clamps v into the range.
func (l Limits) Clamp(v float32) float32 {
	return common.ClampOptional(v, l.Lower, l.Upper)
}

// BoundShape selects the shape that confines the focus point.
type BoundShape int

const (
	BoundNone BoundShape = iota
	BoundSphere
	BoundBox
)

// FocusBounds confines the focus target to a sphere or an axis-aligned box.
type FocusBounds struct {
	Shape  BoundShape
	Center mgl32.Vec3
	// Radius of the sphere.
	Radius float32
	// HalfExtents of the box.
	HalfExtents mgl32.Vec3
}

// BaseTransform is the home frame of the orbit. Its rotation maps the default Y-up
// frame onto the configured up vector; its offset is added to the eye position.
type BaseTransform struct {
	Offset   mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityBase returns the Y-up base at the origin.
func IdentityBase() BaseTransform {
	return BaseTransform{Rotation: mgl32.QuatIdent()}
}

// BaseFromUp returns a base whose up axis is the given vector.
//
// Parameters:
//   - up: the desired up direction, need not be normalized
//
// Returns:
//   - BaseTransform: a base with zero offset rotating +Y onto up
func BaseFromUp(up mgl32.Vec3) BaseTransform {
	if up.Len() < 1e-6 {
		return IdentityBase()
	}
	return BaseTransform{Rotation: mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, up.Normalize())}
}

// Config is the complete per-camera configuration.
type Config struct {
	// Enabled gates user input. Scripted target changes still animate while disabled.
	Enabled bool
	// Window is the window whose input drives the camera.
	Window common.WindowID
	// Viewport is the region of Window the camera renders to. The zero Rect covers the
	// whole window.
	Viewport common.Rect
	// Order breaks ties between overlapping viewports; higher wins.
	Order int

	Projection Projection

	Orbit PlanarAxis
	Pan   PlanarAxis
	Zoom  ScalarAxis
	Roll  ScalarAxis

	AlphaLimits Limits
	BetaLimits  Limits
	// ZoomLimits bounds the radius in perspective and the zoom in orthographic.
	ZoomLimits Limits

	// AllowUpsideDown lets beta cross the poles when it is not limited.
	AllowUpsideDown bool

	FocusBounds FocusBounds
	Base        BaseTransform

	Bindings input.Bindings
	// MaxTouchJump is the largest plausible per-frame finger motion in pixels, 0 to
	// disable the check.
	MaxTouchJump float32
}

// DefaultConfig returns the default configuration: every control but roll enabled,
// unit sensitivity, left-button orbit and right-button pan.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Projection: Projection{
			Kind: Perspective,
			Fov:  math.Pi / 4,
			Near: 0.1,
			Far:  1000,
		},
		Orbit:    PlanarAxis{Enabled: true, Sensitivity: 1, Smoothness: 0.8},
		Pan:      PlanarAxis{Enabled: true, Sensitivity: 1, Smoothness: 0.6},
		Zoom:     ScalarAxis{Enabled: true, Sensitivity: 1, Smoothness: 0.8},
		Roll:     ScalarAxis{Enabled: false, Sensitivity: 1, Smoothness: 0.8},
		Base:     IdentityBase(),
		Bindings: input.DefaultBindings(),
	}
}

// mapping builds the aggregator view of the configuration.
func (c Config) mapping() input.Mapping {
	return input.Mapping{
		Bindings: c.Bindings,
		Reverse: input.Reversal{
			OrbitX: c.Orbit.ReverseX,
			OrbitY: c.Orbit.ReverseY,
			PanX:   c.Pan.ReverseX,
			PanY:   c.Pan.ReverseY,
			Zoom:   c.Zoom.Reverse,
			Roll:   c.Roll.Reverse,
		},
		Window:      c.Window,
		RollEnabled: c.Roll.Enabled,
	}
}

// ConfigError reports a single invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("camera config: %s: %s", e.Field, e.Reason)
}

// Validate reports every invalid field of c, joined with errors.Join.
//
// Returns:
//   - error: nil if the configuration is valid
func (c Config) Validate() error {
	_, err := c.sanitize(DefaultConfig())
	return err
}

// validator collects field errors and restores rejected fields.
type validator struct {
	errs []error
}

func (v *validator) require(ok bool, field, reason string, restore func()) {
	if ok {
		return
	}
	v.errs = append(v.errs, &ConfigError{Field: field, Reason: reason})
	restore()
}

func (v *validator) smoothness(field string, p *float32, last float32) {
	s := *p
	v.require(common.IsFinite(s) && s >= 0 && s < 1, field, fmt.Sprintf("smoothness %v outside [0, 1)", s), func() { *p = last })
}

func (v *validator) sensitivity(field string, p *float32, last float32) {
	s := *p
	v.require(common.IsFinite(s) && s >= 0, field, fmt.Sprintf("sensitivity %v must be finite and non-negative", s), func() { *p = last })
}

func (v *validator) positive(field string, p *float32, last float32) {
	s := *p
	v.require(common.IsFinite(s) && s > 0, field, fmt.Sprintf("%v must be positive", s), func() { *p = last })
}

func (v *validator) limits(field string, p *Limits, last Limits) {
	l := *p
	finite := (l.Lower == nil || common.IsFinite(*l.Lower)) && (l.Upper == nil || common.IsFinite(*l.Upper))
	v.require(finite, field, "limits must be finite", func() { *p = last })
	if !finite {
		return
	}
	v.require(l.Lower == nil || l.Upper == nil || *l.Lower <= *l.Upper, field,
		fmt.Sprintf("lower limit %v above upper limit %v", deref(l.Lower), deref(l.Upper)), func() { *p = last })
}

func deref(p *float32) float32 {
	if p == nil {
		return 0
	}
	return *p
}

// sanitize validates c field by field. Every rejected field takes its value from last.
// The returned Config is always valid when last is.
func (c Config) sanitize(last Config) (Config, error) {
	var v validator

	v.smoothness("orbit.smoothness", &c.Orbit.Smoothness, last.Orbit.Smoothness)
	v.smoothness("pan.smoothness", &c.Pan.Smoothness, last.Pan.Smoothness)
	v.smoothness("zoom.smoothness", &c.Zoom.Smoothness, last.Zoom.Smoothness)
	v.smoothness("roll.smoothness", &c.Roll.Smoothness, last.Roll.Smoothness)
	v.sensitivity("orbit.sensitivity", &c.Orbit.Sensitivity, last.Orbit.Sensitivity)
	v.sensitivity("pan.sensitivity", &c.Pan.Sensitivity, last.Pan.Sensitivity)
	v.sensitivity("zoom.sensitivity", &c.Zoom.Sensitivity, last.Zoom.Sensitivity)
	v.sensitivity("roll.sensitivity", &c.Roll.Sensitivity, last.Roll.Sensitivity)

	v.limits("alpha_limits", &c.AlphaLimits, last.AlphaLimits)
	v.limits("beta_limits", &c.BetaLimits, last.BetaLimits)
	v.limits("zoom_limits", &c.ZoomLimits, last.ZoomLimits)

	fb := c.FocusBounds
	centerOK := common.IsFinite(fb.Center[0]) && common.IsFinite(fb.Center[1]) && common.IsFinite(fb.Center[2])
	switch fb.Shape {
	case BoundNone:
	case BoundSphere:
		v.require(centerOK && common.IsFinite(fb.Radius) && fb.Radius > 0, "focus_bounds",
			fmt.Sprintf("sphere radius %v must be positive", fb.Radius), func() { c.FocusBounds = last.FocusBounds })
	case BoundBox:
		h := fb.HalfExtents
		ok := centerOK
		for i := range 3 {
			ok = ok && common.IsFinite(h[i]) && h[i] > 0
		}
		v.require(ok, "focus_bounds", fmt.Sprintf("box half extents %v must be positive", h), func() { c.FocusBounds = last.FocusBounds })
	default:
		v.require(false, "focus_bounds", fmt.Sprintf("unknown shape %d", fb.Shape), func() { c.FocusBounds = last.FocusBounds })
	}

	p := c.Projection
	v.require(p.Kind == Perspective || p.Kind == Orthographic, "projection.kind",
		fmt.Sprintf("unknown projection %d", p.Kind), func() { c.Projection.Kind = last.Projection.Kind })
	if c.Projection.Kind == Perspective {
		v.require(common.IsFinite(p.Fov) && p.Fov > 0 && p.Fov < math.Pi, "projection.fov",
			fmt.Sprintf("field of view %v outside (0, π)", p.Fov), func() { c.Projection.Fov = last.Projection.Fov })
	}
	v.require(common.IsFinite(p.Near) && common.IsFinite(p.Far) && p.Near > 0 && p.Far > p.Near, "projection.clip",
		fmt.Sprintf("clip planes near=%v far=%v must satisfy 0 < near < far", p.Near, p.Far), func() {
			c.Projection.Near = last.Projection.Near
			c.Projection.Far = last.Projection.Far
		})

	q := c.Base.Rotation
	qlen := q.Len()
	v.require(common.IsFinite(qlen) && qlen > 1e-6, "base.rotation", "rotation must be a non-zero quaternion",
		func() { c.Base.Rotation = last.Base.Rotation })
	c.Base.Rotation = c.Base.Rotation.Normalize()
	o := c.Base.Offset
	v.require(common.IsFinite(o[0]) && common.IsFinite(o[1]) && common.IsFinite(o[2]), "base.offset",
		"offset must be finite", func() { c.Base.Offset = last.Base.Offset })

	b := &c.Bindings
	v.positive("bindings.scroll_pixels_per_line", &b.ScrollPixelsPerLine, last.Bindings.ScrollPixelsPerLine)
	v.positive("bindings.line_zoom", &b.LineZoom, last.Bindings.LineZoom)
	v.positive("bindings.pinch_lines", &b.PinchLines, last.Bindings.PinchLines)
	v.sensitivity("bindings.trackpad_sensitivity", &b.TrackpadSensitivity, last.Bindings.TrackpadSensitivity)
	v.sensitivity("bindings.key_rates.orbit", &b.KeyRates.Orbit, last.Bindings.KeyRates.Orbit)
	v.sensitivity("bindings.key_rates.pan", &b.KeyRates.Pan, last.Bindings.KeyRates.Pan)
	v.sensitivity("bindings.key_rates.zoom", &b.KeyRates.Zoom, last.Bindings.KeyRates.Zoom)
	v.sensitivity("bindings.key_rates.roll", &b.KeyRates.Roll, last.Bindings.KeyRates.Roll)

	v.require(common.IsFinite(c.MaxTouchJump) && c.MaxTouchJump >= 0, "max_touch_jump",
		fmt.Sprintf("%v must be non-negative", c.MaxTouchJump), func() { c.MaxTouchJump = last.MaxTouchJump })

	return c, errors.Join(v.errs...)
}
