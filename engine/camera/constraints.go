package camera

import (
	"math"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

const halfPi = float32(math.Pi / 2)

// constrainAngles applies angle limits to the targets. Unlimited angles wrap into
// [0, 2π). With follow set the targets were advanced by input from their previous
// wrapped values, so the current value shifts by the same multiple of 2π. Otherwise
// the targets were written directly and the current value moves by whole turns to
// within π of its target.
func constrainAngles(cfg Config, t *Targets, s *State, follow bool) {
	if cfg.AlphaLimits.Bounded() {
		t.Alpha = cfg.AlphaLimits.Clamp(t.Alpha)
	} else {
		wrapAngle(&t.Alpha, &s.Alpha, follow)
	}

	switch {
	case cfg.BetaLimits.Bounded():
		t.Beta = cfg.BetaLimits.Clamp(t.Beta)
		if !cfg.AllowUpsideDown {
			t.Beta = mgl32.Clamp(t.Beta, -halfPi, halfPi)
		}
	case !cfg.AllowUpsideDown:
		t.Beta = mgl32.Clamp(t.Beta, -halfPi, halfPi)
	default:
		wrapAngle(&t.Beta, &s.Beta, follow)
	}

	wrapAngle(&t.Roll, &s.Roll, follow)
}

func wrapAngle(target, current *float32, follow bool) {
	var off float32
	*target, off = common.WrapTau(*target)
	if follow {
		*current -= off
		return
	}
	if d := *current - *target; d > math.Pi || d < -math.Pi {
		*current = *target + common.AngleDelta(*target, *current)
	}
}

// constrainZoom clamps radius and zoom targets to the limits and the MinZoom floor.
func constrainZoom(cfg Config, t *Targets) {
	t.Radius = clampZoom(cfg.ZoomLimits, t.Radius)
	t.Zoom = clampZoom(cfg.ZoomLimits, t.Zoom)
}

func clampZoom(l Limits, v float32) float32 {
	if !common.IsFinite(v) {
		v = MinZoom
	}
	v = l.Clamp(v)
	if v < MinZoom {
		v = MinZoom
	}
	return v
}

// constrainFocus clamps p into the bound shape: per axis for a box, along the
// direction from the center for a sphere.
func constrainFocus(b FocusBounds, p mgl32.Vec3) mgl32.Vec3 {
	switch b.Shape {
	case BoundSphere:
		off := p.Sub(b.Center)
		if d := off.Len(); d > b.Radius {
			return b.Center.Add(off.Mul(b.Radius / d))
		}
	case BoundBox:
		for i := range 3 {
			p[i] = mgl32.Clamp(p[i], b.Center[i]-b.HalfExtents[i], b.Center[i]+b.HalfExtents[i])
		}
	}
	return p
}

// constrain applies every constraint in order: angles, zoom, focus. follow is set when
// the targets moved by input deltas rather than by a direct write.
func constrain(cfg Config, t *Targets, s *State, follow bool) {
	if !common.IsFinite(t.Alpha) {
		t.Alpha = s.Alpha
	}
	if !common.IsFinite(t.Beta) {
		t.Beta = s.Beta
	}
	if !common.IsFinite(t.Roll) {
		t.Roll = s.Roll
	}
	if !common.IsFinite(t.Radius) {
		t.Radius = s.Radius
	}
	if !common.IsFinite(t.Zoom) {
		t.Zoom = s.Zoom
	}
	for i := range 3 {
		if !common.IsFinite(t.Focus[i]) {
			t.Focus[i] = s.Focus[i]
		}
	}
	constrainAngles(cfg, t, s, follow)
	constrainZoom(cfg, t)
	t.Focus = constrainFocus(cfg.FocusBounds, t.Focus)
}
