package input

import (
	"math"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Mapping is everything the Aggregator needs to know about one camera.
type Mapping struct {
	Bindings Bindings
	Reverse  Reversal
	// Window is the window whose input drives the camera.
	Window common.WindowID
	// RollEnabled gates every roll source.
	RollEnabled bool
}

// Deltas are the semantic per-frame camera deltas, before sensitivity.
type Deltas struct {
	// Orbit is in radians. Positive X is a rightward drag, positive Y a downward drag.
	Orbit mgl32.Vec2
	// Pan is in viewport fractions. Positive X is a rightward drag, positive Y a
	// downward drag.
	Pan mgl32.Vec2
	// Zoom is in log units; positive zooms in.
	Zoom float32
	// Roll is in radians.
	Roll float32

	// OrbitRequested is set while the orbit trigger is held.
	OrbitRequested bool
	// PanRequested is set while the pan trigger is held and orbit is not.
	PanRequested bool
	// Ignored is set when pointer input was consumed by the GUI overlay.
	Ignored bool
}

// Aggregate normalizes one frame of raw input into semantic deltas for a camera. It
// is a pure function of its arguments.
//
// Pointer-derived deltas (mouse, scroll, trackpad, touch) are dropped when the GUI
// consumed the camera's window this frame or when the snapshot belongs to another
// window. Keyboard deltas always apply. Reversal flags are applied last.
//
// Parameters:
//   - snap: the frame's input snapshot
//   - gesture: the resolved touch gesture for the frame
//   - m: the camera's bindings and flags
//   - dt: frame duration in seconds, used for keyboard rates
//
// Returns:
//   - Deltas: the aggregated deltas
func Aggregate(snap Snapshot, gesture Gesture, m Mapping, dt float32) Deltas {
	var d Deltas
	b := m.Bindings
	dt = common.Finite(dt)
	if dt < 0 {
		dt = 0
	}

	pointer := snap.Window == m.Window && !snap.PointerConsumed(m.Window)
	d.Ignored = snap.PointerConsumed(m.Window)

	orbitHeld := b.Orbit.held(snap, b.Pan)
	panHeld := !orbitHeld && b.Pan.held(snap, b.Orbit)
	d.OrbitRequested = orbitHeld
	d.PanRequested = panHeld

	if pointer {
		d.addMouse(snap, orbitHeld, panHeld)
		d.addScroll(snap, b)
		d.addTouch(snap, gesture, b, m.RollEnabled)
	}
	d.addKeys(snap, b, m.RollEnabled, dt)

	if !m.RollEnabled {
		d.Roll = 0
	}
	d.sanitize()
	d.reverse(m.Reverse)
	return d
}

func (d *Deltas) addMouse(snap Snapshot, orbitHeld, panHeld bool) {
	motion := finiteVec2(snap.CursorDelta)
	switch {
	case orbitHeld:
		d.Orbit = d.Orbit.Add(pixelsToOrbit(motion, snap.WindowSize))
	case panHeld:
		d.Pan = d.Pan.Add(pixelsToPan(motion, snap))
	}
}

func (d *Deltas) addScroll(snap Snapshot, b Bindings) {
	perLine := b.ScrollPixelsPerLine
	if perLine <= 0 {
		perLine = DefaultScrollPixelsPerLine
	}

	var lines float32
	for _, ev := range snap.Scroll {
		delta := finiteVec2(ev.Delta)
		if ev.Unit == ScrollLine {
			lines += delta[1]
			continue
		}
		if b.Trackpad != TrackpadBlenderLike {
			lines += delta[1] / perLine
			continue
		}
		// blender-like trackpad: pixel scroll orbits unless a modifier says otherwise
		scaled := delta.Mul(b.TrackpadSensitivity)
		switch {
		case modifierPressed(snap, b.TrackpadModifierZoom):
			lines += delta[1] / perLine
		case modifierPressed(snap, b.TrackpadModifierPan):
			d.Pan = d.Pan.Add(pixelsToPan(scaled, snap))
		default:
			d.Orbit = d.Orbit.Add(pixelsToOrbit(scaled, snap.WindowSize))
		}
	}

	if b.PinchToZoom && !modifierPressed(snap, b.TrackpadModifierPan) && !modifierPressed(snap, b.TrackpadModifierZoom) {
		lines += common.Finite(snap.Pinch) * b.PinchLines
	}
	d.Zoom += lines * b.LineZoom
}

func (d *Deltas) addTouch(snap Snapshot, g Gesture, b Bindings, rollEnabled bool) {
	switch g.Kind {
	case GestureOneFinger:
		if b.Touch == TouchTwoFingerOrbit {
			d.Pan = d.Pan.Add(pixelsToPan(g.Motion, snap))
		} else {
			d.Orbit = d.Orbit.Add(pixelsToOrbit(g.Motion, snap.WindowSize))
		}
	case GestureTwoFinger:
		if b.Touch == TouchTwoFingerOrbit {
			d.Orbit = d.Orbit.Add(pixelsToOrbit(g.Motion, snap.WindowSize))
		} else {
			d.Pan = d.Pan.Add(pixelsToPan(g.Motion, snap))
		}
		if g.PinchRatio > 0 && g.PinchRatio != 1 {
			d.Zoom += float32(math.Log(float64(g.PinchRatio)))
		}
		if rollEnabled {
			d.Roll += g.Rotation
		}
	}
}

func (d *Deltas) addKeys(snap Snapshot, b Bindings, rollEnabled bool, dt float32) {
	keys := snap.Keys.Pressed
	axis := func(neg, pos []common.Key) float32 {
		var v float32
		if keys.HasAny(neg) {
			v--
		}
		if keys.HasAny(pos) {
			v++
		}
		return v
	}

	r := b.KeyRates
	d.Orbit = d.Orbit.Add(mgl32.Vec2{
		axis(b.Keys.OrbitLeft, b.Keys.OrbitRight),
		axis(b.Keys.OrbitUp, b.Keys.OrbitDown),
	}.Mul(r.Orbit * dt))
	// pan keys move the focus, which is the opposite of a drag in the same direction
	d.Pan = d.Pan.Add(mgl32.Vec2{
		-axis(b.Keys.PanLeft, b.Keys.PanRight),
		-axis(b.Keys.PanUp, b.Keys.PanDown),
	}.Mul(r.Pan * dt))
	d.Zoom += axis(b.Keys.ZoomOut, b.Keys.ZoomIn) * r.Zoom * b.LineZoom * dt
	if rollEnabled {
		d.Roll += axis(b.Keys.RollLeft, b.Keys.RollRight) * r.Roll * dt
	}
}

func (d *Deltas) sanitize() {
	d.Orbit = finiteVec2(d.Orbit)
	d.Pan = finiteVec2(d.Pan)
	d.Zoom = common.Finite(d.Zoom)
	d.Roll = common.Finite(d.Roll)
}

func (d *Deltas) reverse(r Reversal) {
	flip := func(v *float32, on bool) {
		if on {
			*v = -*v
		}
	}
	flip(&d.Orbit[0], r.OrbitX)
	flip(&d.Orbit[1], r.OrbitY)
	flip(&d.Pan[0], r.PanX)
	flip(&d.Pan[1], r.PanY)
	flip(&d.Zoom, r.Zoom)
	flip(&d.Roll, r.Roll)
}

// pixelsToOrbit maps a full window width to one full turn and a full window height to
// half a turn.
func pixelsToOrbit(px, window mgl32.Vec2) mgl32.Vec2 {
	if window[0] <= 0 || window[1] <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		px[0] * common.Tau / window[0],
		px[1] * math.Pi / window[1],
	}
}

// pixelsToPan expresses a pixel motion as a fraction of the viewport.
func pixelsToPan(px mgl32.Vec2, snap Snapshot) mgl32.Vec2 {
	size := snap.ViewportSize
	if size[0] <= 0 || size[1] <= 0 {
		size = snap.WindowSize
	}
	if size[0] <= 0 || size[1] <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{px[0] / size[0], px[1] / size[1]}
}

func finiteVec2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{common.Finite(v[0]), common.Finite(v[1])}
}
