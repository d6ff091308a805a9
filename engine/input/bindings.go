package input

import (
	"math"

	"github.com/Carmen-Shannon/panorbit-go/common"
)

// Calibration defaults for mapping raw scroll and pinch magnitudes into zoom.
const (
	// DefaultScrollPixelsPerLine converts pixel scroll into line-equivalent steps.
	DefaultScrollPixelsPerLine float32 = 200
	// DefaultPinchLines converts a trackpad magnification delta into line-equivalent steps.
	DefaultPinchLines float32 = 10
	// DefaultTrackpadSensitivity scales pixel scroll used for trackpad orbit/pan.
	DefaultTrackpadSensitivity float32 = 1
)

// DefaultLineZoom is the zoom, in log units, of one scroll line: a single notch brings
// the camera 20% closer.
var DefaultLineZoom = float32(-math.Log(0.8))

// TrackpadBehavior selects how pixel-based scroll from a trackpad is interpreted.
type TrackpadBehavior int

const (
	// TrackpadDefaultZoom makes all scroll zoom.
	TrackpadDefaultZoom TrackpadBehavior = iota
	// TrackpadBlenderLike makes two-finger trackpad scroll orbit, pan with the pan
	// modifier held and zoom with the zoom modifier held.
	TrackpadBlenderLike
)

// TouchControls selects the touch control scheme.
type TouchControls int

const (
	// TouchOneFingerOrbit orbits with one finger; two fingers pan, pinch-zoom and roll.
	TouchOneFingerOrbit TouchControls = iota
	// TouchTwoFingerOrbit pans with one finger; two fingers orbit, pinch-zoom and roll.
	TouchTwoFingerOrbit
)

// Trigger is a mouse button with an optional modifier key that must be held with it.
type Trigger struct {
	Button   common.MouseButton
	Modifier *common.Key
}

// held reports whether the trigger is active. The other trigger's modifier, when set
// and held, blocks this one so a modifier can reuse the same button.
func (t Trigger) held(s Snapshot, other Trigger) bool {
	return modifierHeld(s, t.Modifier) &&
		s.Buttons.Pressed.Has(t.Button) &&
		!modifierPressed(s, other.Modifier)
}

func (t Trigger) justPressed(s Snapshot) bool {
	return modifierHeld(s, t.Modifier) && s.Buttons.JustPressed.Has(t.Button)
}

// modifierHeld is true when no modifier is required or the required one is held.
func modifierHeld(s Snapshot, m *common.Key) bool {
	return m == nil || s.Keys.Pressed.Has(*m)
}

// modifierPressed is true only when a modifier is configured and held.
func modifierPressed(s Snapshot, m *common.Key) bool {
	return m != nil && s.Keys.Pressed.Has(*m)
}

// KeyBindings maps keyboard keys to continuous camera motion. Any key in a slice
// triggers the action.
type KeyBindings struct {
	OrbitLeft  []common.Key
	OrbitRight []common.Key
	OrbitUp    []common.Key
	OrbitDown  []common.Key
	PanLeft    []common.Key
	PanRight   []common.Key
	PanUp      []common.Key
	PanDown    []common.Key
	ZoomIn     []common.Key
	ZoomOut    []common.Key
	RollLeft   []common.Key
	RollRight  []common.Key
}

// KeyRates are the per-second rates of keyboard-driven motion.
type KeyRates struct {
	// Orbit in radians per second.
	Orbit float32
	// Pan in viewport fractions per second.
	Pan float32
	// Zoom in line-equivalent steps per second.
	Zoom float32
	// Roll in radians per second.
	Roll float32
}

// DefaultKeyRates returns the default keyboard rates.
func DefaultKeyRates() KeyRates {
	return KeyRates{
		Orbit: math.Pi / 2,
		Pan:   0.5,
		Zoom:  4,
		Roll:  math.Pi / 2,
	}
}

// Bindings configures how raw input maps to camera motion.
type Bindings struct {
	Orbit Trigger
	Pan   Trigger

	Keys     KeyBindings
	KeyRates KeyRates

	Trackpad             TrackpadBehavior
	TrackpadModifierPan  *common.Key
	TrackpadModifierZoom *common.Key
	TrackpadSensitivity  float32
	PinchToZoom          bool

	// ScrollPixelsPerLine converts pixel scroll into lines before zooming.
	ScrollPixelsPerLine float32
	// LineZoom is the zoom, in log units, of one scroll line.
	LineZoom float32
	// PinchLines converts trackpad magnification into lines.
	PinchLines float32

	Touch TouchControls
}

// DefaultBindings returns left-button orbit, right-button pan, no keyboard bindings and
// the default scroll calibration.
func DefaultBindings() Bindings {
	return Bindings{
		Orbit:               Trigger{Button: common.MouseButtonLeft},
		Pan:                 Trigger{Button: common.MouseButtonRight},
		KeyRates:            DefaultKeyRates(),
		Trackpad:            TrackpadDefaultZoom,
		TrackpadSensitivity: DefaultTrackpadSensitivity,
		PinchToZoom:         true,
		ScrollPixelsPerLine: DefaultScrollPixelsPerLine,
		LineZoom:            DefaultLineZoom,
		PinchLines:          DefaultPinchLines,
		Touch:               TouchOneFingerOrbit,
	}
}

// Reversal negates individual axes. Flags are applied by the Aggregator before any
// sensitivity scaling, identically for mouse, keyboard, trackpad and touch input.
type Reversal struct {
	OrbitX bool
	OrbitY bool
	PanX   bool
	PanY   bool
	Zoom   bool
	Roll   bool
}
