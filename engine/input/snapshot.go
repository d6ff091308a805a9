package input

import (
	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ScrollUnit tags how a scroll delta is measured. Line-based deltas come from notched
// mouse wheels; pixel-based deltas come from trackpads and smooth-scrolling wheels and
// are roughly two orders of magnitude larger.
type ScrollUnit int

const (
	ScrollLine ScrollUnit = iota
	ScrollPixel
)

// ScrollEvent is a single scroll delta reported by the windowing backend.
type ScrollEvent struct {
	// Delta is the horizontal and vertical scroll amount. Positive Y scrolls up.
	Delta mgl32.Vec2
	// Unit tags the measurement of Delta.
	Unit ScrollUnit
}

// TouchID identifies a finger for as long as it stays on the surface.
type TouchID uint64

// Touch is an active touch point in window coordinates.
type Touch struct {
	ID       TouchID
	Position mgl32.Vec2
}

// Set is a set of keys or buttons. The nil Set is empty and safe to query.
type Set[T comparable] map[T]struct{}

// NewSet builds a Set from the given items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// HasAny reports whether any of vs is in the set.
func (s Set[T]) HasAny(vs []T) bool {
	for _, v := range vs {
		if s.Has(v) {
			return true
		}
	}
	return false
}

// ButtonInput holds the held state and the edges of a family of buttons for one frame.
type ButtonInput[T comparable] struct {
	// Pressed contains everything held at the end of the frame.
	Pressed Set[T]
	// JustPressed contains everything that went down during the frame.
	JustPressed Set[T]
	// JustReleased contains everything that went up during the frame.
	JustReleased Set[T]
}

// Snapshot is the per-frame input consumed by camera controllers. It is produced once
// per frame by the windowing collaborator (see Collector) and treated as read-only.
type Snapshot struct {
	// Window is the window that had pointer/keyboard focus this frame.
	Window common.WindowID
	// WindowSize is the logical size of Window, used to scale orbit motion.
	WindowSize mgl32.Vec2
	// ViewportSize is the logical size of the camera's viewport, used to scale panning.
	// Falls back to WindowSize when zero.
	ViewportSize mgl32.Vec2

	// Cursor is the cursor position in window coordinates, valid when HasCursor is set.
	Cursor    mgl32.Vec2
	HasCursor bool
	// CursorDelta is the summed cursor motion in pixels for the frame.
	CursorDelta mgl32.Vec2

	// Scroll lists every scroll event of the frame in arrival order.
	Scroll []ScrollEvent
	// Pinch is the summed trackpad magnification delta for the frame.
	Pinch float32

	Buttons ButtonInput[common.MouseButton]
	Keys    ButtonInput[common.Key]

	// Touches lists the active touch points.
	Touches []Touch
	// TouchStarts counts touches that began during the frame.
	TouchStarts int

	// GUIConsumed marks windows whose pointer input was taken by a GUI overlay.
	GUIConsumed map[common.WindowID]bool
}

// PointerConsumed reports whether pointer input for the given window was consumed by
// the GUI overlay this frame.
//
// Parameters:
//   - w: the window to query
//
// Returns:
//   - bool: true if pointer-derived input must be ignored for w
func (s Snapshot) PointerConsumed(w common.WindowID) bool {
	return s.GUIConsumed[w]
}

// Activated reports whether this frame begins a new interaction under the given
// bindings: an orbit or pan trigger went down, the wheel moved, or every active touch
// started this frame. Used to decide which camera receives input.
//
// Parameters:
//   - b: the bindings of the camera being considered
//
// Returns:
//   - bool: true if a new interaction started
func (s Snapshot) Activated(b Bindings) bool {
	return b.Orbit.justPressed(s) ||
		b.Pan.justPressed(s) ||
		len(s.Scroll) > 0 ||
		(s.TouchStarts > 0 && s.TouchStarts == len(s.Touches))
}

// PointerPosition returns the cursor position, or the first touch position when no
// cursor is present.
//
// Returns:
//   - mgl32.Vec2: pointer position in window coordinates
//   - bool: false if there is neither a cursor nor a touch
func (s Snapshot) PointerPosition() (mgl32.Vec2, bool) {
	if s.HasCursor {
		return s.Cursor, true
	}
	if len(s.Touches) > 0 {
		return s.Touches[0].Position, true
	}
	return mgl32.Vec2{}, false
}
