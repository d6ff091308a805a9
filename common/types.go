// package common contains common types that are used throughout this module. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// WindowID identifies a window known to the host. The zero value is the primary window.
type WindowID uint32

// Rect is an axis-aligned rectangle in logical window coordinates (origin top-left,
// y pointing down).
type Rect struct {
	// Min is the top-left corner.
	Min mgl32.Vec2
	// Max is the bottom-right corner.
	Max mgl32.Vec2
}

// Size returns the width and height of the rectangle.
//
// Returns:
//   - mgl32.Vec2: width, height
func (r Rect) Size() mgl32.Vec2 {
	return r.Max.Sub(r.Min)
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	s := r.Size()
	return s[0] <= 0 || s[1] <= 0
}

// Contains reports whether p lies strictly inside the rectangle.
//
// Parameters:
//   - p: point in window coordinates
//
// Returns:
//   - bool: true if p is inside
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p[0] > r.Min[0] && p[0] < r.Max[0] &&
		p[1] > r.Min[1] && p[1] < r.Max[1]
}
