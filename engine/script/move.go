package script

import (
	"github.com/Carmen-Shannon/panorbit-go/engine/camera"
	"github.com/tanema/gween/ease"
)

// Keyframe is one waypoint of a Move.
type Keyframe struct {
	// Targets is the pose the camera reaches at the end of this keyframe.
	Targets camera.Targets
	// Duration is the time in seconds to travel from the previous keyframe.
	Duration float32
	// Easing overrides the move's easing for this leg. nil uses the move's easing.
	Easing ease.TweenFunc
}

// Move drives a controller's targets through a list of keyframes. It only writes
// targets, so the controller's smoothing and constraints still apply on top.
//
// Angles take the shortest way around; radius and zoom are interpolated in log space
// so that equal times give equal zoom factors.
type Move interface {
	// Update advances the move by dt seconds and writes the interpolated targets to the
	// controller.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - bool: true once the final keyframe has been written
	Update(dt float32) bool

	// Done reports whether the move has finished or was cancelled.
	//
	// Returns:
	//   - bool: true if no further targets will be written
	Done() bool

	// Cancel stops the move where it is. The targets keep their last written values.
	Cancel()

	// Controller returns the controller the move drives.
	Controller() camera.PanOrbitController
}
