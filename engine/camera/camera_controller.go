package camera

import (
	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Targets are the externally writable desired values of a camera. Input moves them
// synchronously; scripted control may set them directly.
type Targets struct {
	// Alpha is the longitude around the base up axis in radians.
	Alpha float32
	// Beta is the latitude in radians; positive looks down on the focus.
	Beta float32
	// Roll is the rotation about the viewing axis in radians.
	Roll float32
	// Radius is the distance from the focus.
	Radius float32
	// Zoom is the visible world height when the projection is orthographic.
	Zoom  float32
	Focus mgl32.Vec3
}

// State is a read-only copy of the integrator-owned current values.
type State struct {
	Alpha      float32
	Beta       float32
	Roll       float32
	Radius     float32
	Zoom       float32
	Focus      mgl32.Vec3
	UpsideDown bool
}

// PanOrbitController defines the interface of an orbit/pan/zoom camera controller.
// The controller owns the current values; Update is their only writer. Targets and
// configuration may be changed at any time from any goroutine.
type PanOrbitController interface {
	// Update advances the camera by one frame: input is aggregated into the targets,
	// constraints are applied, current values are smoothed toward the targets and the
	// resulting transform is resolved.
	//
	// Parameters:
	//   - dt: frame duration in seconds
	//   - snap: the frame's input
	//
	// Returns:
	//   - Pose: the resolved transform
	Update(dt float32, snap input.Snapshot) Pose

	// Pose returns the transform resolved by the last Update.
	//
	// Returns:
	//   - Pose: the last resolved transform
	Pose() Pose

	// Targets returns the current targets.
	//
	// Returns:
	//   - Targets: a copy of the targets
	Targets() Targets

	// SetTargets replaces the targets. Constraints are applied immediately; the current
	// values follow through smoothing.
	//
	// Parameters:
	//   - t: the new targets
	SetTargets(t Targets)

	// ModifyTargets edits the targets in place under the controller lock.
	//
	// Parameters:
	//   - fn: called with a pointer to the targets
	ModifyTargets(fn func(t *Targets))

	// ForceTargets snaps every current value onto its target and resolves the pose.
	ForceTargets()

	// State returns a copy of the current values.
	//
	// Returns:
	//   - State: the integrator-owned state
	State() State

	// IsUpsideDown reports whether the camera is past a pole.
	//
	// Returns:
	//   - bool: the upside-down flag computed by the last Update
	IsUpsideDown() bool

	// Config returns a copy of the active configuration.
	//
	// Returns:
	//   - Config: the active configuration
	Config() Config

	// SetConfig replaces the configuration. Invalid fields keep their last valid value;
	// the returned error joins one *ConfigError per rejected field.
	//
	// Parameters:
	//   - cfg: the new configuration
	//
	// Returns:
	//   - error: nil if every field was accepted
	SetConfig(cfg Config) error
}
