package rig

import (
	"github.com/Carmen-Shannon/panorbit-go/engine/camera"
	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/Carmen-Shannon/panorbit-go/engine/script"
	"github.com/yohamta/donburi"
)

// View is the per-frame result for one camera.
type View struct {
	Entity donburi.Entity
	Camera camera.Camera
	Pose   camera.Pose
	// Active is set for the camera that received this frame's input.
	Active bool
}

// Rig owns a set of cameras and routes each frame's input to the active one.
//
// A camera becomes active when an interaction starts (a trigger goes down, the wheel
// moves or a new touch begins) with the pointer inside its viewport. When viewports
// overlap the highest Order wins. The other cameras still update every frame so their
// smoothing and scripted moves continue, but they see no input.
type Rig interface {
	// Spawn adds a camera to the rig. The first camera spawned starts out active.
	//
	// Parameters:
	//   - cam: the camera to add
	//
	// Returns:
	//   - donburi.Entity: the entity holding the camera
	Spawn(cam camera.Camera) donburi.Entity

	// Despawn removes a camera and any move attached to it.
	//
	// Parameters:
	//   - e: the camera entity
	//
	// Returns:
	//   - bool: false if e was not a live camera
	Despawn(e donburi.Entity) bool

	// Camera returns the camera held by an entity.
	//
	// Parameters:
	//   - e: the camera entity
	//
	// Returns:
	//   - camera.Camera: the camera
	//   - bool: false if e was not a live camera
	Camera(e donburi.Entity) (camera.Camera, bool)

	// Play attaches a scripted move to a camera, cancelling any move already running on it.
	// The move is advanced before the camera each frame and detached once done.
	//
	// Parameters:
	//   - e: the camera entity
	//   - m: the move to run
	//
	// Returns:
	//   - bool: false if e was not a live camera
	Play(e donburi.Entity, m script.Move) bool

	// Active returns the camera that currently receives input.
	//
	// Returns:
	//   - donburi.Entity: the active camera
	//   - bool: false if there is none
	Active() (donburi.Entity, bool)

	// SetActive makes a camera the input receiver.
	//
	// Parameters:
	//   - e: the camera entity
	//
	// Returns:
	//   - bool: false if e was not a live camera
	SetActive(e donburi.Entity) bool

	// Update advances every camera by one frame in parallel.
	//
	// Parameters:
	//   - dt: frame duration in seconds
	//   - snap: the frame's input
	//
	// Returns:
	//   - []View: one view per camera in ascending Order
	Update(dt float32, snap input.Snapshot) []View

	// Count returns the number of cameras.
	Count() int
}
