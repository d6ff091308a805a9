package rig

import (
	"github.com/Carmen-Shannon/panorbit-go/engine/camera"
	"github.com/Carmen-Shannon/panorbit-go/engine/script"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// CameraData is the per-entity camera component.
type CameraData struct {
	Camera camera.Camera
	// seq orders cameras with equal Order by spawn time.
	seq uint64
}

// ScriptData holds the scripted move currently driving an entity's targets.
type ScriptData struct {
	Move script.Move
}

var (
	Camera = donburi.NewComponentType[CameraData]()
	Script = donburi.NewComponentType[ScriptData]()
	// Active tags the camera that receives input.
	Active = donburi.NewTag().SetName("Active")

	cameraQuery = donburi.NewQuery(filter.Contains(Camera))
	activeQuery = donburi.NewQuery(filter.Contains(Camera, Active))
)
