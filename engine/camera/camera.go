package camera

import (
	"sync"

	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	aspect float32

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4

	controller PanOrbitController
	pose       Pose
}

// Camera pairs a PanOrbitController with a lens and keeps the matrices a renderer
// needs. Update drives the controller and recomputes the matrices once per frame.
type Camera interface {
	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio and recomputes the matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Controller returns the attached controller.
	//
	// Returns:
	//   - PanOrbitController: the controller
	Controller() PanOrbitController

	// Update advances the controller by one frame and recomputes the matrices. The aspect
	// ratio follows the snapshot's viewport when one is reported.
	//
	// Parameters:
	//   - dt: frame duration in seconds
	//   - snap: the frame's input
	//
	// Returns:
	//   - Pose: the resolved transform
	Update(dt float32, snap input.Snapshot) Pose

	// Refresh recomputes the matrices from the controller's last pose without advancing it.
	Refresh()

	// Pose returns the pose the matrices were computed from.
	Pose() Pose

	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ViewProjectionMatrix() mgl32.Mat4
	// InverseProjectionMatrix is used to unproject screen points into view space.
	InverseProjectionMatrix() mgl32.Mat4

	// Uniform packs the view-projection matrix and eye position for upload.
	//
	// Returns:
	//   - CameraUniform: the packed uniform
	Uniform() CameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera. Without WithController a default controller is created.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		aspect: 1.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewPanOrbitController()
	}
	c.pose = c.controller.Pose()
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect > 0 {
		c.aspect = aspect
	}
	c.updateMatrices()
}

func (c *cameraImpl) Controller() PanOrbitController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update(dt float32, snap input.Snapshot) Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size := viewportSize(snap); size[0] > 0 && size[1] > 0 {
		c.aspect = size[0] / size[1]
	}
	c.pose = c.controller.Update(dt, snap)
	c.updateMatrices()
	return c.pose
}

func (c *cameraImpl) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = c.controller.Pose()
	c.updateMatrices()
}

func (c *cameraImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Uniform() CameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.pose.Position,
	}
}

// updateMatrices recalculates the view, projection, view-projection and inverse
// projection matrices from the current pose.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	lens := c.controller.Config().Projection
	c.viewMatrix = c.pose.ViewMatrix()
	c.projectionMatrix = lens.Matrix(c.aspect, c.pose.Zoom)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}
