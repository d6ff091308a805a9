package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix returns the projection matrix for the given aspect ratio. zoom is the
// visible world height of an orthographic projection and is ignored in perspective.
//
// Parameters:
//   - aspect: viewport width over height
//   - zoom: orthographic visible height
//
// Returns:
//   - mgl32.Mat4: the projection matrix (OpenGL clip conventions)
func (p Projection) Matrix(aspect, zoom float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	if p.Kind == Orthographic {
		h := zoom / 2
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, p.Near, p.Far)
	}
	return mgl32.Perspective(p.Fov, aspect, p.Near, p.Far)
}
