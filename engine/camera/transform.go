package camera

import (
	"math"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the resolved camera transform for a frame.
type Pose struct {
	// Position is the eye position in world space.
	Position mgl32.Vec3
	// Orientation rotates camera space (right +X, up +Y, looking down -Z) into world space.
	Orientation mgl32.Quat
	Focus       mgl32.Vec3
	Radius      float32
	// Zoom is the visible world height of an orthographic camera.
	Zoom       float32
	UpsideDown bool
}

// Forward returns the viewing direction.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Up returns the camera up axis.
func (p Pose) Up() mgl32.Vec3 {
	return p.Orientation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Right returns the camera right axis.
func (p Pose) Right() mgl32.Vec3 {
	return p.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
}

// ViewMatrix returns the world-to-camera matrix.
//
// Returns:
//   - mgl32.Mat4: the inverse of the camera's world transform
func (p Pose) ViewMatrix() mgl32.Mat4 {
	return p.Orientation.Inverse().Mat4().Mul4(mgl32.Translate3D(-p.Position[0], -p.Position[1], -p.Position[2]))
}

// poleTolerance keeps float32 renderings of ±π/2 on the upright side.
const poleTolerance = 1e-5

// isUpsideDown reports whether beta lies past a pole.
func isUpsideDown(beta float32) bool {
	b := math.Mod(math.Abs(float64(beta)), 2*math.Pi)
	return b > math.Pi/2+poleTolerance && b < 3*math.Pi/2-poleTolerance
}

// Resolve computes the camera transform from spherical coordinates around focus.
//
// The orientation is built directly from the spherical basis instead of a look-at, so
// the right axis never depends on beta and the poles are not singular. Past a pole the
// up axis points against the base up.
//
// Parameters:
//   - alpha: longitude around the base up axis in radians
//   - beta: latitude in radians
//   - roll: rotation about the viewing axis in radians
//   - radius: distance from focus
//   - focus: the orbit center in world space
//   - base: the home frame
//
// Returns:
//   - Pose: the resolved transform, with Zoom left unset
func Resolve(alpha, beta, roll, radius float32, focus mgl32.Vec3, base BaseTransform) Pose {
	sa, ca := common.Sincos(alpha)
	sb, cb := common.Sincos(beta)

	back := mgl32.Vec3{cb * sa, sb, cb * ca}
	right := mgl32.Vec3{ca, 0, -sa}
	up := mgl32.Vec3{-sb * sa, cb, -sb * ca}

	rot := base.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}

	basis := mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, up, back).Mat4())
	orientation := rot.Mul(basis).Mul(mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1})).Normalize()

	return Pose{
		Position:    base.Offset.Add(focus).Add(rot.Rotate(back.Mul(radius))),
		Orientation: orientation,
		Focus:       focus,
		Radius:      radius,
		UpsideDown:  isUpsideDown(beta),
	}
}

// anglesFromEye derives alpha, beta and radius from an eye position. ok is false when
// the eye coincides with the focus.
func anglesFromEye(eye, focus mgl32.Vec3, base BaseTransform) (alpha, beta, radius float32, ok bool) {
	rot := base.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	local := rot.Inverse().Rotate(eye.Sub(base.Offset).Sub(focus))
	radius = local.Len()
	if radius < 1e-6 {
		return 0, 0, 0, false
	}
	alpha = float32(math.Atan2(float64(local[0]), float64(local[2])))
	beta = float32(math.Asin(float64(mgl32.Clamp(local[1]/radius, -1, 1))))
	return alpha, beta, radius, true
}
