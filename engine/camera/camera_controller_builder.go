package camera

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// PanOrbitControllerOption is a functional option for configuring a PanOrbitController.
type PanOrbitControllerOption func(*panOrbitControllerImpl)

// WithConfig sets the full configuration. It is validated when the controller is built.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the configuration
func WithConfig(cfg Config) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		pc.cfg = cfg
	}
}

// WithFocus sets the initial focus point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the focus
func WithFocus(x, y, z float32) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		pc.targets.Focus = mgl32.Vec3{x, y, z}
	}
}

// WithAlpha sets the initial longitude.
//
// Parameters:
//   - alpha: angle in radians
//
// Returns:
//   - PanOrbitControllerOption: functional option to set alpha
func WithAlpha(alpha float32) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		pc.targets.Alpha = alpha
	}
}

// WithBeta sets the initial latitude.
//
// Parameters:
//   - beta: angle in radians
//
// Returns:
//   - PanOrbitControllerOption: functional option to set beta
func WithBeta(beta float32) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		pc.targets.Beta = beta
	}
}

// WithRadius sets the initial distance from the focus.
//
// Parameters:
//   - radius: distance from the focus
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the radius
func WithRadius(radius float32) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		pc.targets.Radius = radius
	}
}

// WithZoom sets the initial orthographic zoom.
//
// Parameters:
//   - zoom: visible world height
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the zoom
func WithZoom(zoom float32) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		pc.targets.Zoom = zoom
	}
}

// WithPosition derives alpha, beta and radius from an eye position relative to the
// focus. Applied after every other option.
//
// Parameters:
//   - x, y, z: world-space eye position
//
// Returns:
//   - PanOrbitControllerOption: functional option to set the eye position
func WithPosition(x, y, z float32) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		eye := mgl32.Vec3{x, y, z}
		pc.eye = &eye
	}
}

// WithLogger sets the logger used for configuration warnings.
func WithLogger(logger *slog.Logger) PanOrbitControllerOption {
	return func(pc *panOrbitControllerImpl) {
		if logger != nil {
			pc.logger = logger
		}
	}
}
