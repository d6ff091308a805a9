package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// referenceFrame is the frame duration at which smoothness is specified.
	referenceFrame = 1.0 / 60
	// snapEpsilon is the remaining distance below which a value snaps onto its target.
	snapEpsilon = 1e-3
)

// smoothFraction returns the share of the remaining distance to cover in a frame of
// length dt so that a factor s behaves the same at any frame rate.
//
// Parameters:
//   - s: smoothness in [0, 1), 0 snaps
//   - dt: frame duration in seconds
//
// Returns:
//   - float32: interpolation fraction in [0, 1]
func smoothFraction(s, dt float32) float32 {
	if s <= 0 {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return 1 - float32(math.Pow(float64(s), float64(dt)/referenceFrame))
}

// approach moves current toward target by frac, snapping when close.
func approach(current, target, frac float32) float32 {
	diff := target - current
	if frac >= 1 || float32(math.Abs(float64(diff))) < snapEpsilon {
		return target
	}
	return current + diff*frac
}

func approachVec3(current, target mgl32.Vec3, frac float32) mgl32.Vec3 {
	diff := target.Sub(current)
	if frac >= 1 || diff.Len() < snapEpsilon {
		return target
	}
	return current.Add(diff.Mul(frac))
}
