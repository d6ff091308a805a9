package common

import (
	"math"
)

// Tau is one full turn in radians.
const Tau = float32(2 * math.Pi)

// ClampOptional clamps v between optional bounds. A nil bound leaves that side open,
// so with both bounds nil the value is returned unchanged.
//
// Parameters:
//   - v: the value to clamp
//   - lower: optional lower bound
//   - upper: optional upper bound
//
// Returns:
//   - float32: the clamped value
func ClampOptional(v float32, lower, upper *float32) float32 {
	if lower != nil && v < *lower {
		v = *lower
	}
	if upper != nil && v > *upper {
		v = *upper
	}
	return v
}

// WrapTau returns the multiple of a full turn that must be subtracted from v to bring
// it into [0, 2π), together with the wrapped value.
// Callers use the offset to shift related angles by the same amount.
//
// Parameters:
//   - v: angle in radians
//
// Returns:
//   - wrapped: v reduced into [0, 2π)
//   - offset: the amount subtracted (an integer multiple of 2π)
func WrapTau(v float32) (wrapped, offset float32) {
	turns := math.Floor(float64(v) / (2 * math.Pi))
	if turns == 0 {
		return v, 0
	}
	offset = float32(turns * 2 * math.Pi)
	wrapped = v - offset
	// float32 rounding can land exactly on 2π
	if wrapped >= Tau {
		wrapped -= Tau
		offset += Tau
	}
	if wrapped < 0 {
		wrapped = 0
	}
	return wrapped, offset
}

// SignedAngle returns the signed angle in radians that rotates vector a onto vector b,
// in (-π, π]. With screen coordinates (y pointing down) a positive result is a
// clockwise rotation.
//
// Parameters:
//   - ax, ay: first vector
//   - bx, by: second vector
//
// Returns:
//   - float32: signed rotation angle in radians
func SignedAngle(ax, ay, bx, by float32) float32 {
	cross := float64(ax*by - ay*bx)
	dot := float64(ax*bx + ay*by)
	return float32(math.Atan2(cross, dot))
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float32) float32 {
	if IsFinite(v) {
		return v
	}
	return 0
}

// Sincos returns the sine and cosine of a float32 angle.
func Sincos(v float32) (sin, cos float32) {
	s, c := math.Sincos(float64(v))
	return float32(s), float32(c)
}

// AngleDelta returns the shortest signed rotation from one angle to another, in [-π, π).
//
// Parameters:
//   - from: starting angle in radians
//   - to: destination angle in radians
//
// Returns:
//   - float32: the signed difference, to - from reduced to the shortest way around
func AngleDelta(from, to float32) float32 {
	d := math.Mod(float64(to-from)+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return float32(d - math.Pi)
}
