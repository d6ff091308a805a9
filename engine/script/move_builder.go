package script

import (
	"github.com/Carmen-Shannon/panorbit-go/engine/camera"
	"github.com/tanema/gween/ease"
)

// MoveOption is a functional option for configuring a Move.
type MoveOption func(*moveImpl)

// WithKeyframe appends a keyframe to the move.
//
// Parameters:
//   - targets: the targets to reach
//   - duration: seconds to reach them from the previous keyframe
//
// Returns:
//   - MoveOption: functional option to append the keyframe
func WithKeyframe(targets camera.Targets, duration float32) MoveOption {
	return func(m *moveImpl) {
		m.keyframes = append(m.keyframes, Keyframe{Targets: targets, Duration: duration})
	}
}

// WithKeyframes appends several keyframes at once, keeping their individual easing.
//
// Parameters:
//   - keyframes: the keyframes to append in order
//
// Returns:
//   - MoveOption: functional option to append the keyframes
func WithKeyframes(keyframes ...Keyframe) MoveOption {
	return func(m *moveImpl) {
		m.keyframes = append(m.keyframes, keyframes...)
	}
}

// WithEasing sets the default easing of the move. The default is ease.InOutQuad.
//
// Parameters:
//   - fn: the easing function
//
// Returns:
//   - MoveOption: functional option to set the easing
func WithEasing(fn ease.TweenFunc) MoveOption {
	return func(m *moveImpl) {
		if fn != nil {
			m.easing = fn
		}
	}
}

// WithOnDone registers a callback that runs once when the move reaches its last keyframe.
// It is not called on Cancel.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - MoveOption: functional option to set the callback
func WithOnDone(fn func()) MoveOption {
	return func(m *moveImpl) {
		m.onDone = fn
	}
}
