package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/Carmen-Shannon/panorbit-go/engine/rig"
	"github.com/Carmen-Shannon/panorbit-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow sets the window whose message loop Run drives. Its collector becomes the
// engine's input source unless WithCollector is also given.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCollector sets the input collector drained each tick.
//
// Parameters:
//   - c: the collector
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCollector(c input.Collector) EngineBuilderOption {
	return func(e *engine) {
		e.collector = c
	}
}

// WithRig sets the camera rig updated each tick.
//
// Parameters:
//   - r: the rig
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRig(r rig.Rig) EngineBuilderOption {
	return func(e *engine) {
		e.rig = r
	}
}

// WithLogger sets the logger shared by the engine, its default rig and the profiler.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
