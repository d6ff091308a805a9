package rig

import "log/slog"

type RigBuilderOption func(*rigImpl)

// WithWorkers sets the number of workers updating cameras in parallel.
// Defaults to runtime.NumCPU()-1 (minimum 1) when not specified.
//
// Parameters:
//   - n: the number of workers (must be >= 1; values below 1 are clamped to 1)
//
// Returns:
//   - RigBuilderOption: a function that sets the worker count
func WithWorkers(n int) RigBuilderOption {
	return func(r *rigImpl) {
		r.workers = max(n, 1)
	}
}

// WithLogger sets the logger used for spawn and activation events.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - RigBuilderOption: a function that sets the logger
func WithLogger(logger *slog.Logger) RigBuilderOption {
	return func(r *rigImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}
