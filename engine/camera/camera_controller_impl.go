package camera

import (
	"log/slog"
	"math"
	"sync"

	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// maxZoomStep bounds a single frame's zoom in log units so the radius stays finite.
const maxZoomStep = 20

// panOrbitControllerImpl is the implementation of PanOrbitController.
// Targets absorb input immediately; current values chase them through frame-rate
// independent exponential smoothing.
type panOrbitControllerImpl struct {
	mu *sync.Mutex

	cfg    Config
	logger *slog.Logger

	targets Targets
	current State
	eye     *mgl32.Vec3

	touch  *input.TouchTracker
	aspect float32
	pose   Pose
}

// Compile-time interface compliance check
var _ PanOrbitController = &panOrbitControllerImpl{}

// NewPanOrbitController creates a controller looking at the origin from 5 units away
// along +Z. Invalid configuration fields fall back to their defaults and are logged
// once.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - PanOrbitController: the initialized controller
func NewPanOrbitController(options ...PanOrbitControllerOption) PanOrbitController {
	pc := &panOrbitControllerImpl{
		mu:     &sync.Mutex{},
		cfg:    DefaultConfig(),
		logger: slog.Default(),
		targets: Targets{
			Radius: 5,
			Zoom:   10,
		},
		aspect: 1,
	}
	for _, option := range options {
		option(pc)
	}

	cfg, err := pc.cfg.sanitize(DefaultConfig())
	if err != nil {
		pc.logger.Warn("invalid camera configuration, using defaults for rejected fields", "error", err)
	}
	pc.cfg = cfg
	pc.touch = input.NewTouchTracker(cfg.MaxTouchJump)
	pc.initialize()
	return pc
}

// initialize derives the targets from the eye position if one was given, applies the
// constraints and snaps the current values. Caller must hold the mutex or own pc.
func (pc *panOrbitControllerImpl) initialize() {
	if pc.eye != nil {
		if a, b, r, ok := anglesFromEye(*pc.eye, pc.targets.Focus, pc.cfg.Base); ok {
			pc.targets.Alpha, pc.targets.Beta, pc.targets.Radius = a, b, r
		}
		pc.eye = nil
	}
	pc.current = stateOf(pc.targets)
	constrain(pc.cfg, &pc.targets, &pc.current, false)
	pc.snap()
}

func stateOf(t Targets) State {
	return State{
		Alpha:  t.Alpha,
		Beta:   t.Beta,
		Roll:   t.Roll,
		Radius: t.Radius,
		Zoom:   t.Zoom,
		Focus:  t.Focus,
	}
}

// snap sets current = target and resolves the pose. Caller must hold the mutex.
func (pc *panOrbitControllerImpl) snap() {
	pc.current = stateOf(pc.targets)
	pc.current.UpsideDown = isUpsideDown(pc.current.Beta)
	pc.resolve()
}

func (pc *panOrbitControllerImpl) resolve() {
	c := pc.current
	pc.pose = Resolve(c.Alpha, c.Beta, c.Roll, c.Radius, c.Focus, pc.cfg.Base)
	pc.pose.Zoom = c.Zoom
}

func (pc *panOrbitControllerImpl) Update(dt float32, snap input.Snapshot) Pose {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	cfg := pc.cfg
	if size := viewportSize(snap); size[0] > 0 && size[1] > 0 {
		pc.aspect = size[0] / size[1]
	}

	// the tracker follows the fingers even while input is ignored
	gesture := pc.touch.Update(snap.Touches)
	if cfg.Enabled {
		pc.applyDeltas(input.Aggregate(snap, gesture, cfg.mapping(), dt))
	}
	constrain(cfg, &pc.targets, &pc.current, cfg.Enabled)

	t := pc.targets
	c := &pc.current
	orbit := smoothFraction(cfg.Orbit.Smoothness, dt)
	c.Alpha = approach(c.Alpha, t.Alpha, orbit)
	c.Beta = approach(c.Beta, t.Beta, orbit)
	c.Roll = approach(c.Roll, t.Roll, smoothFraction(cfg.Roll.Smoothness, dt))
	c.Focus = approachVec3(c.Focus, t.Focus, smoothFraction(cfg.Pan.Smoothness, dt))
	zoom := smoothFraction(cfg.Zoom.Smoothness, dt)
	c.Radius = approach(c.Radius, t.Radius, zoom)
	c.Zoom = approach(c.Zoom, t.Zoom, zoom)

	c.UpsideDown = isUpsideDown(c.Beta)
	pc.resolve()
	return pc.pose
}

// applyDeltas moves the targets by one frame of aggregated input. Caller must hold
// the mutex.
func (pc *panOrbitControllerImpl) applyDeltas(d input.Deltas) {
	cfg := pc.cfg
	t := &pc.targets

	if cfg.Orbit.Enabled {
		dx := d.Orbit[0] * cfg.Orbit.Sensitivity
		// past the pole the longitude runs the other way on screen
		if pc.current.UpsideDown {
			dx = -dx
		}
		t.Alpha -= dx
		t.Beta += d.Orbit[1] * cfg.Orbit.Sensitivity
	}

	if cfg.Pan.Enabled && d.Pan != (mgl32.Vec2{}) {
		extent := pc.viewExtent()
		right := pc.pose.Right().Mul(-d.Pan[0] * extent[0] * cfg.Pan.Sensitivity)
		up := pc.pose.Up().Mul(d.Pan[1] * extent[1] * cfg.Pan.Sensitivity)
		t.Focus = t.Focus.Add(right).Add(up)
	}

	if cfg.Zoom.Enabled && d.Zoom != 0 {
		step := mgl32.Clamp(-d.Zoom*cfg.Zoom.Sensitivity, -maxZoomStep, maxZoomStep)
		factor := float32(math.Exp(float64(step)))
		if cfg.Projection.Kind == Orthographic {
			t.Zoom *= factor
		} else {
			t.Radius *= factor
		}
	}

	if cfg.Roll.Enabled {
		t.Roll += d.Roll * cfg.Roll.Sensitivity
	}
}

// viewExtent returns the world-space width and height spanned by the viewport at the
// focus distance. Caller must hold the mutex.
func (pc *panOrbitControllerImpl) viewExtent() mgl32.Vec2 {
	var h float32
	if pc.cfg.Projection.Kind == Orthographic {
		h = pc.current.Zoom
	} else {
		h = 2 * float32(math.Tan(float64(pc.cfg.Projection.Fov)/2)) * pc.current.Radius
	}
	return mgl32.Vec2{h * pc.aspect, h}
}

func viewportSize(snap input.Snapshot) mgl32.Vec2 {
	if snap.ViewportSize[0] > 0 && snap.ViewportSize[1] > 0 {
		return snap.ViewportSize
	}
	return snap.WindowSize
}

func (pc *panOrbitControllerImpl) Pose() Pose {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.pose
}

func (pc *panOrbitControllerImpl) Targets() Targets {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.targets
}

func (pc *panOrbitControllerImpl) SetTargets(t Targets) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.targets = t
	constrain(pc.cfg, &pc.targets, &pc.current, false)
}

func (pc *panOrbitControllerImpl) ModifyTargets(fn func(t *Targets)) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	fn(&pc.targets)
	constrain(pc.cfg, &pc.targets, &pc.current, false)
}

func (pc *panOrbitControllerImpl) ForceTargets() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.snap()
}

func (pc *panOrbitControllerImpl) State() State {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.current
}

func (pc *panOrbitControllerImpl) IsUpsideDown() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.current.UpsideDown
}

func (pc *panOrbitControllerImpl) Config() Config {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.cfg
}

func (pc *panOrbitControllerImpl) SetConfig(cfg Config) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	next, err := cfg.sanitize(pc.cfg)
	if err != nil {
		pc.logger.Warn("rejected camera configuration fields, keeping last valid values", "error", err)
	}
	pc.cfg = next
	pc.touch.MaxJump = next.MaxTouchJump
	constrain(pc.cfg, &pc.targets, &pc.current, false)
	return err
}
