package rig

import (
	"cmp"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/Carmen-Shannon/panorbit-go/engine/camera"
	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/Carmen-Shannon/panorbit-go/engine/script"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/yohamta/donburi"
)

type rigImpl struct {
	mu *sync.Mutex

	world   donburi.World
	nextSeq uint64
	logger  *slog.Logger

	// pool runs one task per camera per frame. Workers persist across frames.
	pool    worker.DynamicWorkerPool
	workers int

	// jobs is reused across frames.
	jobs []job
}

// job is one camera's work for a frame, gathered from the world before dispatch so
// workers never touch the world.
type job struct {
	entity   donburi.Entity
	cam      camera.Camera
	move     script.Move
	order    int
	seq      uint64
	active   bool
	finished bool
}

var _ Rig = &rigImpl{}

// NewRig creates an empty Rig backed by a fresh donburi world.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:      &sync.Mutex{},
		world:   donburi.NewWorld(),
		logger:  slog.Default(),
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(r)
	}
	// Initialize the pool after options so WithWorkers can override the default.
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	return r
}

func (r *rigImpl) Spawn(cam camera.Camera) donburi.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.world.Create(Camera)
	entry := r.world.Entry(e)
	r.nextSeq++
	Camera.SetValue(entry, CameraData{Camera: cam, seq: r.nextSeq})
	if activeQuery.Count(r.world) == 0 {
		entry.AddComponent(Active)
	}
	r.logger.Debug("camera spawned", "component", "rig", "entity", e, "cameras", cameraQuery.Count(r.world))
	return e
}

func (r *rigImpl) Despawn(e donburi.Entity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entry(e)
	if !ok {
		return false
	}
	wasActive := entry.HasComponent(Active)
	if entry.HasComponent(Script) {
		Script.Get(entry).Move.Cancel()
	}
	r.world.Remove(e)

	if wasActive {
		if top, ok := r.topmost(func(*donburi.Entry, camera.Config) bool { return true }); ok {
			top.AddComponent(Active)
		}
	}
	r.logger.Debug("camera despawned", "component", "rig", "entity", e, "cameras", cameraQuery.Count(r.world))
	return true
}

func (r *rigImpl) Camera(e donburi.Entity) (camera.Camera, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entry(e)
	if !ok {
		return nil, false
	}
	return Camera.Get(entry).Camera, true
}

func (r *rigImpl) Play(e donburi.Entity, m script.Move) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entry(e)
	if !ok {
		return false
	}
	if entry.HasComponent(Script) {
		Script.Get(entry).Move.Cancel()
		Script.SetValue(entry, ScriptData{Move: m})
		return true
	}
	donburi.Add(entry, Script, &ScriptData{Move: m})
	return true
}

func (r *rigImpl) Active() (donburi.Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := activeQuery.First(r.world)
	if !ok {
		return 0, false
	}
	return entry.Entity(), true
}

func (r *rigImpl) SetActive(e donburi.Entity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entry(e)
	if !ok {
		return false
	}
	r.activate(entry)
	return true
}

func (r *rigImpl) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cameraQuery.Count(r.world)
}

func (r *rigImpl) Update(dt float32, snap input.Snapshot) []View {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selectActive(snap)

	jobs := r.jobs[:0]
	cameraQuery.Each(r.world, func(entry *donburi.Entry) {
		data := Camera.Get(entry)
		j := job{
			entity: entry.Entity(),
			cam:    data.Camera,
			order:  data.Camera.Controller().Config().Order,
			seq:    data.seq,
			active: entry.HasComponent(Active),
		}
		if entry.HasComponent(Script) {
			j.move = Script.Get(entry).Move
		}
		jobs = append(jobs, j)
	})
	slices.SortFunc(jobs, func(a, b job) int {
		return cmp.Or(cmp.Compare(a.order, b.order), cmp.Compare(a.seq, b.seq))
	})

	// A WaitGroup gives the per-frame barrier; the pool's own Wait blocks until workers
	// idle out.
	views := make([]View, len(jobs))
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		j := &jobs[i]
		r.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if j.move != nil {
					j.finished = j.move.Update(dt)
				}
				cfg := j.cam.Controller().Config()
				views[i] = View{
					Entity: j.entity,
					Camera: j.cam,
					Pose:   j.cam.Update(dt, cameraSnapshot(snap, cfg, j.active)),
					Active: j.active,
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, j := range jobs {
		if !j.finished {
			continue
		}
		// the lock is held for the whole frame, so the component still holds this move
		if entry, ok := r.entry(j.entity); ok && entry.HasComponent(Script) {
			entry.RemoveComponent(Script)
		}
	}
	r.jobs = jobs
	return views
}

// entry returns the live camera entry for e. Caller must hold the mutex.
func (r *rigImpl) entry(e donburi.Entity) (*donburi.Entry, bool) {
	if !r.world.Valid(e) {
		return nil, false
	}
	entry := r.world.Entry(e)
	if !entry.HasComponent(Camera) {
		return nil, false
	}
	return entry, true
}

// activate moves the Active tag onto entry. Caller must hold the mutex.
func (r *rigImpl) activate(entry *donburi.Entry) {
	if entry.HasComponent(Active) {
		return
	}
	var prev []*donburi.Entry
	activeQuery.Each(r.world, func(e *donburi.Entry) {
		prev = append(prev, e)
	})
	for _, e := range prev {
		e.RemoveComponent(Active)
	}
	entry.AddComponent(Active)
	r.logger.Debug("active camera changed", "component", "rig", "entity", entry.Entity())
}

// topmost returns the accepted camera with the highest Order, the latest spawned on ties.
// Caller must hold the mutex.
func (r *rigImpl) topmost(accept func(*donburi.Entry, camera.Config) bool) (*donburi.Entry, bool) {
	var (
		best      *donburi.Entry
		bestOrder int
		bestSeq   uint64
	)
	cameraQuery.Each(r.world, func(entry *donburi.Entry) {
		data := Camera.Get(entry)
		cfg := data.Camera.Controller().Config()
		if !accept(entry, cfg) {
			return
		}
		if best == nil || cfg.Order > bestOrder || (cfg.Order == bestOrder && data.seq > bestSeq) {
			best, bestOrder, bestSeq = entry, cfg.Order, data.seq
		}
	})
	return best, best != nil
}

// selectActive hands input to the camera under the pointer when an interaction starts.
// Caller must hold the mutex.
func (r *rigImpl) selectActive(snap input.Snapshot) {
	pos, ok := snap.PointerPosition()
	if !ok || snap.PointerConsumed(snap.Window) {
		return
	}
	top, ok := r.topmost(func(_ *donburi.Entry, cfg camera.Config) bool {
		return cfg.Enabled &&
			cfg.Window == snap.Window &&
			snap.Activated(cfg.Bindings) &&
			viewportRect(cfg, snap.WindowSize).Contains(pos)
	})
	if ok {
		r.activate(top)
	}
}

func viewportRect(cfg camera.Config, windowSize mgl32.Vec2) common.Rect {
	if !cfg.Viewport.Empty() {
		return cfg.Viewport
	}
	return common.Rect{Max: windowSize}
}

// cameraSnapshot is the input one camera sees: the whole frame for the active camera,
// only its sizes for the rest.
func cameraSnapshot(snap input.Snapshot, cfg camera.Config, active bool) input.Snapshot {
	view := input.Snapshot{Window: snap.Window}
	if active {
		view = snap
	}
	if cfg.Window != snap.Window {
		view.WindowSize = mgl32.Vec2{}
		view.ViewportSize = mgl32.Vec2{}
		return view
	}
	view.WindowSize = snap.WindowSize
	view.ViewportSize = viewportRect(cfg, snap.WindowSize).Size()
	return view
}
