package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/Carmen-Shannon/panorbit-go/engine/profiler"
	"github.com/Carmen-Shannon/panorbit-go/engine/rig"
	"github.com/Carmen-Shannon/panorbit-go/engine/window"
)

// engine implements the Engine interface.
// Coordinates the window thread and the camera tick goroutine.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	mu      *sync.Mutex
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window    window.Window
	collector input.Collector
	rig       rig.Rig
	logger    *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	viewCallback   func(deltaTime float32, views []rig.View)
}

// Engine is the main entry point. It drains the input collector once per tick, advances
// every camera in the rig and hands the resulting views to the host.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Collector returns the input collector drained each tick.
	//
	// Returns:
	//   - input.Collector: the collector
	Collector() input.Collector

	// Rig returns the camera rig updated each tick.
	//
	// Returns:
	//   - rig.Rig: the rig
	Rig() rig.Rig

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called at the start of each tick, before
	// input is drained. Use it for host logic such as starting scripted moves.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetViewCallback registers the function receiving the camera views of each tick.
	// This is where a renderer picks up poses and matrices.
	//
	// Parameters:
	//   - callback: function receiving the delta time and the views in ascending Order
	SetViewCallback(callback func(deltaTime float32, views []rig.View))

	// Tick runs one tick synchronously: tick callback, drain, rig update, view callback.
	//
	// Parameters:
	//   - dt: delta time in seconds
	//
	// Returns:
	//   - []rig.View: the views produced this tick
	Tick(dt float32) []rig.View

	// Run starts the tick loop and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Without WithCollector the engine uses the window's collector, or a fresh one when
// running headless. Without WithRig an empty rig is created.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		mu:               &sync.Mutex{},
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		logger:           slog.Default(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.collector == nil {
		if e.window != nil {
			e.collector = e.window.Collector()
		} else {
			e.collector = input.NewCollector()
		}
	}
	if e.rig == nil {
		e.rig = rig.NewRig(rig.WithLogger(e.logger))
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Collector() input.Collector {
	return e.collector
}

func (e *engine) Rig() rig.Rig {
	return e.rig
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is
// closed. Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tick goroutine recovered from panic", "component", "engine", "panic", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) Tick(dt float32) []rig.View {
	e.mu.Lock()
	tickCallback, viewCallback := e.tickCallback, e.viewCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if tickCallback != nil {
		tickCallback(dt)
	}

	start := time.Now()
	views := e.rig.Update(dt, e.collector.Drain())
	if profiling {
		e.profiler.Observe(time.Since(start))
		e.profiler.Tick()
	}

	if viewCallback != nil {
		viewCallback(dt, views)
	}
	return views
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetViewCallback registers the function receiving each tick's views.
func (e *engine) SetViewCallback(callback func(deltaTime float32, views []rig.View)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewCallback = callback
}
