package input

import (
	"sync"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Collector accumulates raw input events between frames and hands them out as a
// Snapshot. Event methods are called from the windowing thread; Drain is called once per
// frame by the tick loop.
type Collector interface {
	// Focus records the window that currently holds input focus.
	Focus(w common.WindowID)
	// Resize records the logical size of a window.
	Resize(w common.WindowID, width, height float32)
	// CursorMoved records an absolute cursor position.
	CursorMoved(x, y float32)
	// CursorLeft forgets the cursor position.
	CursorLeft()
	// MouseButton records a button edge.
	MouseButton(b common.MouseButton, pressed bool)
	// Key records a key edge.
	Key(k common.Key, pressed bool)
	// Scroll records a scroll event.
	Scroll(dx, dy float32, unit ScrollUnit)
	// Pinch records a trackpad magnification delta.
	Pinch(delta float32)
	// TouchStart, TouchMove and TouchEnd record touch events.
	TouchStart(id TouchID, x, y float32)
	TouchMove(id TouchID, x, y float32)
	TouchEnd(id TouchID)
	// SetGUIConsumed records whether the GUI overlay took pointer input on a window.
	SetGUIConsumed(w common.WindowID, consumed bool)
	// Drain returns the snapshot for the frame and resets the per-frame accumulators.
	Drain() Snapshot
}

type guiLatch struct {
	prev, curr bool
}

type collectorImpl struct {
	mu *sync.Mutex

	window  common.WindowID
	sizes   map[common.WindowID]mgl32.Vec2
	cursor  mgl32.Vec2
	hasCur  bool
	delta   mgl32.Vec2
	scroll  []ScrollEvent
	pinch   float32
	buttons ButtonInput[common.MouseButton]
	keys    ButtonInput[common.Key]
	touches map[TouchID]mgl32.Vec2
	order   []TouchID
	started int
	gui     map[common.WindowID]*guiLatch
}

var _ Collector = &collectorImpl{}

// NewCollector creates an empty Collector focused on the primary window.
func NewCollector() Collector {
	return &collectorImpl{
		mu:      &sync.Mutex{},
		sizes:   make(map[common.WindowID]mgl32.Vec2),
		buttons: newButtonInput[common.MouseButton](),
		keys:    newButtonInput[common.Key](),
		touches: make(map[TouchID]mgl32.Vec2),
		gui:     make(map[common.WindowID]*guiLatch),
	}
}

func newButtonInput[T comparable]() ButtonInput[T] {
	return ButtonInput[T]{
		Pressed:      make(Set[T]),
		JustPressed:  make(Set[T]),
		JustReleased: make(Set[T]),
	}
}

func (c *collectorImpl) Focus(w common.WindowID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.window != w {
		c.hasCur = false
	}
	c.window = w
}

func (c *collectorImpl) Resize(w common.WindowID, width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sizes[w] = mgl32.Vec2{width, height}
}

func (c *collectorImpl) CursorMoved(x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := mgl32.Vec2{x, y}
	// the first position after entering the window carries no motion
	if c.hasCur {
		c.delta = c.delta.Add(p.Sub(c.cursor))
	}
	c.cursor = p
	c.hasCur = true
}

func (c *collectorImpl) CursorLeft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasCur = false
}

func (c *collectorImpl) MouseButton(b common.MouseButton, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	applyEdge(c.buttons, b, pressed)
}

func (c *collectorImpl) Key(k common.Key, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	applyEdge(c.keys, k, pressed)
}

func applyEdge[T comparable](in ButtonInput[T], v T, pressed bool) {
	if pressed {
		if !in.Pressed.Has(v) {
			in.JustPressed[v] = struct{}{}
		}
		in.Pressed[v] = struct{}{}
		return
	}
	if in.Pressed.Has(v) {
		in.JustReleased[v] = struct{}{}
	}
	delete(in.Pressed, v)
}

func (c *collectorImpl) Scroll(dx, dy float32, unit ScrollUnit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll = append(c.scroll, ScrollEvent{Delta: mgl32.Vec2{dx, dy}, Unit: unit})
}

func (c *collectorImpl) Pinch(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinch += delta
}

func (c *collectorImpl) TouchStart(id TouchID, x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.touches[id]; !ok {
		c.order = append(c.order, id)
		c.started++
	}
	c.touches[id] = mgl32.Vec2{x, y}
}

func (c *collectorImpl) TouchMove(id TouchID, x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.touches[id]; !ok {
		return
	}
	c.touches[id] = mgl32.Vec2{x, y}
}

func (c *collectorImpl) TouchEnd(id TouchID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.touches[id]; !ok {
		return
	}
	delete(c.touches, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *collectorImpl) SetGUIConsumed(w common.WindowID, consumed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.gui[w]
	if !ok {
		l = &guiLatch{}
		c.gui[w] = l
	}
	l.curr = consumed
}

// Drain builds the frame snapshot. A window counts as GUI-consumed when the overlay
// held it this frame or the previous one, so a click that releases the overlay does not
// leak into the camera on the same frame.
func (c *collectorImpl) Drain() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := c.sizes[c.window]
	snap := Snapshot{
		Window:       c.window,
		WindowSize:   size,
		ViewportSize: size,
		Cursor:       c.cursor,
		HasCursor:    c.hasCur,
		CursorDelta:  c.delta,
		Scroll:       c.scroll,
		Pinch:        c.pinch,
		Buttons:      cloneButtonInput(c.buttons),
		Keys:         cloneButtonInput(c.keys),
		TouchStarts:  min(c.started, len(c.touches)),
		GUIConsumed:  make(map[common.WindowID]bool, len(c.gui)),
	}
	snap.Touches = make([]Touch, 0, len(c.order))
	for _, id := range c.order {
		snap.Touches = append(snap.Touches, Touch{ID: id, Position: c.touches[id]})
	}
	for w, l := range c.gui {
		snap.GUIConsumed[w] = l.prev || l.curr
		l.prev = l.curr
	}

	c.delta = mgl32.Vec2{}
	c.scroll = nil
	c.pinch = 0
	c.started = 0
	clear(c.buttons.JustPressed)
	clear(c.buttons.JustReleased)
	clear(c.keys.JustPressed)
	clear(c.keys.JustReleased)
	return snap
}

func cloneButtonInput[T comparable](in ButtonInput[T]) ButtonInput[T] {
	out := newButtonInput[T]()
	for k := range in.Pressed {
		out.Pressed[k] = struct{}{}
	}
	for k := range in.JustPressed {
		out.JustPressed[k] = struct{}{}
	}
	for k := range in.JustReleased {
		out.JustReleased[k] = struct{}{}
	}
	return out
}
