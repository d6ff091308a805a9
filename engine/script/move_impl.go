package script

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/Carmen-Shannon/panorbit-go/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minDuration keeps zero-length keyframes from dividing by zero inside the easing.
const minDuration = 1e-4

type channel int

const (
	channelAlpha channel = iota
	channelBeta
	channelRoll
	channelRadius
	channelZoom
	channelFocusX
	channelFocusY
	channelFocusZ
	channelCount
)

type moveImpl struct {
	mu *sync.Mutex

	ctrl      camera.PanOrbitController
	keyframes []Keyframe
	easing    ease.TweenFunc
	onDone    func()

	channels [channelCount]*gween.Sequence
	final    [channelCount]float32
	done     bool
}

var _ Move = &moveImpl{}

// NewMove creates a move that starts from the controller's current targets. A move
// without keyframes is done immediately.
//
// Parameters:
//   - ctrl: the controller to drive
//   - options: functional options adding keyframes and easing
//
// Returns:
//   - Move: the newly created move
func NewMove(ctrl camera.PanOrbitController, options ...MoveOption) Move {
	m := &moveImpl{
		mu:     &sync.Mutex{},
		ctrl:   ctrl,
		easing: ease.InOutQuad,
	}
	for _, option := range options {
		option(m)
	}
	m.build()
	return m
}

// build lays out one tween sequence per channel.
func (m *moveImpl) build() {
	if len(m.keyframes) == 0 {
		m.done = true
		return
	}
	for i := range m.channels {
		m.channels[i] = gween.NewSequence()
	}

	prev := channelValues(m.ctrl.Targets())
	for _, kf := range m.keyframes {
		next := channelValues(kf.Targets)
		next[channelAlpha] = prev[channelAlpha] + common.AngleDelta(prev[channelAlpha], next[channelAlpha])
		next[channelRoll] = prev[channelRoll] + common.AngleDelta(prev[channelRoll], next[channelRoll])

		easing := kf.Easing
		if easing == nil {
			easing = m.easing
		}
		duration := max(kf.Duration, minDuration)
		for i, seq := range m.channels {
			seq.Add(gween.New(prev[i], next[i], duration, easing))
		}
		prev = next
	}
	m.final = prev
}

func channelValues(t camera.Targets) [channelCount]float32 {
	return [channelCount]float32{
		channelAlpha:  t.Alpha,
		channelBeta:   t.Beta,
		channelRoll:   t.Roll,
		channelRadius: float32(math.Log(float64(max(t.Radius, camera.MinZoom)))),
		channelZoom:   float32(math.Log(float64(max(t.Zoom, camera.MinZoom)))),
		channelFocusX: t.Focus[0],
		channelFocusY: t.Focus[1],
		channelFocusZ: t.Focus[2],
	}
}

func (m *moveImpl) Update(dt float32) bool {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return true
	}

	var values [channelCount]float32
	finished := true
	for i, seq := range m.channels {
		v, _, seqDone := seq.Update(dt)
		values[i] = v
		finished = finished && seqDone
	}
	if finished {
		values = m.final
		m.done = true
	}

	m.ctrl.ModifyTargets(func(t *camera.Targets) {
		t.Alpha, _ = common.WrapTau(values[channelAlpha])
		t.Beta = values[channelBeta]
		t.Roll, _ = common.WrapTau(values[channelRoll])
		t.Radius = float32(math.Exp(float64(values[channelRadius])))
		t.Zoom = float32(math.Exp(float64(values[channelZoom])))
		t.Focus = mgl32.Vec3{values[channelFocusX], values[channelFocusY], values[channelFocusZ]}
	})

	onDone := m.onDone
	m.mu.Unlock()

	if finished && onDone != nil {
		onDone()
	}
	return finished
}

func (m *moveImpl) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *moveImpl) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done = true
}

func (m *moveImpl) Controller() camera.PanOrbitController {
	return m.ctrl
}
