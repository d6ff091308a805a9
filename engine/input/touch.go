package input

import (
	"slices"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// degenerateDistance is the pairwise finger distance, in pixels, below which pinch and
// rotation are not computed for the frame.
const degenerateDistance float32 = 1e-3

// GestureKind classifies the touch gesture of a frame.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureOneFinger
	GestureTwoFinger
)

func (k GestureKind) String() string {
	switch k {
	case GestureOneFinger:
		return "one-finger"
	case GestureTwoFinger:
		return "two-finger"
	default:
		return "none"
	}
}

// Gesture is the per-frame result of the TouchTracker.
type Gesture struct {
	Kind GestureKind
	// Motion is the finger displacement in pixels for one finger, or the centroid
	// displacement for two fingers.
	Motion mgl32.Vec2
	// PinchRatio is the current over the previous pairwise distance. 1 means no pinch.
	PinchRatio float32
	// Rotation is the signed change in angle of the finger pair, clockwise positive in
	// window coordinates.
	Rotation float32
}

// noGesture is the neutral gesture.
var noGesture = Gesture{Kind: GestureNone, PinchRatio: 1}

// TouchTracker remembers the last position of every active touch and turns the
// frame-to-frame difference into a Gesture. It is not safe for concurrent use; each
// controller owns one.
type TouchTracker struct {
	// MaxJump is the largest per-frame displacement, in pixels, accepted for a finger.
	// Larger jumps reseed the finger with zero delta. Zero disables the check.
	MaxJump float32

	prev map[TouchID]mgl32.Vec2
}

// NewTouchTracker creates a TouchTracker with the given jump threshold.
//
// Parameters:
//   - maxJump: the implausible-jump threshold in pixels, 0 to disable
//
// Returns:
//   - *TouchTracker: an empty tracker
func NewTouchTracker(maxJump float32) *TouchTracker {
	return &TouchTracker{
		MaxJump: maxJump,
		prev:    make(map[TouchID]mgl32.Vec2),
	}
}

// Update consumes the active touches of the current frame and returns the gesture.
// The tracking map is rebuilt from touches: ids no longer present are dropped, new ids
// seed with their first position.
//
// Parameters:
//   - touches: the active touch points this frame
//
// Returns:
//   - Gesture: the classified gesture and its deltas
func (t *TouchTracker) Update(touches []Touch) Gesture {
	if t.prev == nil {
		t.prev = make(map[TouchID]mgl32.Vec2)
	}

	cur := make(map[TouchID]mgl32.Vec2, len(touches))
	for _, tc := range touches {
		if !common.IsFinite(tc.Position[0]) || !common.IsFinite(tc.Position[1]) {
			continue
		}
		cur[tc.ID] = tc.Position
	}

	// previous positions seen through the jump filter
	prev := make(map[TouchID]mgl32.Vec2, len(cur))
	for id, p := range cur {
		old, ok := t.prev[id]
		if !ok || (t.MaxJump > 0 && p.Sub(old).Len() > t.MaxJump) {
			old = p
		}
		prev[id] = old
	}
	t.prev = cur

	switch len(cur) {
	case 1:
		for id, p := range cur {
			return Gesture{Kind: GestureOneFinger, Motion: p.Sub(prev[id]), PinchRatio: 1}
		}
	case 2:
		ids := make([]TouchID, 0, 2)
		for id := range cur {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return twoFinger(prev[ids[0]], prev[ids[1]], cur[ids[0]], cur[ids[1]])
	}
	return noGesture
}

// Tracked returns the number of touches currently remembered.
func (t *TouchTracker) Tracked() int {
	return len(t.prev)
}

func twoFinger(prevA, prevB, curA, curB mgl32.Vec2) Gesture {
	g := Gesture{Kind: GestureTwoFinger, PinchRatio: 1}

	prevCentroid := prevA.Add(prevB).Mul(0.5)
	curCentroid := curA.Add(curB).Mul(0.5)
	g.Motion = curCentroid.Sub(prevCentroid)

	prevVec := prevB.Sub(prevA)
	curVec := curB.Sub(curA)
	prevDist := prevVec.Len()
	curDist := curVec.Len()
	if prevDist < degenerateDistance || curDist < degenerateDistance {
		return g
	}
	g.PinchRatio = curDist / prevDist
	g.Rotation = common.SignedAngle(prevVec[0], prevVec[1], curVec[0], curVec[1])
	return g
}
