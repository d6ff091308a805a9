package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func tp(id TouchID, x, y float32) Touch {
	return Touch{ID: id, Position: mgl32.Vec2{x, y}}
}

func TestTouchTrackerFingerCount(t *testing.T) {
	testCases := map[string]struct {
		frames   [][]Touch
		expected GestureKind
	}{
		"NoFingers":    {frames: [][]Touch{nil}, expected: GestureNone},
		"OneFinger":    {frames: [][]Touch{[]Touch{tp(1, 0, 0)}}, expected: GestureOneFinger},
		"TwoFingers":   {frames: [][]Touch{[]Touch{tp(1, 0, 0), tp(2, 10, 0)}}, expected: GestureTwoFinger},
		"ThreeFingers": {frames: [][]Touch{[]Touch{tp(1, 0, 0), tp(2, 10, 0), tp(3, 5, 5)}}, expected: GestureNone},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			tr := NewTouchTracker(0)
			var g Gesture
			for _, f := range tt.frames {
				g = tr.Update(f)
			}
			if g.Kind != tt.expected {
				t.Errorf("Expected: %v, got: %v", tt.expected, g.Kind)
			}
		})
	}
}

func TestTouchTrackerOneFingerMotion(t *testing.T) {
	tr := NewTouchTracker(0)
	if g := tr.Update([]Touch{tp(7, 100, 100)}); g.Motion != (mgl32.Vec2{}) {
		t.Fatalf("first frame of a touch should have zero motion, got %v", g.Motion)
	}
	g := tr.Update([]Touch{tp(7, 110, 95)})
	if g.Motion != (mgl32.Vec2{10, -5}) {
		t.Errorf("Expected: (10,-5), got: %v", g.Motion)
	}
}

func TestTouchTrackerRestartSeedsZeroDelta(t *testing.T) {
	tr := NewTouchTracker(0)
	tr.Update([]Touch{tp(1, 0, 0)})
	// id 1 lifts and id 2 lands far away within the same frame
	g := tr.Update([]Touch{tp(2, 500, 500)})
	if g.Kind != GestureOneFinger || g.Motion != (mgl32.Vec2{}) {
		t.Errorf("Expected zero-delta one-finger gesture, got %+v", g)
	}
	if tr.Tracked() != 1 {
		t.Errorf("Expected 1 tracked touch, got %d", tr.Tracked())
	}
}

func TestTouchTrackerPinch(t *testing.T) {
	tr := NewTouchTracker(0)
	tr.Update([]Touch{tp(1, 0, 0), tp(2, 10, 0)})
	g := tr.Update([]Touch{tp(1, -5, 0), tp(2, 15, 0)})

	if g.Kind != GestureTwoFinger {
		t.Fatalf("Expected two-finger gesture, got %v", g.Kind)
	}
	if !mgl32.FloatEqualThreshold(g.PinchRatio, 2, 1e-5) {
		t.Errorf("Expected ratio: %f, got: %f", 2.0, g.PinchRatio)
	}
	if g.Motion.Len() > 1e-5 {
		t.Errorf("Expected no centroid motion, got %v", g.Motion)
	}
	if math.Abs(float64(g.Rotation)) > 1e-5 {
		t.Errorf("Expected no rotation, got %f", g.Rotation)
	}
}

func TestTouchTrackerRotation(t *testing.T) {
	tr := NewTouchTracker(0)
	tr.Update([]Touch{tp(1, -10, 0), tp(2, 10, 0)})
	// quarter turn clockwise on screen (y down)
	g := tr.Update([]Touch{tp(1, 0, -10), tp(2, 0, 10)})
	if !mgl32.FloatEqualThreshold(g.Rotation, math.Pi/2, 1e-5) {
		t.Errorf("Expected: %f, got: %f", math.Pi/2, g.Rotation)
	}
	if !mgl32.FloatEqualThreshold(g.PinchRatio, 1, 1e-5) {
		t.Errorf("Expected ratio 1, got %f", g.PinchRatio)
	}
}

func TestTouchTrackerPairOrderIndependent(t *testing.T) {
	a := NewTouchTracker(0)
	b := NewTouchTracker(0)
	a.Update([]Touch{tp(1, -10, 0), tp(2, 10, 0)})
	b.Update([]Touch{tp(2, 10, 0), tp(1, -10, 0)})
	ga := a.Update([]Touch{tp(1, 0, -10), tp(2, 0, 10)})
	gb := b.Update([]Touch{tp(2, 0, 10), tp(1, 0, -10)})
	if !mgl32.FloatEqualThreshold(ga.Rotation, gb.Rotation, 1e-6) {
		t.Errorf("rotation depends on list order: %f vs %f", ga.Rotation, gb.Rotation)
	}
}

func TestTouchTrackerDegenerateDistance(t *testing.T) {
	tr := NewTouchTracker(0)
	tr.Update([]Touch{tp(1, 5, 5), tp(2, 5, 5)})
	g := tr.Update([]Touch{tp(1, 0, 0), tp(2, 10, 0)})
	if g.PinchRatio != 1 || g.Rotation != 0 {
		t.Errorf("Expected ratio 1 and rotation 0, got %f and %f", g.PinchRatio, g.Rotation)
	}
	if math.IsInf(float64(g.PinchRatio), 0) || math.IsNaN(float64(g.PinchRatio)) {
		t.Error("ratio must stay finite")
	}
}

func TestTouchTrackerMaxJump(t *testing.T) {
	tr := NewTouchTracker(50)
	tr.Update([]Touch{tp(1, 0, 0)})
	if g := tr.Update([]Touch{tp(1, 20, 0)}); g.Motion != (mgl32.Vec2{20, 0}) {
		t.Errorf("plausible motion should pass, got %v", g.Motion)
	}
	if g := tr.Update([]Touch{tp(1, 500, 0)}); g.Motion != (mgl32.Vec2{}) {
		t.Errorf("implausible jump should be reseeded, got %v", g.Motion)
	}
	if g := tr.Update([]Touch{tp(1, 505, 0)}); g.Motion != (mgl32.Vec2{5, 0}) {
		t.Errorf("tracking should continue from the reseeded position, got %v", g.Motion)
	}
}

func TestTouchTrackerClearsOnRelease(t *testing.T) {
	tr := NewTouchTracker(0)
	tr.Update([]Touch{tp(1, 0, 0), tp(2, 10, 0)})
	if g := tr.Update(nil); g.Kind != GestureNone {
		t.Errorf("Expected no gesture, got %v", g.Kind)
	}
	if tr.Tracked() != 0 {
		t.Errorf("Expected tracking map to be cleared, got %d entries", tr.Tracked())
	}
}
