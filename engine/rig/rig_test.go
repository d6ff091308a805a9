package rig

import (
	"testing"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/Carmen-Shannon/panorbit-go/engine/camera"
	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/Carmen-Shannon/panorbit-go/engine/script"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

func newCamera(viewport common.Rect, order int) camera.Camera {
	cfg := camera.DefaultConfig()
	cfg.Viewport = viewport
	cfg.Order = order
	cfg.Orbit.Smoothness = 0
	return camera.NewCamera(camera.WithController(camera.NewPanOrbitController(camera.WithConfig(cfg))))
}

var (
	leftHalf  = common.Rect{Max: mgl32.Vec2{400, 600}}
	rightHalf = common.Rect{Min: mgl32.Vec2{400, 0}, Max: mgl32.Vec2{800, 600}}
)

// click presses the left button at p and drags by delta in the same frame.
func click(p, delta mgl32.Vec2) input.Snapshot {
	return input.Snapshot{
		WindowSize:  mgl32.Vec2{800, 600},
		Cursor:      p,
		HasCursor:   true,
		CursorDelta: delta,
		Buttons: input.ButtonInput[common.MouseButton]{
			Pressed:     input.NewSet(common.MouseButtonLeft),
			JustPressed: input.NewSet(common.MouseButtonLeft),
		},
	}
}

func TestRigSpawnDespawn(t *testing.T) {
	r := NewRig(WithWorkers(2))
	a := r.Spawn(newCamera(leftHalf, 0))
	b := r.Spawn(newCamera(rightHalf, 0))

	if r.Count() != 2 {
		t.Fatalf("Expected 2 cameras, got %d", r.Count())
	}
	if active, ok := r.Active(); !ok || active != a {
		t.Error("the first camera spawned starts out active")
	}
	if _, ok := r.Camera(b); !ok {
		t.Error("Expected camera b to be found")
	}

	if !r.Despawn(a) {
		t.Fatal("Expected despawn to succeed")
	}
	if r.Despawn(a) {
		t.Error("despawning twice must fail")
	}
	if _, ok := r.Camera(a); ok {
		t.Error("a despawned camera must not be found")
	}
	if active, ok := r.Active(); !ok || active != b {
		t.Error("the remaining camera should take over input")
	}
}

func TestRigActivatesCameraUnderPointer(t *testing.T) {
	testCases := map[string]struct {
		pointer  mgl32.Vec2
		expected int
	}{
		"Left":  {pointer: mgl32.Vec2{100, 300}, expected: 0},
		"Right": {pointer: mgl32.Vec2{600, 300}, expected: 1},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			r := NewRig()
			ids := []donburi.Entity{
				r.Spawn(newCamera(leftHalf, 0)),
				r.Spawn(newCamera(rightHalf, 0)),
			}
			if name == "Left" {
				r.SetActive(ids[1])
			}
			r.Update(1.0/60, click(tt.pointer, mgl32.Vec2{}))
			if active, _ := r.Active(); active != ids[tt.expected] {
				t.Errorf("Expected camera %d to become active", tt.expected)
			}
		})
	}
}

func TestRigHighestOrderWins(t *testing.T) {
	r := NewRig()
	low := r.Spawn(newCamera(common.Rect{}, 5))
	high := r.Spawn(newCamera(common.Rect{}, 9))
	mid := r.Spawn(newCamera(common.Rect{}, 7))
	r.SetActive(low)

	views := r.Update(1.0/60, click(mgl32.Vec2{400, 300}, mgl32.Vec2{}))
	if active, _ := r.Active(); active != high {
		t.Error("Expected the highest order camera to take input")
	}
	order := []donburi.Entity{low, mid, high}
	for i, v := range views {
		if v.Entity != order[i] {
			t.Errorf("view %d: Expected ascending order", i)
		}
	}
	if !views[2].Active || views[0].Active || views[1].Active {
		t.Error("only the topmost view is marked active")
	}
}

func TestRigOnlyActiveCameraMoves(t *testing.T) {
	r := NewRig()
	a := r.Spawn(newCamera(leftHalf, 0))
	b := r.Spawn(newCamera(rightHalf, 0))

	r.Update(1.0/60, click(mgl32.Vec2{600, 300}, mgl32.Vec2{100, 0}))

	camA, _ := r.Camera(a)
	camB, _ := r.Camera(b)
	if alpha := camA.Controller().Targets().Alpha; alpha != 0 {
		t.Errorf("inactive camera moved: alpha=%f", alpha)
	}
	if alpha := camB.Controller().Targets().Alpha; alpha == 0 {
		t.Error("active camera did not orbit")
	}
	if aspect := camA.Aspect(); aspect != 400.0/600.0 {
		t.Errorf("inactive camera should still track its viewport, aspect=%f", aspect)
	}
}

func TestRigGUIConsumedKeepsActiveCamera(t *testing.T) {
	r := NewRig()
	a := r.Spawn(newCamera(leftHalf, 0))
	r.Spawn(newCamera(rightHalf, 0))

	snap := click(mgl32.Vec2{600, 300}, mgl32.Vec2{})
	snap.GUIConsumed = map[common.WindowID]bool{0: true}
	r.Update(1.0/60, snap)
	if active, _ := r.Active(); active != a {
		t.Error("a click taken by the GUI must not switch cameras")
	}
}

func TestRigPlaysMoves(t *testing.T) {
	r := NewRig()
	e := r.Spawn(newCamera(common.Rect{}, 0))
	cam, _ := r.Camera(e)

	first := script.NewMove(cam.Controller(), script.WithKeyframe(camera.Targets{Alpha: 3, Radius: 5, Zoom: 10}, 1))
	second := script.NewMove(cam.Controller(),
		script.WithKeyframe(camera.Targets{Alpha: 1, Radius: 5, Zoom: 10, Focus: mgl32.Vec3{0, 2, 0}}, 0.1),
		script.WithEasing(ease.Linear),
	)
	if !r.Play(e, first) || !r.Play(e, second) {
		t.Fatal("Expected play to succeed")
	}
	if !first.Done() {
		t.Error("replacing a move cancels the old one")
	}

	for range 10 {
		r.Update(1.0/60, input.Snapshot{})
	}
	if !second.Done() {
		t.Fatal("Expected the move to finish")
	}
	got := cam.Controller().Targets()
	if !mgl32.FloatEqualThreshold(got.Alpha, 1, 1e-5) || got.Focus != (mgl32.Vec3{0, 2, 0}) {
		t.Errorf("Expected the keyframe targets, got %+v", got)
	}

	gone := r.Spawn(newCamera(common.Rect{}, 0))
	r.Despawn(gone)
	if r.Play(gone, second) {
		t.Error("playing on a despawned camera must fail")
	}
}

func TestRigUpdatesManyCameras(t *testing.T) {
	r := NewRig(WithWorkers(4))
	for i := range 32 {
		r.Spawn(newCamera(common.Rect{}, i%3))
	}
	views := r.Update(1.0/60, input.Snapshot{WindowSize: mgl32.Vec2{800, 600}})
	if len(views) != 32 {
		t.Fatalf("Expected 32 views, got %d", len(views))
	}
	seen := map[donburi.Entity]bool{}
	for i, v := range views {
		if seen[v.Entity] {
			t.Errorf("camera updated twice in one frame")
		}
		seen[v.Entity] = true
		if i > 0 {
			prev, _ := r.Camera(views[i-1].Entity)
			cur, _ := r.Camera(v.Entity)
			if prev.Controller().Config().Order > cur.Controller().Config().Order {
				t.Error("views are not in ascending order")
			}
		}
		if !vecFinite(v.Pose.Position) {
			t.Errorf("view %d has a non-finite pose", i)
		}
	}
}

func vecFinite(v mgl32.Vec3) bool {
	return common.IsFinite(v[0]) && common.IsFinite(v[1]) && common.IsFinite(v[2])
}
