package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/panorbit-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	c := m.Mul4x1(p.Vec4(1))
	return c.Vec3().Mul(1 / c[3])
}

func TestCameraProjectsFocusToCenter(t *testing.T) {
	testCases := map[string]struct {
		kind ProjectionKind
	}{
		"Perspective":  {kind: Perspective},
		"Orthographic": {kind: Orthographic},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Projection.Kind = tt.kind
			focus := mgl32.Vec3{3, -1, 2}
			cam := NewCamera(WithController(NewPanOrbitController(
				WithConfig(cfg), WithFocus(focus[0], focus[1], focus[2]), WithAlpha(0.7), WithBeta(0.4),
			)))
			ndc := project(cam.ViewProjectionMatrix(), focus)
			if math.Abs(float64(ndc[0])) > 1e-4 || math.Abs(float64(ndc[1])) > 1e-4 {
				t.Errorf("Expected focus at the center of the screen, got %v", ndc)
			}
			if ndc[2] < -1 || ndc[2] > 1 {
				t.Errorf("focus should lie between the clip planes, got depth %f", ndc[2])
			}
		})
	}
}

func TestCameraFollowsViewportAspect(t *testing.T) {
	cam := NewCamera(WithAspect(1))
	cam.Update(1.0/60, input.Snapshot{ViewportSize: mgl32.Vec2{800, 400}})
	if a := cam.Aspect(); a != 2 {
		t.Errorf("Expected: %f, got: %f", 2.0, a)
	}
	want := DefaultConfig().Projection.Matrix(2, cam.Pose().Zoom)
	if !cam.ProjectionMatrix().ApproxEqualThreshold(want, 1e-6) {
		t.Error("projection should be rebuilt for the new aspect")
	}
	if !cam.ProjectionMatrix().Mul4(cam.InverseProjectionMatrix()).ApproxEqualThreshold(mgl32.Ident4(), 1e-4) {
		t.Error("inverse projection does not invert the projection")
	}
}

func TestCameraRefreshPicksUpTargets(t *testing.T) {
	pc := NewPanOrbitController(WithConfig(func() Config {
		c := DefaultConfig()
		c.Orbit.Smoothness = 0
		c.Zoom.Smoothness = 0
		return c
	}()))
	cam := NewCamera(WithController(pc))
	pc.SetTargets(Targets{Radius: 9, Zoom: 10})
	pc.ForceTargets()
	cam.Refresh()
	if !vecNear(cam.Pose().Position, mgl32.Vec3{0, 0, 9}, 1e-5) {
		t.Errorf("Expected eye at (0,0,9), got %v", cam.Pose().Position)
	}
}

func TestCameraUniform(t *testing.T) {
	cam := NewCamera()
	u := cam.Uniform()
	if u.Size() != 80 {
		t.Fatalf("Expected size 80, got %d", u.Size())
	}
	if u.CameraPosition != cam.Pose().Position {
		t.Error("uniform eye position differs from the pose")
	}

	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("Expected 80 bytes, got %d", len(buf))
	}
	at := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	for i := range 16 {
		if at(i*4) != u.ViewProj[i] {
			t.Errorf("matrix element %d: Expected %f, got %f", i, u.ViewProj[i], at(i*4))
		}
	}
	for i := range 3 {
		if at(64+i*4) != u.CameraPosition[i] {
			t.Errorf("position component %d: Expected %f, got %f", i, u.CameraPosition[i], at(64+i*4))
		}
	}
}
