package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/panorbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func TestResolveDefaultPose(t *testing.T) {
	p := Resolve(0, 0, 0, 5, mgl32.Vec3{}, IdentityBase())
	if !vecNear(p.Position, mgl32.Vec3{0, 0, 5}, 1e-5) {
		t.Errorf("Expected eye at (0,0,5), got %v", p.Position)
	}
	if !vecNear(p.Forward(), mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected forward -Z, got %v", p.Forward())
	}
	if !vecNear(p.Up(), mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("Expected up +Y, got %v", p.Up())
	}
	if p.UpsideDown {
		t.Error("default pose is not upside down")
	}
}

func TestResolveLooksAtFocus(t *testing.T) {
	focus := mgl32.Vec3{1, -2, 3}
	for _, alpha := range []float32{0, 0.7, 2.5, 4} {
		for _, beta := range []float32{-1.2, -0.3, 0, 0.9, 1.5} {
			p := Resolve(alpha, beta, 0, 4, focus, IdentityBase())
			toFocus := focus.Sub(p.Position).Normalize()
			if !vecNear(p.Forward(), toFocus, 1e-4) {
				t.Errorf("alpha=%f beta=%f: forward %v does not point at focus %v", alpha, beta, p.Forward(), toFocus)
			}
			if d := p.Position.Sub(focus).Len(); !mgl32.FloatEqualThreshold(d, 4, 1e-4) {
				t.Errorf("alpha=%f beta=%f: Expected distance 4, got %f", alpha, beta, d)
			}
		}
	}
}

func TestResolveWrapInvariant(t *testing.T) {
	focus := mgl32.Vec3{0.5, 0, -1}
	for _, alpha := range []float32{0.1, 1.3, 3.0, 5.9} {
		ref := Resolve(alpha, 0.4, 0, 3, focus, IdentityBase())
		for _, k := range []float32{-2, -1, 1, 3} {
			p := Resolve(alpha+k*common.Tau, 0.4, 0, 3, focus, IdentityBase())
			if !vecNear(p.Position, ref.Position, 1e-4) {
				t.Errorf("alpha=%f k=%f: Expected %v, got %v", alpha, k, ref.Position, p.Position)
			}
			if !vecNear(p.Forward(), ref.Forward(), 1e-4) {
				t.Errorf("alpha=%f k=%f: orientation differs", alpha, k)
			}
		}
	}
}

func TestResolveUpFollowsCosBeta(t *testing.T) {
	for _, beta := range []float32{-3, -2, -1, 0, 1, 1.4, 1.7, 2.5, 3.1, 4.5, 5.5} {
		p := Resolve(0.8, beta, 0, 2, mgl32.Vec3{}, IdentityBase())
		cb := math.Cos(float64(beta))
		dot := float64(p.Up().Dot(mgl32.Vec3{0, 1, 0}))
		if math.Abs(cb) > 1e-3 && (dot > 0) != (cb > 0) {
			t.Errorf("beta=%f: up·Y=%f has the wrong sign for cos β=%f", beta, dot, cb)
		}
		if p.UpsideDown != (cb < 0) {
			t.Errorf("beta=%f: Expected upside down %v, got %v", beta, cb < 0, p.UpsideDown)
		}
	}
}

func TestResolvePoleIsStable(t *testing.T) {
	p := Resolve(1, math.Pi/2, 0, 2, mgl32.Vec3{}, IdentityBase())
	if !vecNear(p.Position, mgl32.Vec3{0, 2, 0}, 1e-5) {
		t.Errorf("Expected eye above focus, got %v", p.Position)
	}
	for i, v := range [3]mgl32.Vec3{p.Right(), p.Up(), p.Forward()} {
		if !mgl32.FloatEqualThreshold(v.Len(), 1, 1e-4) {
			t.Errorf("axis %d is degenerate at the pole: %v", i, v)
		}
	}
}

func TestResolveBaseUp(t *testing.T) {
	base := BaseFromUp(mgl32.Vec3{0, 0, 1})
	p := Resolve(0, 0, 0, 3, mgl32.Vec3{}, base)
	if h := p.Position.Dot(mgl32.Vec3{0, 0, 1}); math.Abs(float64(h)) > 1e-5 {
		t.Errorf("beta=0 should sit on the plane orthogonal to up, got %v", p.Position)
	}
	if !vecNear(p.Up(), mgl32.Vec3{0, 0, 1}, 1e-4) {
		t.Errorf("Expected up +Z, got %v", p.Up())
	}

	base.Offset = mgl32.Vec3{10, 0, 0}
	shifted := Resolve(0, 0, 0, 3, mgl32.Vec3{}, base)
	if !vecNear(shifted.Position, p.Position.Add(mgl32.Vec3{10, 0, 0}), 1e-5) {
		t.Errorf("offset should translate the eye, got %v", shifted.Position)
	}
}

func TestResolveRollKeepsViewAxis(t *testing.T) {
	p := Resolve(0.3, 0.2, 0, 4, mgl32.Vec3{}, IdentityBase())
	r := Resolve(0.3, 0.2, math.Pi/2, 4, mgl32.Vec3{}, IdentityBase())
	if !vecNear(p.Forward(), r.Forward(), 1e-5) {
		t.Error("roll must not change the viewing direction")
	}
	if !vecNear(r.Up(), p.Right().Mul(-1), 1e-4) {
		t.Errorf("quarter roll should turn up onto -right, got %v", r.Up())
	}
}

func TestAnglesFromEyeRoundTrip(t *testing.T) {
	focus := mgl32.Vec3{1, 1, 1}
	p := Resolve(2.2, -0.6, 0, 7, focus, IdentityBase())
	a, b, r, ok := anglesFromEye(p.Position, focus, IdentityBase())
	if !ok {
		t.Fatal("Expected angles")
	}
	q := Resolve(a, b, 0, r, focus, IdentityBase())
	if !vecNear(p.Position, q.Position, 1e-4) {
		t.Errorf("Expected %v, got %v", p.Position, q.Position)
	}
	if _, _, _, ok := anglesFromEye(focus, focus, IdentityBase()); ok {
		t.Error("eye on focus has no angles")
	}
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	p := Resolve(1, 0.5, 0, 6, mgl32.Vec3{2, 0, 0}, IdentityBase())
	v := p.ViewMatrix()
	eye := v.Mul4x1(p.Position.Vec4(1)).Vec3()
	if !vecNear(eye, mgl32.Vec3{}, 1e-4) {
		t.Errorf("Expected eye at origin in view space, got %v", eye)
	}
	focus := v.Mul4x1(p.Focus.Vec4(1)).Vec3()
	if !vecNear(focus, mgl32.Vec3{0, 0, -6}, 1e-3) {
		t.Errorf("Expected focus on -Z at distance 6, got %v", focus)
	}
}
