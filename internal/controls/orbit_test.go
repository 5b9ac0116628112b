package controls

import (
	"testing"

	"github.com/chewxy/math32"
)

func nearVec(a, b [3]float32, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestNewOrbitRoundTrips(t *testing.T) {
	start := [3]float32{0, 15, 50}
	o := NewOrbit(start, [3]float32{})
	if got := o.Position(); !nearVec(got, start, 1e-3) {
		t.Errorf("Position() = %v, want %v", got, start)
	}
	if got := o.Update(Input{}); !nearVec(got, start, 1e-3) {
		t.Errorf("idle Update() moved camera to %v", got)
	}
}

func TestDragIsDamped(t *testing.T) {
	o := NewOrbit([3]float32{0, 0, 20}, [3]float32{})
	o.Update(Input{Dragging: true, DragX: 100, ViewHeight: 800})
	yaw1, _ := o.Angles()
	total := -2 * math32.Pi * 100 / 800
	if math32.Abs(yaw1-total*DefaultDamping) > 1e-4 {
		t.Errorf("first step yaw %g, want %g", yaw1, total*DefaultDamping)
	}
	for range 500 {
		o.Update(Input{ViewHeight: 800})
	}
	yaw, _ := o.Angles()
	if math32.Abs(yaw-total) > 1e-3 {
		t.Errorf("settled yaw %g, want %g", yaw, total)
	}
	if d := o.Distance(); math32.Abs(d-20) > 1e-3 {
		t.Errorf("rotation changed distance to %g", d)
	}
}

func TestPitchIsClamped(t *testing.T) {
	o := NewOrbit([3]float32{0, 0, 20}, [3]float32{})
	o.Damping = 1
	o.Update(Input{Dragging: true, DragY: 10000, ViewHeight: 100})
	_, pitch := o.Angles()
	if pitch >= math32.Pi/2 {
		t.Errorf("pitch %g reached the pole", pitch)
	}
}

func TestZoomIsClamped(t *testing.T) {
	o := NewOrbit([3]float32{0, 0, 20}, [3]float32{})
	o.MinDistance, o.MaxDistance = 5, 100
	o.Update(Input{Wheel: 1})
	if d := o.Distance(); math32.Abs(d-19) > 1e-3 {
		t.Errorf("one notch: distance %g, want 19", d)
	}
	o.Update(Input{Wheel: 200})
	if d := o.Distance(); d != 5 {
		t.Errorf("zoomed in to %g, want min 5", d)
	}
	o.Update(Input{Wheel: -500})
	if d := o.Distance(); d != 100 {
		t.Errorf("zoomed out to %g, want max 100", d)
	}
}
