package kinematics

import (
	"math"
	"testing"

	"github.com/chewxy/math32"

	"solar-system/internal/bodies"
)

const tol = 1e-3

func near(a, b float32) bool {
	return math32.Abs(a-b) <= tol*math32.Max(1, math32.Abs(b))
}

func TestPlanetsStayOnTheirCircle(t *testing.T) {
	s := NewSystem(bodies.Default())
	times := []float64{0, 0.016, 1, math.Pi, 12.5, 100, 1234.567, 72 * 3600}
	for _, tm := range times {
		s.Update(tm)
		for _, b := range s.Bodies {
			if b.Desc.Kind != bodies.Planet {
				continue
			}
			p := b.Position
			d := b.Desc.OrbitDistance
			if got := p[0]*p[0] + p[2]*p[2]; !near(got, d*d) {
				t.Errorf("t=%g %s: x²+z² = %g, want %g", tm, b.Desc.Name, got, d*d)
			}
			if p[1] != 0 {
				t.Errorf("t=%g %s: y = %g, want 0", tm, b.Desc.Name, p[1])
			}
		}
	}
}

func TestMoonTracksEarth(t *testing.T) {
	s := NewSystem(bodies.Default())
	earth, moon := s.Find("Earth"), s.Find("Moon")
	if earth == nil || moon == nil {
		t.Fatal("Earth or Moon missing")
	}
	for _, tm := range []float64{0, 0.5, 1, 2.25, math.Pi, 77, 72*3600 + 0.25} {
		s.Update(tm)
		dx := moon.Position[0] - earth.Position[0]
		dz := moon.Position[2] - earth.Position[2]
		if got := math32.Sqrt(dx*dx + dz*dz); !near(got, 2) {
			t.Errorf("t=%g |moon-earth| = %g, want 2", tm, got)
		}
	}
}

func TestStartPositions(t *testing.T) {
	s := NewSystem(bodies.Default())
	s.Update(0)
	tests := []struct {
		name string
		want [3]float32
	}{
		{"Sun", [3]float32{0, 0, 0}},
		{"Mercury", [3]float32{8, 0, 0}},
		{"Earth", [3]float32{15, 0, 0}},
		{"Moon", [3]float32{17, 0, 0}},
		{"Neptune", [3]float32{44, 0, 0}},
	}
	for _, tt := range tests {
		got := s.Find(tt.name).Position
		for i := range got {
			if !near(got[i], tt.want[i]) {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestEarthHalfOrbit(t *testing.T) {
	s := NewSystem(bodies.Default())
	s.Update(math.Pi)
	got := s.Find("Earth").Position
	if !near(got[0], -15) || math32.Abs(got[2]) > tol || got[1] != 0 {
		t.Errorf("Earth at t=π = %v, want (-15, 0, 0)", got)
	}
}

func TestSunDoesNotMove(t *testing.T) {
	s := NewSystem(bodies.Default())
	sun := s.Find("Sun")
	var last float32 = -1
	for _, tm := range []float64{0, 1, 2, 3} {
		s.Update(tm)
		if sun.Position != ([3]float32{}) {
			t.Errorf("t=%g sun at %v", tm, sun.Position)
		}
		if sun.Spin <= last && tm > 0 {
			t.Errorf("t=%g spin %g did not advance past %g", tm, sun.Spin, last)
		}
		last = sun.Spin
	}
}

func TestSpinAngleWraps(t *testing.T) {
	tests := []struct {
		rate float32
		t    float64
		want float32
	}{
		{1, 0, 0},
		{1, 1, 1},
		{1, 2*math.Pi + 0.5, 0.5},
		{-1, 1, 2*math32.Pi - 1},
		{1, 2 * math.Pi * 1e6, 0},
	}
	for _, tt := range tests {
		if got := SpinAngle(tt.rate, tt.t); !near(got, tt.want) {
			t.Errorf("SpinAngle(%g, %g) = %g, want %g", tt.rate, tt.t, got, tt.want)
		}
	}
}

func TestSatellitePositionUsesParent(t *testing.T) {
	got := SatellitePosition([3]float32{-3, 1, 4}, 2, 4, 0)
	want := [3]float32{-1, 1, 4}
	if got != want {
		t.Errorf("SatellitePosition() = %v, want %v", got, want)
	}
}

func TestStepsStayEvenAfterLongUptime(t *testing.T) {
	const frame = 1.0 / 60
	d, w := float32(8), float32(4) // Mercury
	want := 2 * float64(d) * math.Sin(float64(w)*frame/2)
	for _, hours := range []float64{0, 1, 24, 72} {
		start := hours * 3600
		prev := OrbitPosition(d, w, start)
		for i := 1; i <= 60; i++ {
			p := OrbitPosition(d, w, start+float64(i)*frame)
			dx, dz := float64(p[0]-prev[0]), float64(p[2]-prev[2])
			if step := math.Hypot(dx, dz); math.Abs(step-want) > 1e-3 {
				t.Fatalf("%gh frame %d: step %g, want %g", hours, i, step, want)
			}
			prev = p
		}
	}
}

func TestMoonParentMatchesIgnoringCase(t *testing.T) {
	descs := bodies.Default().Bodies()
	for i := range descs {
		if descs[i].Kind == bodies.Moon {
			descs[i].Parent = "earth"
		}
	}
	reg := bodies.New(descs, bodies.Default().Ring())
	if err := reg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	s := NewSystem(reg)
	s.Update(3)
	earth, moon := s.Find("Earth"), s.Find("moon")
	dx := moon.Position[0] - earth.Position[0]
	dz := moon.Position[2] - earth.Position[2]
	if got := math32.Sqrt(dx*dx + dz*dz); !near(got, 2) {
		t.Errorf("|moon-earth| = %g, want 2 (moon at %v)", got, moon.Position)
	}
}
