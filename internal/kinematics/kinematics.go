package kinematics

import (
	"math"
	"strings"

	"github.com/chewxy/math32"

	"solar-system/internal/bodies"
)

// SunSpinRate is the star's self rotation in radians per second (0.001 rad per frame at 60 FPS).
const SunSpinRate = 0.06

// OrbitPosition returns the point on a circle of radius distance in the XZ plane after
// t seconds at angularSpeed radians per second. Y is always 0.
func OrbitPosition(distance, angularSpeed float32, t float64) [3]float32 {
	a := phase(angularSpeed, t)
	return [3]float32{distance * math32.Cos(a), 0, distance * math32.Sin(a)}
}

// SatellitePosition returns parent plus a circular offset of the given radius. The parent is
// the parent's position in the same tick, not the origin.
func SatellitePosition(parent [3]float32, offset, angularSpeed float32, t float64) [3]float32 {
	o := OrbitPosition(offset, angularSpeed, t)
	return [3]float32{parent[0] + o[0], parent[1], parent[2] + o[2]}
}

// SpinAngle returns the self rotation about Y after t seconds, wrapped to [0, 2π).
func SpinAngle(rate float32, t float64) float32 {
	return phase(rate, t)
}

// phase returns rate·t wrapped to [0, 2π). t grows for as long as the window is open, so the
// product and the reduction stay in float64; only the reduced angle is narrowed.
func phase(rate float32, t float64) float32 {
	a := math.Mod(float64(rate)*t, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	f := float32(a)
	if f >= 2*math32.Pi {
		f = 0
	}
	return f
}

// Body is the per-frame state of one descriptor. Only Position and Spin change.
type Body struct {
	Desc     bodies.Descriptor
	Position [3]float32
	Spin     float32
	parent   int // index into System.Bodies for moons, -1 otherwise
}

// System holds the animated state of every body in registry order.
type System struct {
	Bodies []*Body
	time   float64
}

// NewSystem places each body at its initial position: (d, 0, 0) for planets, the origin for the star,
// and parent + (offset, 0, 0) for moons. Moons must follow their parent in the table; parent
// names match ignoring case, as in bodies.Registry.Validate.
func NewSystem(reg *bodies.Registry) *System {
	descs := reg.Bodies()
	s := &System{Bodies: make([]*Body, 0, len(descs))}
	byName := make(map[string]int, len(descs))
	for i, d := range descs {
		b := &Body{Desc: d, parent: -1}
		if d.Kind == bodies.Moon {
			if p, ok := byName[strings.ToLower(d.Parent)]; ok {
				b.parent = p
			}
		}
		byName[strings.ToLower(d.Name)] = i
		s.Bodies = append(s.Bodies, b)
	}
	s.Update(0)
	return s
}

// Update recomputes every position for elapsed time t (seconds). Bodies are processed in table
// order so a moon always sees its parent's position from this tick.
func (s *System) Update(t float64) {
	s.time = t
	for _, b := range s.Bodies {
		d := b.Desc
		switch d.Kind {
		case bodies.Star:
			b.Position = [3]float32{}
			b.Spin = SpinAngle(SunSpinRate, t)
		case bodies.Planet:
			b.Position = OrbitPosition(d.OrbitDistance, d.AngularSpeed, t)
		case bodies.Moon:
			var parent [3]float32
			if b.parent >= 0 {
				parent = s.Bodies[b.parent].Position
			}
			b.Position = SatellitePosition(parent, d.OrbitDistance, d.AngularSpeed, t)
		}
	}
}

// Time returns the t passed to the last Update.
func (s *System) Time() float64 {
	return s.time
}

// Find returns the body with the given name, ignoring case, or nil.
func (s *System) Find(name string) *Body {
	for _, b := range s.Bodies {
		if strings.EqualFold(b.Desc.Name, name) {
			return b
		}
	}
	return nil
}
