package geometry

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

const (
	// OrbitSegments is the number of line segments in an orbit loop.
	OrbitSegments = 256
	// StarCount and StarfieldSide describe the backdrop cube.
	StarCount     = 2000
	StarfieldSide = 2000
)

// OrbitPath samples a circle of radius distance in the XZ plane at segments+1 evenly spaced
// angles over [0, 2π], so the last point repeats the first and the loop closes.
func OrbitPath(distance float32, segments int) [][3]float32 {
	if segments <= 0 {
		segments = OrbitSegments
	}
	points := make([][3]float32, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := float32(i) / float32(segments) * 2 * math32.Pi
		points = append(points, [3]float32{distance * math32.Cos(a), 0, distance * math32.Sin(a)})
	}
	return points
}

// Vertex is a position plus texture coordinate.
type Vertex struct {
	Pos [3]float32
	UV  [2]float32
}

// Ring returns triangles (three vertices each) for a flat annulus lying in the XZ plane, centered
// on the origin. UVs map the ring's bounding square onto [0,1]², so a ring texture is sampled
// the same way as a texture laid over a disc.
func Ring(inner, outer float32, segments int) []Vertex {
	if segments < 3 {
		segments = 3
	}
	uv := func(x, z float32) [2]float32 {
		return [2]float32{(x/outer + 1) / 2, (z/outer + 1) / 2}
	}
	tris := make([]Vertex, 0, segments*6)
	for i := 0; i < segments; i++ {
		a0 := float32(i) / float32(segments) * 2 * math32.Pi
		a1 := float32(i+1) / float32(segments) * 2 * math32.Pi
		c0, s0 := math32.Cos(a0), math32.Sin(a0)
		c1, s1 := math32.Cos(a1), math32.Sin(a1)
		in0 := [3]float32{inner * c0, 0, inner * s0}
		out0 := [3]float32{outer * c0, 0, outer * s0}
		in1 := [3]float32{inner * c1, 0, inner * s1}
		out1 := [3]float32{outer * c1, 0, outer * s1}
		tris = append(tris,
			Vertex{in0, uv(in0[0], in0[2])},
			Vertex{out0, uv(out0[0], out0[2])},
			Vertex{out1, uv(out1[0], out1[2])},
			Vertex{in0, uv(in0[0], in0[2])},
			Vertex{out1, uv(out1[0], out1[2])},
			Vertex{in1, uv(in1[0], in1[2])},
		)
	}
	return tris
}

// Starfield returns n points uniformly distributed in an axis-aligned cube of the given side,
// centered at the origin.
func Starfield(n int, side float32, rng *rand.Rand) [][3]float32 {
	points := make([][3]float32, n)
	for i := range points {
		points[i] = [3]float32{
			(rng.Float32() - 0.5) * side,
			(rng.Float32() - 0.5) * side,
			(rng.Float32() - 0.5) * side,
		}
	}
	return points
}

// NewRand returns a generator for seed; seed 0 picks a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
