package bodies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
)

// ErrInvalidDescriptor is returned by Validate when the body table cannot be rendered.
var ErrInvalidDescriptor = errors.New("invalid body descriptor")

// Kind separates the three kinds of body the animation treats differently.
type Kind string

const (
	Star   Kind = "star"
	Planet Kind = "planet"
	Moon   Kind = "moon"
)

// Descriptor is one entry of the body table. Everything here is fixed after startup;
// the per-frame position lives in kinematics.Body.
// For a moon, OrbitDistance is the offset from its parent rather than from the origin.
type Descriptor struct {
	Name          string  `yaml:"name"`
	Kind          Kind    `yaml:"kind"`
	Parent        string  `yaml:"parent,omitempty"`
	Radius        float32 `yaml:"radius"`
	OrbitDistance float32 `yaml:"orbit_distance"`
	AngularSpeed  float32 `yaml:"angular_speed"`
	Texture       string  `yaml:"texture"`
	LabelSize     float32 `yaml:"label_size"`
	LabelOffset   float32 `yaml:"label_offset"`
	// Color is the RGBA shown until (or instead of) the texture.
	Color [4]uint8 `yaml:"color"`
}

// RingSpec describes the flat ring drawn around one planet.
type RingSpec struct {
	Parent   string  `yaml:"parent"`
	Inner    float32 `yaml:"inner"`
	Outer    float32 `yaml:"outer"`
	Segments int     `yaml:"segments"`
	Texture  string  `yaml:"texture"`
}

// planetLabelGap is the distance between a planet's surface and its label.
const planetLabelGap = 3

func planet(name string, radius, distance, speed float32, texture string, color [4]uint8) Descriptor {
	return Descriptor{
		Name:          name,
		Kind:          Planet,
		Radius:        radius,
		OrbitDistance: distance,
		AngularSpeed:  speed,
		Texture:       texture,
		LabelSize:     6,
		LabelOffset:   radius + planetLabelGap,
		Color:         color,
	}
}

// defaultBodies is the body table in draw order. Earth must come before the Moon.
var defaultBodies = []Descriptor{
	{
		Name:        "Sun",
		Kind:        Star,
		Radius:      5,
		Texture:     "sun.jpg",
		LabelSize:   8,
		LabelOffset: 8,
		Color:       [4]uint8{253, 184, 19, 255},
	},
	planet("Mercury", 0.5, 8, 4, "mercury.jpg", [4]uint8{181, 181, 181, 255}),
	planet("Venus", 1.2, 11, 1.5, "venus.jpg", [4]uint8{232, 205, 162, 255}),
	planet("Earth", 1.3, 15, 1, "earth.jpg", [4]uint8{46, 134, 171, 255}),
	planet("Mars", 1, 19, 0.8, "mars.jpg", [4]uint8{193, 68, 14, 255}),
	planet("Jupiter", 3, 25, 0.2, "jupiter.jpg", [4]uint8{200, 139, 58, 255}),
	planet("Saturn", 2.5, 32, 0.15, "saturn.jpg", [4]uint8{228, 209, 145, 255}),
	planet("Uranus", 2, 38, 0.1, "uranus.jpg", [4]uint8{172, 229, 238, 255}),
	planet("Neptune", 2, 44, 0.05, "neptune.jpg", [4]uint8{91, 93, 223, 255}),
	{
		Name:          "Moon",
		Kind:          Moon,
		Parent:        "Earth",
		Radius:        0.35,
		OrbitDistance: 2,
		AngularSpeed:  4,
		Texture:       "moon.jpg",
		LabelSize:     4,
		LabelOffset:   1,
		Color:         [4]uint8{160, 160, 160, 255},
	},
}

var defaultRing = RingSpec{
	Parent:   "Saturn",
	Inner:    3,
	Outer:    5,
	Segments: 64,
	Texture:  "saturn-ring.png",
}

// Registry is the ordered, read-only body table plus the ring.
type Registry struct {
	bodies []Descriptor
	ring   RingSpec
}

// Default returns the built-in sun, eight planets, moon and Saturn ring.
func Default() *Registry {
	return New(defaultBodies, defaultRing)
}

// New returns a registry over a copy of descs and ring. Call Validate before using it.
func New(descs []Descriptor, ring RingSpec) *Registry {
	r := &Registry{ring: ring}
	r.bodies = make([]Descriptor, len(descs))
	copy(r.bodies, descs)
	return r
}

// Bodies returns a copy of the table in order. Mutating the result does not affect the registry.
func (r *Registry) Bodies() []Descriptor {
	var out []Descriptor
	if err := copier.CopyWithOption(&out, r.bodies, copier.Option{DeepCopy: true}); err != nil {
		out = make([]Descriptor, len(r.bodies))
		copy(out, r.bodies)
	}
	return out
}

// Ring returns the ring description.
func (r *Registry) Ring() RingSpec {
	return r.ring
}

// Len returns the number of bodies.
func (r *Registry) Len() int {
	return len(r.bodies)
}

// Lookup finds a body by name, ignoring case.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	for _, d := range r.bodies {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// index returns the position of name in the table, or -1.
func (r *Registry) index(name string) int {
	for i, d := range r.bodies {
		if strings.EqualFold(d.Name, name) {
			return i
		}
	}
	return -1
}

// Validate checks what the scene builder and animation need: a texture for every body,
// non-negative radii, planets off the origin, one star, and moons placed after their parent.
func (r *Registry) Validate() error {
	stars := 0
	for i, d := range r.bodies {
		if d.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidDescriptor, i)
		}
		if d.Texture == "" {
			return fmt.Errorf("%w: %s has no texture", ErrInvalidDescriptor, d.Name)
		}
		if d.Radius < 0 {
			return fmt.Errorf("%w: %s has negative radius %g", ErrInvalidDescriptor, d.Name, d.Radius)
		}
		switch d.Kind {
		case Star:
			stars++
		case Planet:
			if d.OrbitDistance <= 0 {
				return fmt.Errorf("%w: planet %s needs a positive orbit distance", ErrInvalidDescriptor, d.Name)
			}
		case Moon:
			p := r.index(d.Parent)
			if p < 0 {
				return fmt.Errorf("%w: moon %s has unknown parent %q", ErrInvalidDescriptor, d.Name, d.Parent)
			}
			if p > i {
				return fmt.Errorf("%w: moon %s listed before its parent %s", ErrInvalidDescriptor, d.Name, d.Parent)
			}
			if r.bodies[p].Kind != Planet {
				return fmt.Errorf("%w: moon %s must orbit a planet", ErrInvalidDescriptor, d.Name)
			}
		default:
			return fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidDescriptor, d.Name, d.Kind)
		}
	}
	if stars != 1 {
		return fmt.Errorf("%w: want exactly one star, have %d", ErrInvalidDescriptor, stars)
	}
	if r.index(r.ring.Parent) < 0 {
		return fmt.Errorf("%w: ring parent %q not found", ErrInvalidDescriptor, r.ring.Parent)
	}
	if r.ring.Inner < 0 || r.ring.Outer <= r.ring.Inner {
		return fmt.Errorf("%w: ring radii %g..%g", ErrInvalidDescriptor, r.ring.Inner, r.ring.Outer)
	}
	return nil
}
