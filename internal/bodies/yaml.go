package bodies

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// override is one entry of the YAML file. Nil fields keep the built-in value.
type override struct {
	Name          string    `yaml:"name"`
	Radius        *float32  `yaml:"radius"`
	OrbitDistance *float32  `yaml:"orbit_distance"`
	AngularSpeed  *float32  `yaml:"angular_speed"`
	Texture       *string   `yaml:"texture"`
	LabelSize     *float32  `yaml:"label_size"`
	LabelOffset   *float32  `yaml:"label_offset"`
	Color         *[4]uint8 `yaml:"color"`
}

type ringOverride struct {
	Inner    *float32 `yaml:"inner"`
	Outer    *float32 `yaml:"outer"`
	Segments *int     `yaml:"segments"`
	Texture  *string  `yaml:"texture"`
}

type file struct {
	Bodies []override    `yaml:"bodies"`
	Ring   *ringOverride `yaml:"ring"`
}

var titleCase = cases.Title(language.English)

// normalizeName turns " mercury " or "MERCURY" into "Mercury".
func normalizeName(s string) string {
	return titleCase.String(strings.ToLower(strings.TrimSpace(s)))
}

// LoadYAML returns the default registry retuned by the file at path (e.g. config/bodies.yaml).
// Only existing bodies can be changed; the set of bodies is fixed. A missing file is not an error.
func LoadYAML(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("bodies: %w", err)
	}
	if err := r.apply(data); err != nil {
		return nil, fmt.Errorf("bodies: %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("bodies: %s: %w", path, err)
	}
	return r, nil
}

// apply decodes YAML overrides onto r.
func (r *Registry) apply(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, o := range f.Bodies {
		name := normalizeName(o.Name)
		i := r.index(name)
		if i < 0 {
			return fmt.Errorf("%w: unknown body %q", ErrInvalidDescriptor, o.Name)
		}
		d := &r.bodies[i]
		if o.Radius != nil {
			// Planet labels follow the surface unless the file pins them.
			if d.Kind == Planet && o.LabelOffset == nil {
				d.LabelOffset = *o.Radius + planetLabelGap
			}
			d.Radius = *o.Radius
		}
		if o.OrbitDistance != nil {
			d.OrbitDistance = *o.OrbitDistance
		}
		if o.AngularSpeed != nil {
			d.AngularSpeed = *o.AngularSpeed
		}
		if o.Texture != nil {
			d.Texture = *o.Texture
		}
		if o.LabelSize != nil {
			d.LabelSize = *o.LabelSize
		}
		if o.LabelOffset != nil {
			d.LabelOffset = *o.LabelOffset
		}
		if o.Color != nil {
			d.Color = *o.Color
		}
	}
	if ro := f.Ring; ro != nil {
		if ro.Inner != nil {
			r.ring.Inner = *ro.Inner
		}
		if ro.Outer != nil {
			r.ring.Outer = *ro.Outer
		}
		if ro.Segments != nil {
			r.ring.Segments = *ro.Segments
		}
		if ro.Texture != nil {
			r.ring.Texture = *ro.Texture
		}
	}
	return nil
}
