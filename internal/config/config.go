package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultPath is the prefs file, relative to the process working directory.
const DefaultPath = "config/solarsystem.json"

// Prefs holds viewer preferences. Persisted across runs with Save; every field can also be
// overridden from the environment (SOLAR_*), which wins over the file.
type Prefs struct {
	WindowWidth  int    `json:"window_width" env:"SOLAR_WINDOW_WIDTH"`
	WindowHeight int    `json:"window_height" env:"SOLAR_WINDOW_HEIGHT"`
	Fullscreen   bool   `json:"fullscreen" env:"SOLAR_FULLSCREEN"`
	TargetFPS    int    `json:"target_fps" env:"SOLAR_TARGET_FPS"`
	MSAA         bool   `json:"msaa" env:"SOLAR_MSAA"`
	ShowFPS      bool   `json:"show_fps" env:"SOLAR_SHOW_FPS"`
	ShowMemAlloc bool   `json:"show_memalloc" env:"SOLAR_SHOW_MEMALLOC"`
	ShowOrbits   bool   `json:"show_orbits" env:"SOLAR_SHOW_ORBITS"`
	ShowLabels   bool   `json:"show_labels" env:"SOLAR_SHOW_LABELS"`
	Lighting     bool   `json:"lighting" env:"SOLAR_LIGHTING"`
	StarSeed     uint64 `json:"star_seed" env:"SOLAR_STAR_SEED"`
	// TimeScale multiplies wall-clock seconds before they reach the orbit formulas.
	TimeScale      float32 `json:"time_scale" env:"SOLAR_TIME_SCALE"`
	MaxTextureEdge int     `json:"max_texture_edge" env:"SOLAR_MAX_TEXTURE_EDGE"`
	TexturesDir    string  `json:"textures_dir,omitempty" env:"SOLAR_TEXTURES_DIR"`
	BodiesFile     string  `json:"bodies_file,omitempty" env:"SOLAR_BODIES_FILE"`
	LabelFont      string  `json:"label_font,omitempty" env:"SOLAR_LABEL_FONT"`
	LogFile        string  `json:"log_file,omitempty" env:"SOLAR_LOG_FILE"`
	// MetricsAddr enables the Prometheus endpoint (e.g. ":9464"). Empty = off.
	MetricsAddr string `json:"metrics_addr,omitempty" env:"SOLAR_METRICS_ADDR"`
}

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{
		WindowWidth:    1280,
		WindowHeight:   720,
		TargetFPS:      60,
		MSAA:           true,
		ShowOrbits:     true,
		ShowLabels:     true,
		Lighting:       false,
		TimeScale:      1,
		MaxTextureEdge: 2048,
		BodiesFile:     "config/bodies.yaml",
	}
}

// Load reads prefs from path (DefaultPath when empty). A missing file yields Default();
// an unreadable or invalid one is an error. Environment overrides are applied afterwards.
func Load(path string) (Prefs, error) {
	if path == "" {
		path = DefaultPath
	}
	p := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Default(), fmt.Errorf("config: %w", err)
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return Default(), fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := env.Parse(&p); err != nil {
		return Default(), fmt.Errorf("config: env: %w", err)
	}
	p.normalize()
	return p, nil
}

// normalize replaces unusable values with defaults.
func (p *Prefs) normalize() {
	d := Default()
	if p.WindowWidth <= 0 {
		p.WindowWidth = d.WindowWidth
	}
	if p.WindowHeight <= 0 {
		p.WindowHeight = d.WindowHeight
	}
	if p.TargetFPS < 0 {
		p.TargetFPS = d.TargetFPS
	}
	if p.TimeScale == 0 {
		p.TimeScale = d.TimeScale
	}
	if p.MaxTextureEdge <= 0 {
		p.MaxTextureEdge = d.MaxTextureEdge
	}
}

// Save writes prefs to path (DefaultPath when empty), creating the directory if needed.
func Save(path string, p Prefs) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
