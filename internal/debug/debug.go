package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the optional top-right overlay: FPS, heap and simulated time. Off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowTime     bool

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastTimeText string
	lastMemStats runtime.MemStats
}

// New returns a Debug overlay with everything hidden.
func New() *Debug {
	return &Debug{}
}

// Enabled reports whether any overlay line is on.
func (d *Debug) Enabled() bool {
	return d.ShowFPS || d.ShowMemAlloc || d.ShowTime
}

// Draw renders the enabled lines for animation time t. Call in 2D after the scene.
func (d *Debug) Draw(t float64) {
	if !d.Enabled() {
		return
	}
	d.frameCount++
	update := d.frameCount%updateInterval == 0 || d.frameCount == 1

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		drawRight(d.lastMemText, y)
		y += lineHeight
	}
	if d.ShowTime {
		if update {
			d.lastTimeText = fmt.Sprintf("t = %.1f s", t)
		}
		drawRight(d.lastTimeText, y)
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	x := int32(rl.GetScreenWidth()) - w - padding
	rl.DrawText(text, x, y, fontSize, rl.Green)
}
