package graphics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-system/internal/assets"
	"solar-system/internal/controls"
	"solar-system/internal/debug"
	"solar-system/internal/scene"
	"solar-system/internal/viewport"
)

var (
	// ErrNoWindow is returned when the window or OpenGL context could not be created.
	ErrNoWindow = errors.New("graphics: window could not be created")
	// ErrTargetLost is returned when the render target cannot be (re)created.
	ErrTargetLost = errors.New("graphics: render target unavailable")
)

// WindowOptions configures Open.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
}

// Open creates the window. Close it with CloseWindow. ESC or the window button requests close.
func Open(o WindowOptions) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if o.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)
	w, h := windowSize(o)
	rl.InitWindow(w, h, o.Title)
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	if o.TargetFPS > 0 {
		rl.SetTargetFPS(int32(o.TargetFPS))
	}
	return nil
}

// windowSize is the size passed to InitWindow. Monitors cannot be queried before the window
// exists, so fullscreen asks for 0×0, which raylib treats as the monitor size.
func windowSize(o WindowOptions) (w, h int32) {
	if o.Fullscreen {
		return 0, 0
	}
	return int32(o.Width), int32(o.Height)
}

// ScreenSize returns the current window size in pixels, at least 1×1.
func ScreenSize() (w, h int) {
	return max(rl.GetScreenWidth(), 1), max(rl.GetScreenHeight(), 1)
}

// CloseWindow closes the window and OpenGL context.
func CloseWindow() {
	rl.CloseWindow()
}

// Target is the offscreen texture the scene is drawn into; the viewport adapter resizes it.
type Target struct {
	rt          rl.RenderTexture2D
	w, h        int
	supersample int
}

// NewTarget creates a render target for a w×h viewport. supersample renders at N× that size and
// filters down when presenting, which stands in for MSAA on offscreen targets.
func NewTarget(w, h, supersample int) (*Target, error) {
	if supersample < 1 {
		supersample = 1
	}
	t := &Target{supersample: supersample}
	t.SetSize(w, h)
	if !rl.IsRenderTextureValid(t.rt) {
		return nil, ErrTargetLost
	}
	return t, nil
}

// SetSize recreates the texture for a w×h viewport.
func (t *Target) SetSize(w, h int) {
	if w == t.w && h == t.h && rl.IsRenderTextureValid(t.rt) {
		return
	}
	if rl.IsRenderTextureValid(t.rt) {
		rl.UnloadRenderTexture(t.rt)
	}
	t.w, t.h = w, h
	t.rt = rl.LoadRenderTexture(int32(w*t.supersample), int32(h*t.supersample))
	rl.SetTextureFilter(t.rt.Texture, rl.FilterBilinear)
}

// Size returns the viewport size the target was made for.
func (t *Target) Size() (w, h int) {
	return t.w, t.h
}

// Unload frees the texture.
func (t *Target) Unload() {
	if rl.IsRenderTextureValid(t.rt) {
		rl.UnloadRenderTexture(t.rt)
	}
}

// Host runs one frame of the viewer on the window: it polls textures and input, moves the
// camera, draws the scene into the target and presents it with the debug overlay.
type Host struct {
	Scene    *scene.Scene
	Loader   *assets.Loader
	Orbit    *controls.Orbit
	Camera   *viewport.Camera
	Target   *Target
	Debug    *debug.Debug
	OnResize func(w, h int)

	lastW, lastH int
}

// ShouldClose reports a close request.
func (h *Host) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// PollResize reports the screen size when it differs from the last one seen.
func (h *Host) PollResize() (int, int, bool) {
	w, ht := rl.GetScreenWidth(), rl.GetScreenHeight()
	if !rl.IsWindowResized() && w == h.lastW && ht == h.lastH {
		return w, ht, false
	}
	h.lastW, h.lastH = w, ht
	if h.OnResize != nil {
		h.OnResize(w, ht)
	}
	return w, ht, true
}

// Frame draws one frame at animation time t.
func (h *Host) Frame(t float64) error {
	h.Scene.ApplyTextures(h.Loader.Poll())

	delta := rl.GetMouseDelta()
	pos := h.Orbit.Update(controls.Input{
		Dragging:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
		DragX:      delta.X,
		DragY:      delta.Y,
		Wheel:      rl.GetMouseWheelMove(),
		ViewHeight: float32(rl.GetScreenHeight()),
	})
	h.Scene.Camera.Position = rl.NewVector3(pos[0], pos[1], pos[2])
	target := h.Orbit.Target
	h.Scene.Camera.Target = rl.NewVector3(target[0], target[1], target[2])

	if !rl.IsRenderTextureValid(h.Target.rt) {
		return ErrTargetLost
	}
	rl.BeginTextureMode(h.Target.rt)
	rl.ClearBackground(rl.Black)
	h.Scene.Draw(projectionMatrix(h.Camera.Projection))
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	tex := h.Target.rt.Texture
	// Render textures are stored bottom-up; a negative source height flips them.
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	if h.Debug != nil {
		h.Debug.Draw(t)
	}
	rl.EndDrawing()
	return nil
}

// projectionMatrix converts a column-major 4×4 array to raylib's Matrix.
func projectionMatrix(p [16]float32) rl.Matrix {
	return rl.Matrix{
		M0: p[0], M1: p[1], M2: p[2], M3: p[3],
		M4: p[4], M5: p[5], M6: p[6], M7: p[7],
		M8: p[8], M9: p[9], M10: p[10], M11: p[11],
		M12: p[12], M13: p[13], M14: p[14], M15: p[15],
	}
}

// Describe returns a one-line summary of the GL context for the startup log.
func Describe() string {
	return fmt.Sprintf("window %dx%d, monitor %d (%dx%d)",
		rl.GetScreenWidth(), rl.GetScreenHeight(),
		rl.GetCurrentMonitor(), rl.GetMonitorWidth(rl.GetCurrentMonitor()), rl.GetMonitorHeight(rl.GetCurrentMonitor()))
}
