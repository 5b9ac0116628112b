package viewport

import "github.com/chewxy/math32"

// Camera is the projection half of the perspective camera; the position comes from controls.
type Camera struct {
	Fovy   float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
	// Projection is column-major, refreshed by UpdateProjection.
	Projection [16]float32
}

// NewCamera returns a camera with the given lens and aspect w/h, projection already computed.
func NewCamera(fovy, near, far float32, w, h int) *Camera {
	c := &Camera{Fovy: fovy, Near: near, Far: far, Aspect: 1}
	if w > 0 && h > 0 {
		c.Aspect = float32(w) / float32(h)
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection recomputes Projection from Fovy, Aspect, Near and Far (OpenGL clip space).
func (c *Camera) UpdateProjection() {
	f := 1 / math32.Tan(c.Fovy*math32.Pi/360)
	nf := 1 / (c.Near - c.Far)
	c.Projection = [16]float32{
		f / c.Aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (c.Far + c.Near) * nf, -1,
		0, 0, 2 * c.Far * c.Near * nf, 0,
	}
}

// Surface is whatever the frame is drawn into.
type Surface interface {
	SetSize(w, h int)
}

// Adapter keeps the camera and the render target matched to the window.
type Adapter struct {
	Camera  *Camera
	Surface Surface
	w, h    int
}

// New returns an adapter for a window already sized w×h. The surface is not resized until
// the first Resize.
func New(cam *Camera, surface Surface, w, h int) *Adapter {
	return &Adapter{Camera: cam, Surface: surface, w: w, h: h}
}

// Size returns the last applied viewport size.
func (a *Adapter) Size() (w, h int) {
	return a.w, a.h
}

// Resize applies a new viewport size: aspect = w/h, projection refreshed, surface resized.
// Non-positive sizes (a minimized window) are ignored. Returns whether anything changed.
func (a *Adapter) Resize(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	aspect := float32(w) / float32(h)
	if w == a.w && h == a.h && a.Camera.Aspect == aspect {
		return false
	}
	a.w, a.h = w, h
	a.Camera.Aspect = aspect
	a.Camera.UpdateProjection()
	if a.Surface != nil {
		a.Surface.SetSize(w, h)
	}
	return true
}
