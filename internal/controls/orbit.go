package controls

import "github.com/chewxy/math32"

const (
	// DefaultDamping is the fraction of pending rotation applied per update.
	DefaultDamping = 0.05
	// zoomStep is the distance scale per wheel notch.
	zoomStep = 0.95
	// polarMargin keeps the camera away from straight up/down, where the view up vector flips.
	polarMargin = 0.01
)

// Input is one frame of pointer state. DragX/DragY are pixel deltas while the rotate button is
// held; Wheel is notches scrolled (positive = zoom in); ViewHeight converts pixels to angles.
type Input struct {
	Dragging   bool
	DragX      float32
	DragY      float32
	Wheel      float32
	ViewHeight float32
}

// Orbit keeps the camera on a sphere around Target. Dragging queues rotation which is
// applied gradually with damping; zoom scales the radius immediately.
type Orbit struct {
	Target      [3]float32
	Damping     float32
	RotateSpeed float32
	MinDistance float32
	MaxDistance float32

	yaw, pitch, distance float32
	yawDelta, pitchDelta float32
}

// NewOrbit starts from a camera at position looking at target.
func NewOrbit(position, target [3]float32) *Orbit {
	o := &Orbit{
		Target:      target,
		Damping:     DefaultDamping,
		RotateSpeed: 1,
		MinDistance: 1,
		MaxDistance: 1000,
	}
	dx := position[0] - target[0]
	dy := position[1] - target[1]
	dz := position[2] - target[2]
	o.distance = math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if o.distance > 0 {
		o.pitch = math32.Asin(dy / o.distance)
	}
	o.yaw = math32.Atan2(dx, dz)
	return o
}

// Distance returns the current camera-to-target distance.
func (o *Orbit) Distance() float32 { return o.distance }

// Angles returns yaw (about Y, 0 = +Z) and pitch (0 = level) in radians.
func (o *Orbit) Angles() (yaw, pitch float32) { return o.yaw, o.pitch }

// Update folds in one frame of input and returns the new camera position.
func (o *Orbit) Update(in Input) [3]float32 {
	if in.Dragging && in.ViewHeight > 0 {
		// A drag across the full view height turns the camera once around.
		k := 2 * math32.Pi * o.RotateSpeed / in.ViewHeight
		o.yawDelta -= in.DragX * k
		o.pitchDelta += in.DragY * k
	}
	if in.Wheel != 0 {
		o.distance *= math32.Pow(zoomStep, in.Wheel)
	}
	o.distance = clamp(o.distance, o.MinDistance, o.MaxDistance)

	damping := o.Damping
	if damping <= 0 || damping > 1 {
		damping = 1
	}
	o.yaw += o.yawDelta * damping
	o.pitch += o.pitchDelta * damping
	o.yawDelta *= 1 - damping
	o.pitchDelta *= 1 - damping

	limit := math32.Pi/2 - polarMargin
	o.pitch = clamp(o.pitch, -limit, limit)
	return o.Position()
}

// Position returns the camera position for the current angles and distance.
func (o *Orbit) Position() [3]float32 {
	cp := math32.Cos(o.pitch)
	return [3]float32{
		o.Target[0] + o.distance*cp*math32.Sin(o.yaw),
		o.Target[1] + o.distance*math32.Sin(o.pitch),
		o.Target[2] + o.distance*cp*math32.Cos(o.yaw),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
