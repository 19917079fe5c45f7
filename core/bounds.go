package core

// Bounds is the viewport size in pixels
type Bounds struct {
	Width  float64
	Height float64
}

// Viewport supplies current bounds, queried every tick
type Viewport interface {
	Width() float64
	Height() float64
}

// BoundsOf snapshots a viewport
func BoundsOf(v Viewport) Bounds {
	return Bounds{Width: v.Width(), Height: v.Height()}
}

// StaticViewport is a fixed-size viewport
type StaticViewport struct {
	W, H float64
}

func (v StaticViewport) Width() float64  { return v.W }
func (v StaticViewport) Height() float64 { return v.H }

// Axis identifies a collision axis
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Edge identifies which viewport edge was hit
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// BounceEvent reports one edge hit in one tick
type BounceEvent struct {
	Axis Axis
	Edge Edge
	// VelocityMagnitude is the axis speed before damping
	VelocityMagnitude float64
}

// Rect is an axis-aligned box in viewport pixels
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the box, edges included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Empty reports whether the box has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
