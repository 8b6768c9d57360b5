package core

import "fmt"

// Transform is a pure description of one geometric edit. It owns no pixel data.
// The set of implementations is closed: Rotate, Scale, Flip and Translate.
type Transform interface {
	// Name is the registry key of the transform kind.
	Name() string
	String() string
	isTransform()
}

// Rotate turns the image about its centre, clockwise for positive angles.
type Rotate struct {
	AngleDegrees float64
}

// Scale resizes the image; both factors must lie in (0, MaxScaleFactor].
type Scale struct {
	FactorX float64
	FactorY float64
}

// MaxScaleFactor caps each scale factor to keep memory growth bounded.
const MaxScaleFactor = 5.0

// Axis selects the mirror line for Flip.
type Axis int

const (
	// AxisHorizontal mirrors across the horizontal midline (row order reversed).
	AxisHorizontal Axis = iota + 1
	// AxisVertical mirrors across the vertical midline (column order reversed).
	AxisVertical
)

// Valid reports whether a is one of the defined axes.
func (a Axis) Valid() bool {
	return a == AxisHorizontal || a == AxisVertical
}

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Flip mirrors the image.
type Flip struct {
	Axis Axis
}

// Translate shifts the image content by whole pixels.
type Translate struct {
	DX int
	DY int
}

func (Rotate) Name() string    { return "rotate" }
func (Scale) Name() string     { return "scale" }
func (Flip) Name() string      { return "flip" }
func (Translate) Name() string { return "translate" }

func (t Rotate) String() string    { return fmt.Sprintf("rotate %g°", t.AngleDegrees) }
func (t Scale) String() string     { return fmt.Sprintf("scale %gx, %gy", t.FactorX, t.FactorY) }
func (t Flip) String() string      { return fmt.Sprintf("flip %s", t.Axis) }
func (t Translate) String() string { return fmt.Sprintf("translate (%d, %d)", t.DX, t.DY) }

func (Rotate) isTransform()    {}
func (Scale) isTransform()     {}
func (Flip) isTransform()      {}
func (Translate) isTransform() {}
