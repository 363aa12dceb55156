package strel

import "strings"

// Shape names a structuring element family that can be instantiated from
// per-axis radii. Only separable shapes are provided; non-separable
// families would be handled by the brute-force path and are out of scope.
type Shape string

const (
	// ShapeCube is a cube whose side is 2*max(radii)+1.
	ShapeCube Shape = "cube"

	// ShapeBox is a cuboid with independent per-axis radii.
	ShapeBox Shape = "box"

	// ShapeLineX, ShapeLineY and ShapeLineZ are linear elements along one
	// principal axis, using the radius for that axis.
	ShapeLineX Shape = "line-x"
	ShapeLineY Shape = "line-y"
	ShapeLineZ Shape = "line-z"
)

// Shapes lists the shape labels understood by FromRadii, for building
// user-facing choices.
func Shapes() []Shape {
	return []Shape{ShapeCube, ShapeBox, ShapeLineX, ShapeLineY, ShapeLineZ}
}

// ParseShape maps a user-facing shape label to a Shape. It returns
// ErrUnknownShape for labels it does not know.
func ParseShape(label string) (Shape, error) {
	s := Shape(strings.ToLower(strings.TrimSpace(label)))
	for _, known := range Shapes() {
		if s == known {
			return s, nil
		}
	}
	return "", ErrUnknownShape
}

// FromRadii instantiates the named shape from per-axis radii. Every
// returned element is separable and satisfies the linear element
// invariants. A cube uses the largest of the three radii.
func (s Shape) FromRadii(radiusX, radiusY, radiusZ int) (SeparableStrel3D, error) {
	if radiusX < 0 || radiusY < 0 || radiusZ < 0 {
		return nil, ErrInvalidRadius
	}
	switch s {
	case ShapeCube:
		r := radiusX
		if radiusY > r {
			r = radiusY
		}
		if radiusZ > r {
			r = radiusZ
		}
		return CubeFromRadius(r)
	case ShapeBox:
		return CuboidFromRadii(radiusX, radiusY, radiusZ)
	case ShapeLineX:
		return LinearFromRadius(AxisX, radiusX)
	case ShapeLineY:
		return LinearFromRadius(AxisY, radiusY)
	case ShapeLineZ:
		return LinearFromRadius(AxisZ, radiusZ)
	}
	return nil, ErrUnknownShape
}
