// Package morphology provides grayscale morphological filtering of 3D
// volumes: dilation, erosion, and the derived opening and closing, driven
// by the structuring elements of pkg/strel.
//
// Separable elements are applied as an ordered sequence of in-place linear
// passes, one per axis, so filtering time is linear in the voxel count
// regardless of the element size. Elements that are neither separable nor
// in-place fall back to an explicit neighborhood scan over their shift
// vectors.
package morphology

import (
	"errors"
	"strings"

	"github.com/diderotnet/morpho3d/pkg/strel"
	"github.com/diderotnet/morpho3d/pkg/voxel"
)

// ErrUnknownOperation indicates an operation label the parser does not know.
var ErrUnknownOperation = errors.New("morphology: unknown operation")

// Operation identifies a morphological filter applied with one structuring
// element. The set is closed.
type Operation int

const (
	// OpDilation replaces each voxel by the maximum over its element
	// neighborhood.
	OpDilation Operation = iota

	// OpErosion replaces each voxel by the minimum over its element
	// neighborhood.
	OpErosion

	// OpOpening is an erosion followed by a dilation with the reversed
	// element; it removes small bright features.
	OpOpening

	// OpClosing is a dilation followed by an erosion with the reversed
	// element; it removes small dark features.
	OpClosing
)

// Operations lists every supported operation, for building user-facing
// choices.
func Operations() []Operation {
	return []Operation{OpDilation, OpErosion, OpOpening, OpClosing}
}

// String returns the user-facing label of the operation.
func (op Operation) String() string {
	switch op {
	case OpDilation:
		return "Dilation"
	case OpErosion:
		return "Erosion"
	case OpOpening:
		return "Opening"
	case OpClosing:
		return "Closing"
	}
	return "Unknown"
}

// OperationFromLabel maps a user-facing label to an Operation,
// case-insensitively. It returns ErrUnknownOperation for labels it does
// not know.
func OperationFromLabel(label string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "dilation", "dilate":
		return OpDilation, nil
	case "erosion", "erode":
		return OpErosion, nil
	case "opening", "open":
		return OpOpening, nil
	case "closing", "close":
		return OpClosing, nil
	}
	return 0, ErrUnknownOperation
}

// Apply runs the operation on a volume with the given structuring element
// and returns the filtered result as a new volume. The input volume is
// never modified or retained.
func (op Operation) Apply(vol *voxel.Volume, se strel.Strel3D, opts *strel.FilterOptions) (*voxel.Volume, error) {
	switch op {
	case OpDilation:
		return Dilation(vol, se, opts), nil
	case OpErosion:
		return Erosion(vol, se, opts), nil
	case OpOpening:
		return Opening(vol, se, opts), nil
	case OpClosing:
		return Closing(vol, se, opts), nil
	}
	return nil, ErrUnknownOperation
}
