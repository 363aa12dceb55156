// Package strel implements 3D structuring elements for grayscale
// mathematical morphology, taking advantage of the separability of the
// supported shapes: a cuboid decomposes into one linear element per axis,
// and each linear element dilates or erodes a volume in place with a
// sliding-window extremum, in time linear in the voxel count regardless of
// the element size.
package strel

import "github.com/diderotnet/morpho3d/pkg/voxel"

// Default padding intensities for voxels read outside the volume, following
// the 8-bit grayscale convention of the slice loader. Out-of-bounds
// neighbors can never raise a dilation result nor lower an erosion result.
const (
	// Background is the padding value used by dilation.
	Background = 0.0

	// Foreground is the padding value used by erosion.
	Foreground = 255.0
)

// Axis identifies one of the three principal axes of a volume.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lower-case axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// ProgressFunc receives per-line progress during a filter pass: the number
// of scan-line rows completed so far and the total number of rows. When the
// pass runs with more than one worker the callback may be invoked from
// multiple goroutines and must be safe for concurrent use.
type ProgressFunc func(current, total int)

// Strel3D is the geometric contract shared by every structuring element.
// The four views must agree: the mask's set voxels, translated by the
// offset, equal exactly the shift list.
type Strel3D interface {
	// Size returns the bounding size of the element along x, y and z.
	Size() [3]int

	// Offset returns the position of the element origin within its
	// bounding box, along x, y and z.
	Offset() [3]int

	// Shifts enumerates the (dx, dy, dz) shift vectors, relative to the
	// origin, of every voxel covered by the element. Used by the
	// brute-force fallback and for inspection, not by the fast path.
	Shifts() [][3]int

	// Mask returns the binary 3D mask of the element, indexed [z][y][x],
	// with covered voxels set to 255.
	Mask() [][][]uint8

	// Reverse returns the point reflection of the element through its own
	// origin. Required between the two halves of opening and closing when
	// the origin is off-center.
	Reverse() Strel3D
}

// SeparableStrel3D is a structuring element expressible as an ordered
// sequence of linear passes, one per contributing axis. Applying the passes
// in order on the same buffer computes the dilation or erosion of the full
// element.
type SeparableStrel3D interface {
	Strel3D

	// Decompose returns the ordered linear passes of the element.
	// The returned slice is never empty.
	Decompose() []*LinearStrel
}

// InPlaceStrel3D is a structuring element that can dilate or erode a volume
// directly, writing results back into the same buffer. A nil options
// pointer selects DefaultFilterOptions.
type InPlaceStrel3D interface {
	Strel3D

	// InPlaceDilation replaces every voxel with the maximum over the
	// element footprint centered at that voxel, padding with the
	// background value beyond the grid bounds.
	InPlaceDilation(grid voxel.Grid, opts *FilterOptions)

	// InPlaceErosion replaces every voxel with the minimum over the
	// element footprint centered at that voxel, padding with the
	// foreground value beyond the grid bounds.
	InPlaceErosion(grid voxel.Grid, opts *FilterOptions)
}

// FilterOptions configures a single filter pass.
type FilterOptions struct {
	// Background is the padding intensity dilation reads outside the
	// volume. Out-of-bounds neighbors can never raise a dilation result.
	Background float64

	// Foreground is the padding intensity erosion reads outside the
	// volume. Out-of-bounds neighbors can never lower an erosion result.
	Foreground float64

	// Workers is the number of goroutines the scan lines of a pass are
	// distributed over. Lines never overlap in the voxels they write, so
	// no synchronization beyond the end-of-pass barrier is needed.
	// Values below 1 run single-threaded.
	Workers int

	// Progress, when non-nil, receives per-row progress during the pass.
	Progress ProgressFunc
}

// DefaultFilterOptions returns the default pass configuration:
// single-threaded, silent, padding with Background and Foreground.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Background: Background,
		Foreground: Foreground,
		Workers:    1,
	}
}

// normalized resolves a possibly-nil options pointer into a usable value.
func (o *FilterOptions) normalized() FilterOptions {
	if o == nil {
		return DefaultFilterOptions()
	}
	cfg := *o
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}
