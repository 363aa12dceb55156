// Package voxel provides the 3D grayscale volume container used by the
// morphological filtering packages, along with helpers for loading a volume
// from a stack of 2D slice images and saving it back as slice sequences.
package voxel

import (
	"errors"
)

// ErrInvalidDimensions indicates a volume was requested with a non-positive
// width, height, or depth.
var ErrInvalidDimensions = errors.New("voxel: volume dimensions must be positive")

// Grid is the minimal access contract required by the filtering code:
// bounded random access over a 3D grid of grayscale intensities. The engine
// does not depend on any particular memory layout.
//
// Coordinates passed to Get and Set must lie within
// [0, width) x [0, height) x [0, depth); implementations are not required
// to re-validate them per call.
type Grid interface {
	// Dims returns the grid extent along each axis.
	Dims() (width, height, depth int)

	// Get returns the intensity stored at (x, y, z).
	Get(x, y, z int) float64

	// Set stores an intensity at (x, y, z).
	Set(x, y, z int, value float64)
}

// Volume is a dense 3D grayscale volume with intensities stored as float64
// in a 1D array in row-major order (x fastest, then y, then z).
//
// Intensities conventionally lie in [0, 255], matching the 8-bit grayscale
// slices produced by LoadSliceDirectory, but nothing in the container
// enforces a range.
type Volume struct {
	// Data is the volume data as a 1D array in row-major order.
	Data []float64

	// Width, Height and Depth are the volume dimensions in voxels.
	Width, Height, Depth int

	// VoxelSize is the physical size of each voxel in mm, carried along so
	// filtered outputs keep the scale of their inputs.
	VoxelSize struct {
		X, Y, Z float64
	}
}

// New allocates a zero-filled volume with the given dimensions.
func New(width, height, depth int) (*Volume, error) {
	if width < 1 || height < 1 || depth < 1 {
		return nil, ErrInvalidDimensions
	}
	v := &Volume{
		Data:   make([]float64, width*height*depth),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
	v.VoxelSize.X = 1.0
	v.VoxelSize.Y = 1.0
	v.VoxelSize.Z = 1.0
	return v, nil
}

// Dims returns the volume extent along each axis.
func (v *Volume) Dims() (width, height, depth int) {
	return v.Width, v.Height, v.Depth
}

// Index maps (x, y, z) to the row-major position in Data.
func (v *Volume) Index(x, y, z int) int {
	return z*v.Width*v.Height + y*v.Width + x
}

// Get returns the intensity stored at (x, y, z).
func (v *Volume) Get(x, y, z int) float64 {
	return v.Data[z*v.Width*v.Height+y*v.Width+x]
}

// Set stores an intensity at (x, y, z).
func (v *Volume) Set(x, y, z int, value float64) {
	v.Data[z*v.Width*v.Height+y*v.Width+x] = value
}

// Fill sets every voxel to the given intensity.
func (v *Volume) Fill(value float64) {
	for i := range v.Data {
		v.Data[i] = value
	}
}

// Clone returns a deep copy of the volume, including its voxel size.
func (v *Volume) Clone() *Volume {
	out := &Volume{
		Data:      make([]float64, len(v.Data)),
		Width:     v.Width,
		Height:    v.Height,
		Depth:     v.Depth,
		VoxelSize: v.VoxelSize,
	}
	copy(out.Data, v.Data)
	return out
}

// CopyScaleFrom copies the physical voxel size from another volume.
func (v *Volume) CopyScaleFrom(src *Volume) {
	v.VoxelSize = src.VoxelSize
}
