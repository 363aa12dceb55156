package strel

import (
	"sync"
	"sync/atomic"

	"github.com/diderotnet/morpho3d/pkg/voxel"
)

// LinearStrel is a 1D structuring element of a given length, oriented along
// one of the three principal axes, with its origin at a configurable offset
// within the segment. It is immutable once constructed.
//
// A LinearStrel filters a volume in place: every scan line parallel to the
// element axis is swept once with a sliding-window extremum buffer, reading
// ahead of the write position by the distance between the origin and the
// far end of the element. The whole pass costs O(voxel count) regardless of
// the element length.
type LinearStrel struct {
	axis Axis

	// length is the number of samples in the element along its axis.
	length int

	// offset is the position of the origin within the segment, the number
	// of samples before the reference sample. 0 <= offset < length.
	offset int
}

// NewLinear creates a linear structuring element of the given length and
// origin offset along the given axis. It returns ErrInvalidLength,
// ErrNegativeOffset or ErrOffsetOutOfRange when the invariants
// length >= 1 and 0 <= offset < length are violated.
func NewLinear(axis Axis, length, offset int) (*LinearStrel, error) {
	if length < 1 {
		return nil, ErrInvalidLength
	}
	if offset < 0 {
		return nil, ErrNegativeOffset
	}
	if offset >= length {
		return nil, ErrOffsetOutOfRange
	}
	return &LinearStrel{axis: axis, length: length, offset: offset}, nil
}

// LinearFromDiameter creates a linear element with the given total length
// and the origin at floor((length-1)/2).
func LinearFromDiameter(axis Axis, diameter int) (*LinearStrel, error) {
	if diameter < 1 {
		return nil, ErrInvalidLength
	}
	return NewLinear(axis, diameter, (diameter-1)/2)
}

// LinearFromRadius creates a symmetric linear element of length 2*radius+1
// with the origin at its center.
func LinearFromRadius(axis Axis, radius int) (*LinearStrel, error) {
	if radius < 0 {
		return nil, ErrInvalidRadius
	}
	return NewLinear(axis, 2*radius+1, radius)
}

// Axis returns the principal axis the element is oriented along.
func (s *LinearStrel) Axis() Axis {
	return s.axis
}

// Length returns the number of samples in the element.
func (s *LinearStrel) Length() int {
	return s.length
}

// Size returns the bounding size of the element along x, y and z.
func (s *LinearStrel) Size() [3]int {
	var size [3]int
	for i := range size {
		size[i] = 1
	}
	size[int(s.axis)] = s.length
	return size
}

// Offset returns the origin position within the bounding box.
func (s *LinearStrel) Offset() [3]int {
	var offset [3]int
	offset[int(s.axis)] = s.offset
	return offset
}

// Shifts enumerates the shift vectors, relative to the origin, of the
// samples covered by the element.
func (s *LinearStrel) Shifts() [][3]int {
	shifts := make([][3]int, s.length)
	for i := 0; i < s.length; i++ {
		shifts[i][int(s.axis)] = i - s.offset
	}
	return shifts
}

// Mask returns the binary mask of the element, indexed [z][y][x].
func (s *LinearStrel) Mask() [][][]uint8 {
	size := s.Size()
	mask := make([][][]uint8, size[2])
	for z := range mask {
		mask[z] = make([][]uint8, size[1])
		for y := range mask[z] {
			mask[z][y] = make([]uint8, size[0])
			for x := range mask[z][y] {
				mask[z][y][x] = 255
			}
		}
	}
	return mask
}

// Reverse returns the point reflection of the element through its origin:
// same axis and length, offset length-offset-1.
func (s *LinearStrel) Reverse() Strel3D {
	return s.reversed()
}

func (s *LinearStrel) reversed() *LinearStrel {
	return &LinearStrel{axis: s.axis, length: s.length, offset: s.length - s.offset - 1}
}

// Decompose returns the element itself as its only linear pass.
func (s *LinearStrel) Decompose() []*LinearStrel {
	return []*LinearStrel{s}
}

// lineGeometry describes how scan lines map onto grid coordinates for one
// axis orientation: n samples per line, inner*outer lines, with coord
// mapping (outer row, inner index, position along the axis) to (x, y, z).
type lineGeometry struct {
	n     int
	inner int
	outer int
	coord func(o, i, k int) (x, y, z int)
}

func (s *LinearStrel) lineGeometry(grid voxel.Grid) lineGeometry {
	width, height, depth := grid.Dims()
	switch s.axis {
	case AxisX:
		return lineGeometry{n: width, inner: height, outer: depth,
			coord: func(o, i, k int) (int, int, int) { return k, i, o }}
	case AxisY:
		return lineGeometry{n: height, inner: width, outer: depth,
			coord: func(o, i, k int) (int, int, int) { return i, k, o }}
	default:
		return lineGeometry{n: depth, inner: width, outer: height,
			coord: func(o, i, k int) (int, int, int) { return i, o, k }}
	}
}

// InPlaceDilation replaces every voxel with the maximum of the length
// samples the element footprint covers when centered at that voxel, as if
// the volume were padded with the background value beyond its bounds. The
// result is numerically identical to an explicit neighborhood maximum; only
// the computational strategy differs.
func (s *LinearStrel) InPlaceDilation(grid voxel.Grid, opts *FilterOptions) {
	// A length-1 element is the identity.
	if s.length <= 1 {
		return
	}
	cfg := opts.normalized()
	geo := s.lineGeometry(grid)
	if geo.n == 1 {
		// Single sample per line: the footprint is that sample plus
		// padding on either side.
		s.clampPlane(grid, geo, cfg.Background, true)
		return
	}
	runPass(geo.outer, cfg, func(oStart, oEnd int, rowDone func()) {
		s.dilateRows(grid, geo, cfg.Background, oStart, oEnd, rowDone)
	})
}

// InPlaceErosion is the erosion counterpart of InPlaceDilation, padding
// with the foreground value and tracking the minimum.
func (s *LinearStrel) InPlaceErosion(grid voxel.Grid, opts *FilterOptions) {
	if s.length <= 1 {
		return
	}
	cfg := opts.normalized()
	geo := s.lineGeometry(grid)
	if geo.n == 1 {
		s.clampPlane(grid, geo, cfg.Foreground, false)
		return
	}
	runPass(geo.outer, cfg, func(oStart, oEnd int, rowDone func()) {
		s.erodeRows(grid, geo, cfg.Foreground, oStart, oEnd, rowDone)
	})
}

// dilateRows sweeps the scan lines of outer rows [oStart, oEnd) with a
// sliding-window maximum. Per line, where shift = length-offset-1:
// seed the window with background, warm up with the shift samples of the
// padding-extended line that lead the first output position, then couple
// "read ahead, write behind" while the far end of the element stays inside
// the line, and finally push background while the element slides off the
// valid data.
func (s *LinearStrel) dilateRows(grid voxel.Grid, geo lineGeometry, background float64, oStart, oEnd int, rowDone func()) {
	shift := s.length - s.offset - 1
	warm := shift
	if warm > geo.n {
		warm = geo.n
	}
	tail := geo.n - shift
	if tail < 0 {
		tail = 0
	}

	buf := NewLocalMaxBuffer(s.length)
	for o := oStart; o < oEnd; o++ {
		for i := 0; i < geo.inner; i++ {
			buf.Fill(background)
			for k := 0; k < warm; k++ {
				x, y, z := geo.coord(o, i, k)
				buf.Add(grid.Get(x, y, z))
			}
			// When the element reaches past the end of the line, the rest
			// of the warm-up reads padding; keeping those pushes keeps the
			// window aligned with the padding-extended line.
			for k := geo.n; k < shift; k++ {
				buf.Add(background)
			}
			for k := 0; k+shift < geo.n; k++ {
				x, y, z := geo.coord(o, i, k+shift)
				buf.Add(grid.Get(x, y, z))
				x, y, z = geo.coord(o, i, k)
				grid.Set(x, y, z, buf.Max())
			}
			for k := tail; k < geo.n; k++ {
				buf.Add(background)
				x, y, z := geo.coord(o, i, k)
				grid.Set(x, y, z, buf.Max())
			}
		}
		rowDone()
	}
}

// erodeRows is the minimum-tracking counterpart of dilateRows.
func (s *LinearStrel) erodeRows(grid voxel.Grid, geo lineGeometry, foreground float64, oStart, oEnd int, rowDone func()) {
	shift := s.length - s.offset - 1
	warm := shift
	if warm > geo.n {
		warm = geo.n
	}
	tail := geo.n - shift
	if tail < 0 {
		tail = 0
	}

	buf := NewLocalMinBuffer(s.length)
	for o := oStart; o < oEnd; o++ {
		for i := 0; i < geo.inner; i++ {
			buf.Fill(foreground)
			for k := 0; k < warm; k++ {
				x, y, z := geo.coord(o, i, k)
				buf.Add(grid.Get(x, y, z))
			}
			for k := geo.n; k < shift; k++ {
				buf.Add(foreground)
			}
			for k := 0; k+shift < geo.n; k++ {
				x, y, z := geo.coord(o, i, k+shift)
				buf.Add(grid.Get(x, y, z))
				x, y, z = geo.coord(o, i, k)
				grid.Set(x, y, z, buf.Min())
			}
			for k := tail; k < geo.n; k++ {
				buf.Add(foreground)
				x, y, z := geo.coord(o, i, k)
				grid.Set(x, y, z, buf.Min())
			}
		}
		rowDone()
	}
}

// clampPlane handles lines of length 1: with element length > 1 the
// footprint always covers the single sample plus padding, so each voxel
// becomes max(v, padding) for dilation or min(v, padding) for erosion,
// without allocating a window buffer.
func (s *LinearStrel) clampPlane(grid voxel.Grid, geo lineGeometry, padding float64, maximum bool) {
	for o := 0; o < geo.outer; o++ {
		for i := 0; i < geo.inner; i++ {
			x, y, z := geo.coord(o, i, 0)
			v := grid.Get(x, y, z)
			if maximum {
				if padding > v {
					grid.Set(x, y, z, padding)
				}
			} else {
				if padding < v {
					grid.Set(x, y, z, padding)
				}
			}
		}
	}
}

// runPass distributes the outer rows of a filter pass across the configured
// number of workers, giving each worker its own contiguous chunk, and
// blocks until every line is processed. Lines never overlap in the voxels
// they write, so the only synchronization is the final barrier.
func runPass(outer int, cfg FilterOptions, rows func(oStart, oEnd int, rowDone func())) {
	var done int64
	rowDone := func() {}
	if cfg.Progress != nil {
		rowDone = func() {
			cfg.Progress(int(atomic.AddInt64(&done, 1)), outer)
		}
	}

	if cfg.Workers == 1 || outer == 1 {
		rows(0, outer, rowDone)
		return
	}

	var wg sync.WaitGroup
	chunk := (outer + cfg.Workers - 1) / cfg.Workers
	for c := 0; c < cfg.Workers; c++ {
		start := c * chunk
		end := start + chunk
		if end > outer {
			end = outer
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			rows(start, end, rowDone)
		}(start, end)
	}
	wg.Wait()
}
