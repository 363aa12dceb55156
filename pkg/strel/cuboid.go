package strel

// CuboidStrel is an axis-aligned rectangular 3D structuring element. It is
// fully separable: its dilation or erosion is the ordered composition of
// one linear pass per axis, so large cuboids still filter in time linear in
// the voxel count.
type CuboidStrel struct {
	// passes holds the per-axis linear elements, in x, y, z order.
	passes [3]*LinearStrel
}

// NewCuboid creates a cuboid element of the given side lengths, with the
// origin at floor((side-1)/2) along each axis.
func NewCuboid(sizeX, sizeY, sizeZ int) (*CuboidStrel, error) {
	px, err := LinearFromDiameter(AxisX, sizeX)
	if err != nil {
		return nil, err
	}
	py, err := LinearFromDiameter(AxisY, sizeY)
	if err != nil {
		return nil, err
	}
	pz, err := LinearFromDiameter(AxisZ, sizeZ)
	if err != nil {
		return nil, err
	}
	return &CuboidStrel{passes: [3]*LinearStrel{px, py, pz}}, nil
}

// CuboidFromRadii creates a symmetric cuboid of side 2*r+1 per axis.
func CuboidFromRadii(radiusX, radiusY, radiusZ int) (*CuboidStrel, error) {
	if radiusX < 0 || radiusY < 0 || radiusZ < 0 {
		return nil, ErrInvalidRadius
	}
	return NewCuboid(2*radiusX+1, 2*radiusY+1, 2*radiusZ+1)
}

// NewCube creates a cubic element with the given side length.
func NewCube(side int) (*CuboidStrel, error) {
	return NewCuboid(side, side, side)
}

// CubeFromRadius creates a symmetric cube of side 2*radius+1.
func CubeFromRadius(radius int) (*CuboidStrel, error) {
	return CuboidFromRadii(radius, radius, radius)
}

// Decompose returns the ordered linear passes of the cuboid, one per axis.
// Max and min composition is associative and commutative across axes, so
// the order only affects discarded intermediate values, not the result.
func (s *CuboidStrel) Decompose() []*LinearStrel {
	return []*LinearStrel{s.passes[0], s.passes[1], s.passes[2]}
}

// Size returns the side lengths of the cuboid along x, y and z.
func (s *CuboidStrel) Size() [3]int {
	var size [3]int
	for i, p := range s.passes {
		size[i] = p.length
	}
	return size
}

// Offset returns the origin position within the bounding box.
func (s *CuboidStrel) Offset() [3]int {
	var offset [3]int
	for i, p := range s.passes {
		offset[i] = p.offset
	}
	return offset
}

// Shifts enumerates the shift vectors of every voxel of the cuboid
// relative to its origin.
func (s *CuboidStrel) Shifts() [][3]int {
	size := s.Size()
	offset := s.Offset()
	shifts := make([][3]int, 0, size[0]*size[1]*size[2])
	for z := 0; z < size[2]; z++ {
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				shifts = append(shifts, [3]int{x - offset[0], y - offset[1], z - offset[2]})
			}
		}
	}
	return shifts
}

// Mask returns the binary mask of the cuboid, indexed [z][y][x]. Every
// voxel of the bounding box belongs to the element.
func (s *CuboidStrel) Mask() [][][]uint8 {
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

// Reverse returns the point reflection of the cuboid through its origin,
// reversing each linear pass.
func (s *CuboidStrel) Reverse() Strel3D {
	return &CuboidStrel{passes: [3]*LinearStrel{
		s.passes[0].reversed(),
		s.passes[1].reversed(),
		s.passes[2].reversed(),
	}}
}
