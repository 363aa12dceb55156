package morphology_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diderotnet/morpho3d/pkg/morphology"
	"github.com/diderotnet/morpho3d/pkg/strel"
	"github.com/diderotnet/morpho3d/pkg/voxel"
)

// maskStrel is a minimal non-separable element defined only by its shift
// list, exercising the brute-force fallback. The footprint is a 3D cross.
type maskStrel struct{}

func (maskStrel) Size() [3]int   { return [3]int{3, 3, 3} }
func (maskStrel) Offset() [3]int { return [3]int{1, 1, 1} }

func (maskStrel) Shifts() [][3]int {
	return [][3]int{
		{0, 0, 0},
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}
}

func (s maskStrel) Mask() [][][]uint8 {
	mask := make([][][]uint8, 3)
	for z := range mask {
		mask[z] = make([][]uint8, 3)
		for y := range mask[z] {
			mask[z][y] = make([]uint8, 3)
		}
	}
	for _, d := range s.Shifts() {
		mask[d[2]+1][d[1]+1][d[0]+1] = 255
	}
	return mask
}

func (s maskStrel) Reverse() strel.Strel3D { return s }

func randomVolume(t *testing.T, rng *rand.Rand, w, h, d int) *voxel.Volume {
	t.Helper()
	vol, err := voxel.New(w, h, d)
	require.NoError(t, err)
	for i := range vol.Data {
		vol.Data[i] = float64(rng.Intn(256))
	}
	return vol
}

// naiveExtremum is the explicit neighborhood reference implementation.
func naiveExtremum(vol *voxel.Volume, se strel.Strel3D, padding float64, maximum bool) *voxel.Volume {
	out := vol.Clone()
	for z := 0; z < vol.Depth; z++ {
		for y := 0; y < vol.Height; y++ {
			for x := 0; x < vol.Width; x++ {
				first := true
				var acc float64
				for _, d := range se.Shifts() {
					xx, yy, zz := x+d[0], y+d[1], z+d[2]
					v := padding
					if xx >= 0 && xx < vol.Width && yy >= 0 && yy < vol.Height && zz >= 0 && zz < vol.Depth {
						v = vol.Get(xx, yy, zz)
					}
					if first || (maximum && v > acc) || (!maximum && v < acc) {
						acc = v
					}
					first = false
				}
				out.Set(x, y, z, acc)
			}
		}
	}
	return out
}

// TestSeparableMatchesBruteForce verifies the composed per-axis passes of a
// cuboid reproduce the explicit 3D neighborhood extremum, including for
// asymmetric elements with off-center origins.
func TestSeparableMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	tests := []struct {
		name                string
		sizeX, sizeY, sizeZ int
	}{
		{"cube 3", 3, 3, 3},
		{"flat box", 5, 3, 1},
		{"asymmetric even", 4, 2, 6},
		{"deep line", 1, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se, err := strel.NewCuboid(tt.sizeX, tt.sizeY, tt.sizeZ)
			require.NoError(t, err)

			vol := randomVolume(t, rng, 7, 6, 8)

			got := morphology.Dilation(vol, se, nil)
			want := naiveExtremum(vol, se, strel.Background, true)
			require.Equal(t, want.Data, got.Data, "dilation")

			got = morphology.Erosion(vol, se, nil)
			want = naiveExtremum(vol, se, strel.Foreground, false)
			require.Equal(t, want.Data, got.Data, "erosion")
		})
	}
}

// TestBruteForceFallback routes a non-separable element through the
// explicit neighborhood scan.
func TestBruteForceFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	vol := randomVolume(t, rng, 5, 5, 5)
	se := maskStrel{}

	got := morphology.Dilation(vol, se, nil)
	want := naiveExtremum(vol, se, strel.Background, true)
	assert.Equal(t, want.Data, got.Data, "dilation")

	got = morphology.Erosion(vol, se, nil)
	want = naiveExtremum(vol, se, strel.Foreground, false)
	assert.Equal(t, want.Data, got.Data, "erosion")

	// Parallel fallback must match as well.
	opts := strel.DefaultFilterOptions()
	opts.Workers = 3
	got = morphology.Dilation(vol, se, &opts)
	want = naiveExtremum(vol, se, strel.Background, true)
	assert.Equal(t, want.Data, got.Data, "parallel dilation")
}

// TestMorphologicalOrdering checks the standard ordering laws on random
// grids: opening never exceeds the original, closing never undercuts it,
// and erosion <= dilation.
func TestMorphologicalOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	elements := []strel.Strel3D{
		mustCuboid(t, 3, 3, 3),
		mustCuboid(t, 4, 2, 5),
		mustLinear(t, strel.AxisZ, 4, 0),
	}
	for _, se := range elements {
		vol := randomVolume(t, rng, 6, 6, 6)

		opened := morphology.Opening(vol, se, nil)
		closed := morphology.Closing(vol, se, nil)
		eroded := morphology.Erosion(vol, se, nil)
		dilated := morphology.Dilation(vol, se, nil)

		for i := range vol.Data {
			require.LessOrEqual(t, opened.Data[i], vol.Data[i], "opening exceeds original at %d", i)
			require.GreaterOrEqual(t, closed.Data[i], vol.Data[i], "closing undercuts original at %d", i)
			require.LessOrEqual(t, eroded.Data[i], dilated.Data[i], "erosion above dilation at %d", i)
		}
	}
}

// TestOpeningIdempotent: applying an opening twice equals applying it once.
func TestOpeningIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	se := mustCuboid(t, 3, 2, 4)
	vol := randomVolume(t, rng, 6, 5, 7)

	once := morphology.Opening(vol, se, nil)
	twice := morphology.Opening(once, se, nil)
	assert.Equal(t, once.Data, twice.Data)
}

// TestDuality: erosion equals the complemented dilation of the
// complemented volume with the same element, over the [0, 255] range.
func TestDuality(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	for _, se := range []strel.Strel3D{
		mustCuboid(t, 3, 3, 3),
		mustLinear(t, strel.AxisY, 5, 1),
	} {
		vol := randomVolume(t, rng, 5, 6, 4)

		inverted := vol.Clone()
		for i := range inverted.Data {
			inverted.Data[i] = 255 - inverted.Data[i]
		}
		dilatedInv := morphology.Dilation(inverted, se, nil)
		for i := range dilatedInv.Data {
			dilatedInv.Data[i] = 255 - dilatedInv.Data[i]
		}

		eroded := morphology.Erosion(vol, se, nil)
		require.Equal(t, eroded.Data, dilatedInv.Data)
	}
}

// TestApplyLeavesInputUntouched: operations return new volumes and never
// mutate or retain the input.
func TestApplyLeavesInputUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	vol := randomVolume(t, rng, 4, 4, 4)
	want := vol.Clone()
	se := mustCuboid(t, 3, 3, 3)

	for _, op := range morphology.Operations() {
		res, err := op.Apply(vol, se, nil)
		require.NoError(t, err)
		require.NotSame(t, vol, res)
		require.Equal(t, want.Data, vol.Data, "%s mutated its input", op)
	}
}

func TestOperationLabels(t *testing.T) {
	for _, op := range morphology.Operations() {
		parsed, err := morphology.OperationFromLabel(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}

	parsed, err := morphology.OperationFromLabel("  ERODE ")
	require.NoError(t, err)
	assert.Equal(t, morphology.OpErosion, parsed)

	_, err = morphology.OperationFromLabel("median")
	assert.ErrorIs(t, err, morphology.ErrUnknownOperation)
}

// TestRenderElement: dilating a single bright voxel paints exactly the
// element footprint, reflected through the origin.
func TestRenderElement(t *testing.T) {
	se := mustLinear(t, strel.AxisZ, 3, 0)
	vol := morphology.RenderElement(se)

	var bright [][3]int
	for z := 0; z < vol.Depth; z++ {
		for y := 0; y < vol.Height; y++ {
			for x := 0; x < vol.Width; x++ {
				if vol.Get(x, y, z) == strel.Foreground {
					bright = append(bright, [3]int{x, y, z})
				}
			}
		}
	}

	// Dilation by the element spreads the point to the reflected shifts.
	cx, cy, cz := vol.Width/2, vol.Height/2, vol.Depth/2
	var want [][3]int
	for _, d := range se.Shifts() {
		want = append(want, [3]int{cx - d[0], cy - d[1], cz - d[2]})
	}
	assert.ElementsMatch(t, want, bright)
}

func mustCuboid(t *testing.T, sx, sy, sz int) *strel.CuboidStrel {
	t.Helper()
	c, err := strel.NewCuboid(sx, sy, sz)
	require.NoError(t, err)
	return c
}

func mustLinear(t *testing.T, axis strel.Axis, length, offset int) *strel.LinearStrel {
	t.Helper()
	s, err := strel.NewLinear(axis, length, offset)
	require.NoError(t, err)
	return s
}
