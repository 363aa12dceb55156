package morphology_test

import (
	"fmt"

	"github.com/diderotnet/morpho3d/pkg/morphology"
	"github.com/diderotnet/morpho3d/pkg/strel"
	"github.com/diderotnet/morpho3d/pkg/voxel"
)

// Dilating a single-line volume with a symmetric length-3 element spreads
// the bright peak to its neighbors.
func ExampleDilation() {
	vol, _ := voxel.New(1, 1, 7)
	for z, v := range []float64{1, 2, 3, 9, 3, 2, 1} {
		vol.Set(0, 0, z, v)
	}

	se, _ := strel.LinearFromRadius(strel.AxisZ, 1)
	res := morphology.Dilation(vol, se, nil)

	for z := 0; z < res.Depth; z++ {
		fmt.Printf("%.0f ", res.Get(0, 0, z))
	}
	fmt.Println()
	// Output: 2 3 9 9 9 3 2
}

// Opening removes bright features smaller than the element while never
// raising any voxel above its original intensity.
func ExampleOpening() {
	vol, _ := voxel.New(1, 1, 7)
	vol.Set(0, 0, 3, 200) // a one-voxel bright speck

	se, _ := strel.LinearFromRadius(strel.AxisZ, 1)
	res := morphology.Opening(vol, se, nil)

	for z := 0; z < res.Depth; z++ {
		fmt.Printf("%.0f ", res.Get(0, 0, z))
	}
	fmt.Println()
	// Output: 0 0 0 0 0 0 0
}
