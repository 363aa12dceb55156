package morphology

import (
	"github.com/diderotnet/morpho3d/pkg/strel"
	"github.com/diderotnet/morpho3d/pkg/voxel"
)

// RenderElement materializes a structuring element for inspection by
// dilating a single bright voxel at the center of a volume slightly larger
// than the element's bounding box. The bright region of the result is the
// element's footprint, placed according to its origin offset.
func RenderElement(se strel.Strel3D) *voxel.Volume {
	size := se.Size()
	vol, err := voxel.New(size[0]+10, size[1]+10, size[2]+10)
	if err != nil {
		// Element sizes are at least 1, so the dimensions are always valid.
		panic(err)
	}
	vol.Set(vol.Width/2, vol.Height/2, vol.Depth/2, strel.Foreground)
	return Dilation(vol, se, nil)
}
