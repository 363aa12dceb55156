package morphology

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/diderotnet/morpho3d/pkg/strel"
	"github.com/diderotnet/morpho3d/pkg/voxel"
)

// Dilation returns the grayscale dilation of a volume by a structuring
// element: every voxel is replaced by the maximum over the element
// footprint centered at that voxel, as if the volume were padded with the
// background value beyond its bounds.
//
// Separable elements run as one in-place linear pass per axis on a single
// working copy; passes across axes are strictly sequential because each
// pass reads the output of the previous one. Other elements use the
// brute-force neighborhood scan.
func Dilation(vol *voxel.Volume, se strel.Strel3D, opts *strel.FilterOptions) *voxel.Volume {
	switch e := se.(type) {
	case strel.SeparableStrel3D:
		res := vol.Clone()
		for _, pass := range e.Decompose() {
			pass.InPlaceDilation(res, opts)
		}
		return res
	case strel.InPlaceStrel3D:
		res := vol.Clone()
		e.InPlaceDilation(res, opts)
		return res
	}
	return bruteForce(vol, se, opts, true)
}

// Erosion returns the grayscale erosion of a volume by a structuring
// element: every voxel is replaced by the minimum over the element
// footprint, padding with the foreground value beyond the bounds.
func Erosion(vol *voxel.Volume, se strel.Strel3D, opts *strel.FilterOptions) *voxel.Volume {
	switch e := se.(type) {
	case strel.SeparableStrel3D:
		res := vol.Clone()
		for _, pass := range e.Decompose() {
			pass.InPlaceErosion(res, opts)
		}
		return res
	case strel.InPlaceStrel3D:
		res := vol.Clone()
		e.InPlaceErosion(res, opts)
		return res
	}
	return bruteForce(vol, se, opts, false)
}

// Opening returns the morphological opening: an erosion followed by a
// dilation with the reversed element. Reversal matters when the element
// origin is off-center; reusing the non-reversed element would shift the
// result by the element's asymmetry.
func Opening(vol *voxel.Volume, se strel.Strel3D, opts *strel.FilterOptions) *voxel.Volume {
	return Dilation(Erosion(vol, se, opts), se.Reverse(), opts)
}

// Closing returns the morphological closing: a dilation followed by an
// erosion with the reversed element.
func Closing(vol *voxel.Volume, se strel.Strel3D, opts *strel.FilterOptions) *voxel.Volume {
	return Erosion(Dilation(vol, se, opts), se.Reverse(), opts)
}

// bruteForce computes dilation or erosion by explicit neighborhood scan
// over the element's shift vectors. It is the fallback for elements with
// no separable decomposition and the reference the fast path is checked
// against. Cost is O(voxel count x element size).
func bruteForce(vol *voxel.Volume, se strel.Strel3D, opts *strel.FilterOptions, maximum bool) *voxel.Volume {
	padding := strel.Background
	workers := 1
	var progress strel.ProgressFunc
	if opts != nil {
		if maximum {
			padding = opts.Background
		} else {
			padding = opts.Foreground
		}
		if opts.Workers > 1 {
			workers = opts.Workers
		}
		progress = opts.Progress
	} else if !maximum {
		padding = strel.Foreground
	}

	shifts := se.Shifts()
	out := vol.Clone()

	var done int64
	planes := func(zStart, zEnd int) {
		for z := zStart; z < zEnd; z++ {
			for y := 0; y < vol.Height; y++ {
				for x := 0; x < vol.Width; x++ {
					var acc float64
					if maximum {
						acc = math.Inf(-1)
					} else {
						acc = math.Inf(1)
					}
					for _, d := range shifts {
						xx, yy, zz := x+d[0], y+d[1], z+d[2]
						v := padding
						if xx >= 0 && xx < vol.Width && yy >= 0 && yy < vol.Height && zz >= 0 && zz < vol.Depth {
							v = vol.Get(xx, yy, zz)
						}
						if maximum {
							if v > acc {
								acc = v
							}
						} else if v < acc {
							acc = v
						}
					}
					out.Set(x, y, z, acc)
				}
			}
			if progress != nil {
				progress(int(atomic.AddInt64(&done, 1)), vol.Depth)
			}
		}
	}

	if workers == 1 || vol.Depth == 1 {
		planes(0, vol.Depth)
		return out
	}

	var wg sync.WaitGroup
	chunk := (vol.Depth + workers - 1) / workers
	for c := 0; c < workers; c++ {
		start := c * chunk
		end := start + chunk
		if end > vol.Depth {
			end = vol.Depth
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			planes(start, end)
		}(start, end)
	}
	wg.Wait()
	return out
}
