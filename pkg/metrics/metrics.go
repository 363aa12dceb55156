// Package metrics summarizes the effect of a morphological filter by
// comparing statistics of the input and output volumes. The summary is
// informational: it helps judge whether an operation behaved as expected
// (erosion lowers the mean, dilation raises it, opening and closing stay
// within the ordering bounds).
package metrics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/diderotnet/morpho3d/pkg/voxel"
)

// ErrDimensionMismatch indicates the two volumes do not share dimensions.
var ErrDimensionMismatch = errors.New("metrics: volumes must have identical dimensions")

// FilterSummary holds before/after statistics of one filter application.
type FilterSummary struct {
	// MeanBefore and MeanAfter are the mean intensities of the input and
	// output volumes.
	MeanBefore, MeanAfter float64

	// StdDevBefore and StdDevAfter are the intensity standard deviations.
	StdDevBefore, StdDevAfter float64

	// MinAfter and MaxAfter are the output intensity extremes.
	MinAfter, MaxAfter float64

	// RMSE is the root mean square difference between input and output.
	RMSE float64

	// ChangedFraction is the fraction of voxels whose intensity changed.
	ChangedFraction float64
}

// Summarize computes the before/after statistics for a filter run.
func Summarize(before, after *voxel.Volume) (*FilterSummary, error) {
	if before.Width != after.Width || before.Height != after.Height || before.Depth != after.Depth {
		return nil, ErrDimensionMismatch
	}

	s := &FilterSummary{
		MeanBefore:   stat.Mean(before.Data, nil),
		MeanAfter:    stat.Mean(after.Data, nil),
		StdDevBefore: stat.StdDev(before.Data, nil),
		StdDevAfter:  stat.StdDev(after.Data, nil),
		MinAfter:     floats.Min(after.Data),
		MaxAfter:     floats.Max(after.Data),
	}

	var sumSq float64
	changed := 0
	for i, v := range before.Data {
		d := after.Data[i] - v
		sumSq += d * d
		if d != 0 {
			changed++
		}
	}
	s.RMSE = math.Sqrt(sumSq / float64(len(before.Data)))
	s.ChangedFraction = float64(changed) / float64(len(before.Data))

	return s, nil
}
