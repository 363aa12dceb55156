package strel_test

import (
	"math/rand"
	"testing"

	"github.com/diderotnet/morpho3d/pkg/strel"
	"github.com/diderotnet/morpho3d/pkg/voxel"
)

func benchVolume(b *testing.B, side int) *voxel.Volume {
	b.Helper()
	vol, err := voxel.New(side, side, side)
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(42))
	for i := range vol.Data {
		vol.Data[i] = float64(rng.Intn(256))
	}
	return vol
}

// The sliding-window pass should cost roughly the same per voxel whatever
// the element length; compare the length variants to see it.
func BenchmarkInPlaceDilation(b *testing.B) {
	for _, length := range []int{3, 15, 51} {
		b.Run(map[int]string{3: "length3", 15: "length15", 51: "length51"}[length], func(b *testing.B) {
			s, err := strel.LinearFromDiameter(strel.AxisZ, length)
			if err != nil {
				b.Fatal(err)
			}
			vol := benchVolume(b, 64)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.InPlaceDilation(vol, nil)
			}
		})
	}
}

func BenchmarkInPlaceDilationWorkers(b *testing.B) {
	s, err := strel.LinearFromRadius(strel.AxisZ, 7)
	if err != nil {
		b.Fatal(err)
	}
	for _, workers := range []int{1, 4} {
		name := "workers1"
		if workers == 4 {
			name = "workers4"
		}
		b.Run(name, func(b *testing.B) {
			vol := benchVolume(b, 64)
			opts := strel.DefaultFilterOptions()
			opts.Workers = workers
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.InPlaceDilation(vol, &opts)
			}
		})
	}
}

func BenchmarkLocalMaxBuffer(b *testing.B) {
	buf := strel.NewLocalMaxBuffer(31)
	buf.Fill(0)
	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 4096)
	for i := range values {
		values[i] = float64(rng.Intn(256))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Add(values[i%len(values)])
	}
}
