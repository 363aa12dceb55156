package voxel

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/png"
)

// LoadSliceDirectory loads a stack of 2D grayscale slice images from a
// directory into a single volume. The function performs the following steps:
//  1. Reads all files from the input directory.
//  2. Filters for JPEG and PNG image files containing the slice data.
//  3. Sorts the files by the numeric part of their filenames so slice k of
//     the stack becomes plane z=k of the volume.
//  4. Decodes each slice and stores its luminance as intensities in [0, 255].
//
// All slices must share the dimensions of the first one.
func LoadSliceDirectory(inputDir string) (*Volume, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			imageFiles = append(imageFiles, entry.Name())
		}
	}
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no slice images found in %s", inputDir)
	}

	// Sort slices by the number embedded in the filename so the anatomical
	// order of the stack is preserved.
	sort.Slice(imageFiles, func(i, j int) bool {
		return extractNumber(imageFiles[i]) < extractNumber(imageFiles[j])
	})

	var vol *Volume
	for z, filename := range imageFiles {
		img, err := loadImage(filepath.Join(inputDir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load slice %s: %w", filename, err)
		}

		bounds := img.Bounds()
		if vol == nil {
			vol, err = New(bounds.Dx(), bounds.Dy(), len(imageFiles))
			if err != nil {
				return nil, err
			}
		} else if bounds.Dx() != vol.Width || bounds.Dy() != vol.Height {
			return nil, fmt.Errorf("slice %s has dimensions %dx%d, expected %dx%d",
				filename, bounds.Dx(), bounds.Dy(), vol.Width, vol.Height)
		}

		for y := 0; y < vol.Height; y++ {
			for x := 0; x < vol.Width; x++ {
				g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
				vol.Set(x, y, z, float64(g.Y))
			}
		}
	}

	return vol, nil
}

// ExtractSlice extracts a 2D grayscale slice from the volume along the
// specified axis ("x", "y" or "z") at the given position. Intensities are
// clamped to [0, 255] on the way out.
func (v *Volume) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative, got %d", position)
	}

	var img *image.Gray

	switch strings.ToLower(axis) {
	case "x":
		// Slice along the YZ plane.
		if position >= v.Width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.Width)
		}
		img = image.NewGray(image.Rect(0, 0, v.Depth, v.Height))
		for y := 0; y < v.Height; y++ {
			for z := 0; z < v.Depth; z++ {
				img.SetGray(z, y, color.Gray{Y: clampByte(v.Get(position, y, z))})
			}
		}

	case "y":
		// Slice along the XZ plane.
		if position >= v.Height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.Height)
		}
		img = image.NewGray(image.Rect(0, 0, v.Width, v.Depth))
		for z := 0; z < v.Depth; z++ {
			for x := 0; x < v.Width; x++ {
				img.SetGray(x, z, color.Gray{Y: clampByte(v.Get(x, position, z))})
			}
		}

	case "z":
		// Slice along the XY plane.
		if position >= v.Depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.Depth)
		}
		img = image.NewGray(image.Rect(0, 0, v.Width, v.Height))
		for y := 0; y < v.Height; y++ {
			for x := 0; x < v.Width; x++ {
				img.SetGray(x, y, color.Gray{Y: clampByte(v.Get(x, y, position))})
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// SaveSliceSequence extracts and saves every slice of the volume along the
// specified axis as numbered JPEG files in outputDir.
func (v *Volume) SaveSliceSequence(axis, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var maxPos int
	switch strings.ToLower(axis) {
	case "x":
		maxPos = v.Width
	case "y":
		maxPos = v.Height
	case "z":
		maxPos = v.Depth
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}
		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", strings.ToLower(axis), pos))
		if err := saveJPEG(img, filename); err != nil {
			return fmt.Errorf("failed to save slice %d: %w", pos, err)
		}
	}

	return nil
}

// loadImage opens and decodes a single slice image.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

// saveJPEG writes an image to disk as a JPEG file.
func saveJPEG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// extractNumber extracts the numeric part of a filename, so that slice
// stacks named slice_1.jpg .. slice_12.jpg sort in anatomical order.
func extractNumber(filename string) int {
	numStr := ""
	for _, c := range filepath.Base(filename) {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}
	if numStr == "" {
		return 0
	}
	n := 0
	for _, c := range numStr {
		n = n*10 + int(c-'0')
	}
	return n
}

func clampByte(value float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(value))))
}
