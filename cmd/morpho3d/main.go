package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/diderotnet/morpho3d/pkg/config"
	"github.com/diderotnet/morpho3d/pkg/metrics"
	"github.com/diderotnet/morpho3d/pkg/morphology"
	"github.com/diderotnet/morpho3d/pkg/strel"
	"github.com/diderotnet/morpho3d/pkg/voxel"
)

func main() {
	inputDir := flag.String("input", "", "Directory containing the grayscale slice stack (JPEG/PNG)")
	outputDir := flag.String("output", "filtered_slices", "Directory to save the filtered slice stack")
	configPath := flag.String("config", "morpho3d.yaml", "Path to the YAML configuration file")
	operation := flag.String("op", "", "Operation: dilation, erosion, opening, or closing")
	shape := flag.String("shape", "", "Element shape: cube, box, line-x, line-y, or line-z")
	radiusX := flag.Int("rx", -1, "Element X radius in voxels")
	radiusY := flag.Int("ry", -1, "Element Y radius in voxels")
	radiusZ := flag.Int("rz", -1, "Element Z radius in voxels")
	workers := flag.Int("workers", 0, "Number of goroutines per filter pass")
	axis := flag.String("axis", "", "Axis of the saved output slices: x, y, or z")
	showElement := flag.Bool("show-element", false, "Also save the structuring element as a slice stack")
	verbose := flag.Bool("verbose", false, "Enable progress logging")
	flag.Parse()

	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Command-line flags override the configuration file when set.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "op":
			cfg.Filter.Operation = *operation
		case "shape":
			cfg.Filter.Shape = *shape
		case "rx":
			cfg.Filter.RadiusX = *radiusX
		case "ry":
			cfg.Filter.RadiusY = *radiusY
		case "rz":
			cfg.Filter.RadiusZ = *radiusZ
		case "workers":
			cfg.Processing.Workers = *workers
		case "axis":
			cfg.Output.Axis = *axis
		case "show-element":
			cfg.Output.ShowElement = *showElement
		case "verbose":
			cfg.Output.Verbose = *verbose
		}
	})

	level := zerolog.InfoLevel
	if cfg.Output.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	op, err := morphology.OperationFromLabel(cfg.Filter.Operation)
	if err != nil {
		log.Fatal().Err(err).Str("operation", cfg.Filter.Operation).Msg("invalid operation")
	}

	shapeName, err := strel.ParseShape(cfg.Filter.Shape)
	if err != nil {
		log.Fatal().Err(err).Str("shape", cfg.Filter.Shape).Msg("invalid element shape")
	}
	element, err := shapeName.FromRadii(cfg.Filter.RadiusX, cfg.Filter.RadiusY, cfg.Filter.RadiusZ)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid element radii")
	}

	log.Info().
		Str("operation", op.String()).
		Str("shape", string(shapeName)).
		Ints("radii", []int{cfg.Filter.RadiusX, cfg.Filter.RadiusY, cfg.Filter.RadiusZ}).
		Msg("loading slice stack")

	vol, err := voxel.LoadSliceDirectory(*inputDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *inputDir).Msg("failed to load slices")
	}
	log.Info().
		Int("width", vol.Width).
		Int("height", vol.Height).
		Int("depth", vol.Depth).
		Msg("volume loaded")

	opts := strel.DefaultFilterOptions()
	opts.Background = cfg.Processing.Background
	opts.Foreground = cfg.Processing.Foreground
	opts.Workers = cfg.Processing.Workers
	if cfg.Output.Verbose {
		opts.Progress = func(current, total int) {
			if current == total || current%64 == 0 {
				log.Debug().Int("row", current).Int("total", total).Msg("filter pass progress")
			}
		}
	}

	start := time.Now()
	result, err := op.Apply(vol, element, &opts)
	if err != nil {
		log.Fatal().Err(err).Msg("filtering failed")
	}
	elapsed := time.Since(start)
	log.Info().
		Str("operation", op.String()).
		Dur("elapsed", elapsed).
		Msg("filtering complete")

	summary, err := metrics.Summarize(vol, result)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to summarize filter effect")
	}
	log.Info().
		Float64("meanBefore", summary.MeanBefore).
		Float64("meanAfter", summary.MeanAfter).
		Float64("stdDevBefore", summary.StdDevBefore).
		Float64("stdDevAfter", summary.StdDevAfter).
		Float64("rmse", summary.RMSE).
		Float64("changedFraction", summary.ChangedFraction).
		Msg("filter effect")

	if err := result.SaveSliceSequence(cfg.Output.Axis, *outputDir); err != nil {
		log.Fatal().Err(err).Str("dir", *outputDir).Msg("failed to save filtered slices")
	}
	log.Info().Str("dir", *outputDir).Str("axis", cfg.Output.Axis).Msg("filtered slices saved")

	if cfg.Output.ShowElement {
		elementDir := filepath.Join(*outputDir, "element")
		if err := morphology.RenderElement(element).SaveSliceSequence("z", elementDir); err != nil {
			log.Warn().Err(err).Msg("failed to save element rendering")
		} else {
			log.Info().Str("dir", elementDir).Msg("structuring element saved")
		}
	}
}
