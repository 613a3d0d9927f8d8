// Package segmentation orchestrates the watershed supervoxel pipeline:
// seed generation on the full boundary volume, the optional border-crop /
// re-seed / flood / uncrop cycle, and compositing the result into the final
// supervoxel volume.
//
// The pipeline is a synchronous, single-threaded computation. Peak memory is
// a small constant multiple of one volume's footprint: the boundary volume,
// a seed volume, and (with a border configured) the cropped pair plus the
// full-size output are held simultaneously, roughly 3-4x one volume.
package segmentation

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"watershed3d/internal/models"
	"watershed3d/pkg/watershed"
)

// ErrMarginTooLarge is returned when the border size leaves no interior
// voxels on at least one axis after cropping.
var ErrMarginTooLarge = errors.New("border size too large for volume shape")

// ErrInvalidBorder is returned for a negative border size.
var ErrInvalidBorder = errors.New("border size must be non-negative")

// Params holds the segmentation parameters consumed by the pipeline. It is a
// plain options record; flag parsing and config-file handling live with the
// caller.
type Params struct {
	// SeedVal is the boundary-probability threshold for seed generation.
	SeedVal float64

	// SeedSize is the minimum seed component size in voxels. Zero disables
	// small-seed removal.
	SeedSize int

	// BorderSize is the margin stripped from every face before watershed and
	// left unlabeled (0) in the final output. Zero disables the border cycle.
	BorderSize int

	// Logger receives stage progress. Nil means silent.
	Logger *log.Logger
}

// Segmenter runs the watershed pipeline over one boundary volume. It keeps
// the diagnostics of the most recent run.
type Segmenter struct {
	params *Params
	logger *log.Logger
	diag   Diagnostics
}

// NewSegmenter creates a segmenter for the given parameters.
func NewSegmenter(params *Params) *Segmenter {
	logger := params.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Segmenter{params: params, logger: logger}
}

// Process turns a boundary volume into a supervoxel volume.
//
// Seeds are always generated on the full volume first. With a zero border the
// watershed runs directly on that boundary/seed pair. With a positive border
// the boundary is cropped by BorderSize voxels on every face and seeds are
// generated AGAIN on the cropped boundary: cropping changes which low-
// boundary voxels are connected, so slicing the full seed volume would
// produce different components than thresholding the crop. The cropped
// watershed result is then embedded into a zero-initialized full-size volume
// at offset BorderSize, leaving the margin unlabeled.
//
// Parameter problems (negative border, border leaving no interior) are
// reported before any flooding starts; no partially labeled volume is ever
// returned.
func (s *Segmenter) Process(boundary *models.Volume) (*models.LabelVolume, error) {
	if err := s.validate(boundary); err != nil {
		return nil, err
	}
	s.diag = Diagnostics{}

	s.logger.Debug("generating seeds", "seedVal", s.params.SeedVal, "seedSize", s.params.SeedSize)
	seeds := watershed.GenerateSeeds(boundary, s.seedParams())
	s.diag.SeedCount = countLabels(seeds)
	s.logger.Info("generated seeds", "components", s.diag.SeedCount)

	if s.params.BorderSize == 0 {
		result, err := watershed.Flood(boundary, seeds)
		if err != nil {
			return nil, fmt.Errorf("watershed on full volume: %w", err)
		}
		s.finish(result)
		return result, nil
	}

	margin := s.params.BorderSize
	cropped := boundary.Crop(margin)
	s.logger.Debug("cropped boundary volume",
		"margin", margin, "shape", fmt.Sprintf("(%d,%d,%d)", cropped.NZ, cropped.NX, cropped.NY))

	// Re-seed on the cropped boundary rather than cropping the full seed
	// volume: connectivity through the stripped margin is gone, so the
	// components must be recomputed.
	croppedSeeds := watershed.GenerateSeeds(cropped, s.seedParams())
	s.diag.CroppedSeedCount = countLabels(croppedSeeds)
	s.logger.Info("re-seeded cropped volume", "components", s.diag.CroppedSeedCount)

	croppedResult, err := watershed.Flood(cropped, croppedSeeds)
	if err != nil {
		return nil, fmt.Errorf("watershed on cropped volume: %w", err)
	}

	result := models.NewLabelVolume(boundary.NZ, boundary.NX, boundary.NY)
	result.Embed(croppedResult, margin)
	s.finish(result)
	return result, nil
}

// Diagnostics returns the statistics collected during the most recent
// Process call.
func (s *Segmenter) Diagnostics() Diagnostics {
	return s.diag
}

func (s *Segmenter) seedParams() watershed.SeedParams {
	return watershed.SeedParams{
		SeedVal:  s.params.SeedVal,
		SeedSize: s.params.SeedSize,
	}
}

// validate performs the eager parameter and shape checks for a run.
func (s *Segmenter) validate(boundary *models.Volume) error {
	if s.params.BorderSize < 0 {
		return fmt.Errorf("segmentation: %w: got %d", ErrInvalidBorder, s.params.BorderSize)
	}
	m := s.params.BorderSize
	if 2*m >= boundary.NZ || 2*m >= boundary.NX || 2*m >= boundary.NY {
		return fmt.Errorf("segmentation: %w: border %d on volume (%d,%d,%d)",
			ErrMarginTooLarge, m, boundary.NZ, boundary.NX, boundary.NY)
	}
	return nil
}

// finish records the output-side diagnostics for a completed run.
func (s *Segmenter) finish(result *models.LabelVolume) {
	s.diag.measure(result)
	s.logger.Info("watershed finished",
		"supervoxels", s.diag.SupervoxelCount,
		"labeledFraction", fmt.Sprintf("%.4f", s.diag.LabeledFraction))
}
