// Package watershed implements seeded watershed segmentation of a 3-D
// boundary-probability volume: seed generation by thresholding and
// connected-component labeling, and a priority-flood fill that grows the
// seeds outward along increasing boundary value.
package watershed

import (
	"watershed3d/internal/models"
	"watershed3d/pkg/morpho"
)

// SeedParams controls seed generation.
type SeedParams struct {
	// SeedVal is the boundary threshold: voxels with boundary probability at
	// or below this value become seed candidates.
	SeedVal float64

	// SeedSize is the minimum voxel count for a seed component. Components
	// smaller than this are discarded. Zero or negative disables the filter.
	SeedSize int
}

// GenerateSeeds builds the initial seed label volume for a boundary volume.
// Voxels with boundary <= SeedVal are grouped into 6-connected components,
// each component receives a unique positive label, and components smaller
// than SeedSize voxels are removed.
//
// If no voxel satisfies the threshold the returned volume is all-zero. That
// is a valid degenerate input to Flood, not an error.
func GenerateSeeds(boundary *models.Volume, p SeedParams) *models.LabelVolume {
	mask := boundary.ThresholdLE(p.SeedVal)
	seeds := morpho.LabelComponents(mask)
	if p.SeedSize > 0 {
		seeds = morpho.RemoveSmallComponents(seeds, p.SeedSize)
	}
	return seeds
}
