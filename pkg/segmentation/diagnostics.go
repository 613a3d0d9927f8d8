package segmentation

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"watershed3d/internal/models"
)

// Diagnostics summarizes one segmentation run. It is reported back to the
// caller instead of being logged through shared global state, so embedding
// applications can attach it to their own reporting.
type Diagnostics struct {
	// SeedCount is the number of seed components found on the full volume
	// (after small-seed removal).
	SeedCount int `yaml:"seedCount"`

	// CroppedSeedCount is the number of seed components found after the
	// border crop. Zero when no border is configured.
	CroppedSeedCount int `yaml:"croppedSeedCount"`

	// SupervoxelCount is the number of distinct positive labels in the final
	// volume.
	SupervoxelCount int `yaml:"supervoxelCount"`

	// LabeledFraction is the fraction of voxels carrying a positive label.
	// With a border configured the margin voxels count as unlabeled.
	LabeledFraction float64 `yaml:"labeledFraction"`

	// RegionSizeMean, RegionSizeStdDev and RegionSizeMedian summarize the
	// voxel counts of the final supervoxels.
	RegionSizeMean   float64 `yaml:"regionSizeMean"`
	RegionSizeStdDev float64 `yaml:"regionSizeStdDev"`
	RegionSizeMedian float64 `yaml:"regionSizeMedian"`
}

// countLabels returns the number of distinct positive labels in a label
// volume. Small-component removal leaves the surviving labels sparse, so the
// maximum label is not a component count.
func countLabels(l *models.LabelVolume) int {
	seen := make(map[uint32]struct{})
	for _, lab := range l.Data {
		if lab != 0 {
			seen[lab] = struct{}{}
		}
	}
	return len(seen)
}

// measure fills in the output-side statistics from a final label volume.
func (d *Diagnostics) measure(labels *models.LabelVolume) {
	counts := make(map[uint32]int)
	labeled := 0
	for _, lab := range labels.Data {
		if lab != 0 {
			counts[lab]++
			labeled++
		}
	}

	d.SupervoxelCount = len(counts)
	if n := len(labels.Data); n > 0 {
		d.LabeledFraction = float64(labeled) / float64(n)
	}
	if len(counts) == 0 {
		return
	}

	sizes := make([]float64, 0, len(counts))
	for _, c := range counts {
		sizes = append(sizes, float64(c))
	}
	sort.Float64s(sizes)

	d.RegionSizeMean = stat.Mean(sizes, nil)
	if len(sizes) > 1 {
		d.RegionSizeStdDev = stat.StdDev(sizes, nil)
	}
	d.RegionSizeMedian = stat.Quantile(0.5, stat.Empirical, sizes, nil)
}
