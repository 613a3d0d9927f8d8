package morpho

import (
	"watershed3d/internal/models"
)

// RemoveSmallComponents returns a copy of the label volume in which every
// component with fewer than minSize voxels has been zeroed out. Surviving
// components keep their original label identifiers; labels are never
// compacted or renumbered, and components are never merged.
//
// A minSize of 0 or less is a no-op: the result is an unmodified copy.
func RemoveSmallComponents(labels *models.LabelVolume, minSize int) *models.LabelVolume {
	out := labels.Clone()
	if minSize <= 0 {
		return out
	}

	counts := componentSizes(labels)
	for i, lab := range out.Data {
		if lab != 0 && counts[lab] < minSize {
			out.Data[i] = 0
		}
	}
	return out
}

// componentSizes tallies the voxel count of every positive label. The result
// is indexed by label value; index 0 holds the background count and is unused
// by callers.
func componentSizes(labels *models.LabelVolume) []int {
	counts := make([]int, labels.MaxLabel()+1)
	for _, lab := range labels.Data {
		counts[lab]++
	}
	return counts
}
