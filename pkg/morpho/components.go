// Package morpho implements the morphological grid operations used by the
// watershed pipeline: connected-component labeling of boolean masks and
// removal of small labeled components. All operations use 6-connectivity
// (face-adjacent neighbors only) over a 3-D grid.
package morpho

import (
	"watershed3d/internal/models"
)

// LabelComponents assigns a unique positive label to every maximal
// 6-connected group of true voxels in the mask. False voxels receive label 0.
//
// The grid is scanned in raster order (z, then x, then y) and each unvisited
// true voxel starts a breadth-first fill of its component, so labels are
// dense (1..N for N components) and the assignment is deterministic for a
// fixed input.
func LabelComponents(mask *models.Mask) *models.LabelVolume {
	out := models.NewLabelVolume(mask.NZ, mask.NX, mask.NY)

	// Strides for moving one step along each axis in the flat array.
	strideY := 1
	strideX := mask.NY
	strideZ := mask.NX * mask.NY

	var next uint32
	queue := make([]int, 0, 64)

	for z := 0; z < mask.NZ; z++ {
		for x := 0; x < mask.NX; x++ {
			for y := 0; y < mask.NY; y++ {
				start := mask.Index(z, x, y)
				if !mask.Bits[start] || out.Data[start] != 0 {
					continue
				}

				// New component: flood it breadth-first.
				next++
				out.Data[start] = next
				queue = append(queue[:0], start)

				for len(queue) > 0 {
					idx := queue[0]
					queue = queue[1:]

					// Recover coordinates to guard the grid faces.
					cy := idx % mask.NY
					cx := (idx / strideX) % mask.NX
					cz := idx / strideZ

					if cz > 0 {
						queue = visit(mask, out, queue, idx-strideZ, next)
					}
					if cz < mask.NZ-1 {
						queue = visit(mask, out, queue, idx+strideZ, next)
					}
					if cx > 0 {
						queue = visit(mask, out, queue, idx-strideX, next)
					}
					if cx < mask.NX-1 {
						queue = visit(mask, out, queue, idx+strideX, next)
					}
					if cy > 0 {
						queue = visit(mask, out, queue, idx-strideY, next)
					}
					if cy < mask.NY-1 {
						queue = visit(mask, out, queue, idx+strideY, next)
					}
				}
			}
		}
	}

	return out
}

// visit enqueues a neighbor voxel if it belongs to the mask and has not been
// labeled yet.
func visit(mask *models.Mask, out *models.LabelVolume, queue []int, idx int, label uint32) []int {
	if mask.Bits[idx] && out.Data[idx] == 0 {
		out.Data[idx] = label
		queue = append(queue, idx)
	}
	return queue
}

// CountComponents returns the number of distinct positive labels in a label
// volume produced by LabelComponents. Because labels are dense, this is
// simply the maximum label value.
func CountComponents(labels *models.LabelVolume) int {
	return int(labels.MaxLabel())
}
