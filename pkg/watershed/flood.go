package watershed

import (
	"container/heap"
	"errors"
	"fmt"

	"watershed3d/internal/models"
)

// ErrShapeMismatch is returned when the boundary and seed volumes do not
// share the same extents.
var ErrShapeMismatch = errors.New("boundary and seed volumes have different shapes")

// Flood runs the priority-flood watershed. Starting from the seed regions it
// assigns every reachable unlabeled voxel to a seed, always expanding through
// the lowest boundary value on the frontier first. Seeded voxels keep their
// labels; a voxel is never relabeled once assigned.
//
// Candidates with equal boundary value are resolved first-enqueued-first:
// seeds are scanned in raster (z, x, y) order and neighbors are enqueued in
// the fixed order -z, +z, -x, +x, -y, +y, so the result is deterministic for
// a fixed input.
//
// An all-zero seed volume yields an all-zero result: with no seeds there is
// nothing to flood from, and that degenerate case is not an error.
func Flood(boundary *models.Volume, seeds *models.LabelVolume) (*models.LabelVolume, error) {
	if boundary.NZ != seeds.NZ || boundary.NX != seeds.NX || boundary.NY != seeds.NY {
		return nil, fmt.Errorf("watershed: %w: boundary (%d,%d,%d) vs seeds (%d,%d,%d)",
			ErrShapeMismatch, boundary.NZ, boundary.NX, boundary.NY, seeds.NZ, seeds.NX, seeds.NY)
	}

	out := seeds.Clone()

	strideY := 1
	strideX := boundary.NY
	strideZ := boundary.NX * boundary.NY

	var seq uint64
	queue := make(floodQueue, 0, 1024)

	// push enqueues one unlabeled voxel at its own boundary value, carrying
	// the label that reached it.
	push := func(idx int, label uint32) {
		heap.Push(&queue, floodItem{
			value: boundary.Data[idx],
			seq:   seq,
			idx:   idx,
			label: label,
		})
		seq++
	}

	// pushNeighbors enqueues every unlabeled face-neighbor of idx in the
	// fixed traversal order that pins the plateau tie-break.
	pushNeighbors := func(idx int, label uint32) {
		y := idx % boundary.NY
		x := (idx / strideX) % boundary.NX
		z := idx / strideZ

		if z > 0 && out.Data[idx-strideZ] == 0 {
			push(idx-strideZ, label)
		}
		if z < boundary.NZ-1 && out.Data[idx+strideZ] == 0 {
			push(idx+strideZ, label)
		}
		if x > 0 && out.Data[idx-strideX] == 0 {
			push(idx-strideX, label)
		}
		if x < boundary.NX-1 && out.Data[idx+strideX] == 0 {
			push(idx+strideX, label)
		}
		if y > 0 && out.Data[idx-strideY] == 0 {
			push(idx-strideY, label)
		}
		if y < boundary.NY-1 && out.Data[idx+strideY] == 0 {
			push(idx+strideY, label)
		}
	}

	// Initialize the frontier from every seeded voxel.
	for idx, label := range out.Data {
		if label != 0 {
			pushNeighbors(idx, label)
		}
	}

	// Grow regions lowest-boundary-first until the frontier is exhausted.
	for queue.Len() > 0 {
		item := heap.Pop(&queue).(floodItem)
		if out.Data[item.idx] != 0 {
			// Assigned since this candidate was enqueued.
			continue
		}
		out.Data[item.idx] = item.label
		pushNeighbors(item.idx, item.label)
	}

	return out, nil
}
