package models

// Volume is a dense 3-D grid of boundary-probability values produced by an
// upstream pixel classifier. The data is stored as a flat array with axes
// ordered (z, x, y), matching the transposition applied when the prediction
// volume is loaded. A Volume is treated as read-only once built: every
// pipeline stage allocates a fresh output rather than writing into its input.
type Volume struct {
	// Data holds the voxel values in (z, x, y) order: the y coordinate
	// varies fastest, then x, then z.
	Data []float64

	// NZ, NX, NY are the extents along each axis.
	NZ, NX, NY int
}

// NewVolume allocates a zero-filled volume with the given extents.
func NewVolume(nz, nx, ny int) *Volume {
	return &Volume{
		Data: make([]float64, nz*nx*ny),
		NZ:   nz,
		NX:   nx,
		NY:   ny,
	}
}

// Index converts (z, x, y) coordinates to a flat offset into Data.
func (v *Volume) Index(z, x, y int) int {
	return (z*v.NX+x)*v.NY + y
}

// At returns the value at (z, x, y).
func (v *Volume) At(z, x, y int) float64 {
	return v.Data[v.Index(z, x, y)]
}

// Set stores a value at (z, x, y).
func (v *Volume) Set(z, x, y int, val float64) {
	v.Data[v.Index(z, x, y)] = val
}

// NumVoxels returns the total number of voxels in the volume.
func (v *Volume) NumVoxels() int {
	return v.NZ * v.NX * v.NY
}

// ThresholdLE builds the boolean mask of voxels whose value is less than or
// equal to t. This is the seed mask: low boundary probability means the voxel
// sits in the interior of a region.
func (v *Volume) ThresholdLE(t float64) *Mask {
	m := &Mask{
		Bits: make([]bool, len(v.Data)),
		NZ:   v.NZ,
		NX:   v.NX,
		NY:   v.NY,
	}
	for i, val := range v.Data {
		if val <= t {
			m.Bits[i] = true
		}
	}
	return m
}

// Crop returns a new volume with margin voxels removed from both ends of
// every axis. The caller is responsible for checking that the margin leaves a
// positive extent on each axis; Crop assumes valid input.
func (v *Volume) Crop(margin int) *Volume {
	out := NewVolume(v.NZ-2*margin, v.NX-2*margin, v.NY-2*margin)
	for z := 0; z < out.NZ; z++ {
		for x := 0; x < out.NX; x++ {
			src := v.Index(z+margin, x+margin, margin)
			dst := out.Index(z, x, 0)
			copy(out.Data[dst:dst+out.NY], v.Data[src:src+out.NY])
		}
	}
	return out
}

// Mask is a boolean grid with the same axis conventions as Volume. It marks
// the voxels selected by a threshold and is the input to connected-component
// labeling.
type Mask struct {
	Bits       []bool
	NZ, NX, NY int
}

// Index converts (z, x, y) coordinates to a flat offset into Bits.
func (m *Mask) Index(z, x, y int) int {
	return (z*m.NX+x)*m.NY + y
}

// Any reports whether at least one voxel is set.
func (m *Mask) Any() bool {
	for _, b := range m.Bits {
		if b {
			return true
		}
	}
	return false
}

// LabelVolume is a grid of region labels with the same shape and axis order
// as the Volume it was derived from. Label 0 is reserved for unlabeled or
// background voxels; positive labels identify regions.
type LabelVolume struct {
	Data       []uint32
	NZ, NX, NY int
}

// NewLabelVolume allocates an all-zero (fully unlabeled) label volume.
func NewLabelVolume(nz, nx, ny int) *LabelVolume {
	return &LabelVolume{
		Data: make([]uint32, nz*nx*ny),
		NZ:   nz,
		NX:   nx,
		NY:   ny,
	}
}

// Index converts (z, x, y) coordinates to a flat offset into Data.
func (l *LabelVolume) Index(z, x, y int) int {
	return (z*l.NX+x)*l.NY + y
}

// At returns the label at (z, x, y).
func (l *LabelVolume) At(z, x, y int) uint32 {
	return l.Data[l.Index(z, x, y)]
}

// Set stores a label at (z, x, y).
func (l *LabelVolume) Set(z, x, y int, label uint32) {
	l.Data[l.Index(z, x, y)] = label
}

// Clone returns a deep copy of the label volume.
func (l *LabelVolume) Clone() *LabelVolume {
	out := &LabelVolume{
		Data: make([]uint32, len(l.Data)),
		NZ:   l.NZ,
		NX:   l.NX,
		NY:   l.NY,
	}
	copy(out.Data, l.Data)
	return out
}

// Embed copies sub into the interior of l at the given offset along every
// axis, leaving all other voxels untouched. It is used to place a cropped
// watershed result back into a full-size output volume.
func (l *LabelVolume) Embed(sub *LabelVolume, offset int) {
	for z := 0; z < sub.NZ; z++ {
		for x := 0; x < sub.NX; x++ {
			src := sub.Index(z, x, 0)
			dst := l.Index(z+offset, x+offset, offset)
			copy(l.Data[dst:dst+sub.NY], sub.Data[src:src+sub.NY])
		}
	}
}

// MaxLabel returns the largest label present in the volume, or 0 if the
// volume is fully unlabeled.
func (l *LabelVolume) MaxLabel() uint32 {
	var max uint32
	for _, lab := range l.Data {
		if lab > max {
			max = lab
		}
	}
	return max
}
