package models

import (
	"testing"
)

func TestVolumeIndexing(t *testing.T) {
	v := NewVolume(2, 3, 4)

	if got := v.NumVoxels(); got != 24 {
		t.Fatalf("NumVoxels() = %d, want 24", got)
	}

	// The y coordinate varies fastest, then x, then z.
	if got := v.Index(0, 0, 1); got != 1 {
		t.Errorf("Index(0,0,1) = %d, want 1", got)
	}
	if got := v.Index(0, 1, 0); got != 4 {
		t.Errorf("Index(0,1,0) = %d, want 4", got)
	}
	if got := v.Index(1, 0, 0); got != 12 {
		t.Errorf("Index(1,0,0) = %d, want 12", got)
	}

	v.Set(1, 2, 3, 7.5)
	if got := v.At(1, 2, 3); got != 7.5 {
		t.Errorf("At(1,2,3) = %v, want 7.5", got)
	}
	if got := v.Data[v.NumVoxels()-1]; got != 7.5 {
		t.Errorf("Set(1,2,3) did not write the last flat element, Data[23] = %v", got)
	}
}

func TestVolumeThresholdLE(t *testing.T) {
	v := NewVolume(1, 2, 2)
	v.Set(0, 0, 0, 0.1)
	v.Set(0, 0, 1, 0.5)
	v.Set(0, 1, 0, 0.9)
	v.Set(0, 1, 1, 0.5)

	m := v.ThresholdLE(0.5)
	want := []bool{true, true, false, true}
	for i, b := range want {
		if m.Bits[i] != b {
			t.Errorf("Bits[%d] = %v, want %v", i, m.Bits[i], b)
		}
	}
	if !m.Any() {
		t.Error("Any() = false, want true")
	}

	empty := v.ThresholdLE(-1)
	if empty.Any() {
		t.Error("Any() = true for an impossible threshold, want false")
	}
}

func TestVolumeCrop(t *testing.T) {
	v := NewVolume(4, 4, 4)
	for i := range v.Data {
		v.Data[i] = float64(i)
	}

	c := v.Crop(1)
	if c.NZ != 2 || c.NX != 2 || c.NY != 2 {
		t.Fatalf("Crop(1) shape = (%d,%d,%d), want (2,2,2)", c.NZ, c.NX, c.NY)
	}
	for z := 0; z < c.NZ; z++ {
		for x := 0; x < c.NX; x++ {
			for y := 0; y < c.NY; y++ {
				if got, want := c.At(z, x, y), v.At(z+1, x+1, y+1); got != want {
					t.Errorf("Crop At(%d,%d,%d) = %v, want %v", z, x, y, got, want)
				}
			}
		}
	}

	// Cropping must allocate, not alias.
	c.Set(0, 0, 0, -1)
	if v.At(1, 1, 1) == -1 {
		t.Error("Crop result aliases the source volume")
	}
}

func TestLabelVolumeCloneIsIndependent(t *testing.T) {
	l := NewLabelVolume(1, 2, 2)
	l.Set(0, 1, 1, 9)

	c := l.Clone()
	if c.At(0, 1, 1) != 9 {
		t.Fatalf("Clone At(0,1,1) = %d, want 9", c.At(0, 1, 1))
	}
	c.Set(0, 0, 0, 5)
	if l.At(0, 0, 0) != 0 {
		t.Error("writing to the clone modified the original")
	}
}

func TestLabelVolumeEmbed(t *testing.T) {
	full := NewLabelVolume(4, 4, 4)
	sub := NewLabelVolume(2, 2, 2)
	for i := range sub.Data {
		sub.Data[i] = uint32(i + 1)
	}

	full.Embed(sub, 1)

	for z := 0; z < 4; z++ {
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				interior := z >= 1 && z < 3 && x >= 1 && x < 3 && y >= 1 && y < 3
				got := full.At(z, x, y)
				if interior {
					if want := sub.At(z-1, x-1, y-1); got != want {
						t.Errorf("At(%d,%d,%d) = %d, want %d", z, x, y, got, want)
					}
				} else if got != 0 {
					t.Errorf("At(%d,%d,%d) = %d, want 0 outside the embedded region", z, x, y, got)
				}
			}
		}
	}
}

func TestLabelVolumeMaxLabel(t *testing.T) {
	l := NewLabelVolume(1, 1, 3)
	if got := l.MaxLabel(); got != 0 {
		t.Errorf("MaxLabel() = %d on empty volume, want 0", got)
	}
	l.Data[1] = 4
	l.Data[2] = 2
	if got := l.MaxLabel(); got != 4 {
		t.Errorf("MaxLabel() = %d, want 4", got)
	}
}
