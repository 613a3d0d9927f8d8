package watershed

import (
	"testing"

	"watershed3d/internal/models"
)

// distinctLabels counts the distinct positive labels in a label volume.
func distinctLabels(l *models.LabelVolume) int {
	seen := make(map[uint32]bool)
	for _, lab := range l.Data {
		if lab != 0 {
			seen[lab] = true
		}
	}
	return len(seen)
}

func TestGenerateSeeds_EmptyMask(t *testing.T) {
	boundary := models.NewVolume(3, 3, 3)
	for i := range boundary.Data {
		boundary.Data[i] = 1
	}

	seeds := GenerateSeeds(boundary, SeedParams{SeedVal: 0.5})
	if got := distinctLabels(seeds); got != 0 {
		t.Errorf("distinct labels = %d for empty mask, want 0", got)
	}
}

func TestGenerateSeeds_FiltersSmallComponents(t *testing.T) {
	// One 3-voxel component and one isolated voxel.
	boundary := models.NewVolume(1, 3, 3)
	for i := range boundary.Data {
		boundary.Data[i] = 1
	}
	boundary.Set(0, 0, 0, 0)
	boundary.Set(0, 0, 1, 0)
	boundary.Set(0, 0, 2, 0)
	boundary.Set(0, 2, 0, 0)

	unfiltered := GenerateSeeds(boundary, SeedParams{SeedVal: 0})
	if got := distinctLabels(unfiltered); got != 2 {
		t.Fatalf("distinct labels = %d without filter, want 2", got)
	}

	filtered := GenerateSeeds(boundary, SeedParams{SeedVal: 0, SeedSize: 2})
	if got := distinctLabels(filtered); got != 1 {
		t.Errorf("distinct labels = %d with SeedSize=2, want 1", got)
	}
	if got := filtered.At(0, 2, 0); got != 0 {
		t.Errorf("At(0,2,0) = %d, want 0 (small seed removed)", got)
	}
}

func TestGenerateSeeds_SizeThresholdMonotonicity(t *testing.T) {
	// Raising the seed-size threshold can only remove components, never add
	// them.
	boundary := models.NewVolume(6, 6, 6)
	state := uint64(42)
	for i := range boundary.Data {
		state = state*6364136223846793005 + 1442695040888963407
		boundary.Data[i] = float64(state>>33%100) / 100.0
	}

	prev := -1
	for _, size := range []int{0, 1, 2, 4, 8, 16} {
		seeds := GenerateSeeds(boundary, SeedParams{SeedVal: 0.3, SeedSize: size})
		count := distinctLabels(seeds)
		if prev >= 0 && count > prev {
			t.Errorf("SeedSize=%d produced %d components, more than %d at the smaller threshold",
				size, count, prev)
		}
		prev = count
	}
}
