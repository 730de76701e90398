package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestones(t *testing.T) {
	tests := []struct {
		name         string
		longest      int
		wantAchieved []bool
	}{
		{"Zero streak achieves nothing", 0, []bool{false, false, false, false}},
		{"Exactly at first threshold", 3, []bool{true, false, false, false}},
		{"Between thresholds", 10, []bool{true, true, false, false}},
		{"Everything achieved", 150, []bool{true, true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Milestones(tt.longest)

			require.Len(t, got, len(tt.wantAchieved))
			for i, want := range tt.wantAchieved {
				assert.Equal(t, want, got[i].Achieved, "threshold %d", got[i].Threshold)
			}
		})
	}
}

func TestMilestones_Ascending(t *testing.T) {
	got := Milestones(0)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Threshold, got[i-1].Threshold)
	}
}
