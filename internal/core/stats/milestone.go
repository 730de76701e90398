package stats

import "github.com/Bahtiyorjon05/Daily-priority-sub003/internal/core/domain"

// milestoneThresholds is the fixed ascending product list. Changing it only
// changes labels in reports; no stored data depends on it.
var milestoneThresholds = []domain.Milestone{
	{Threshold: 3, Label: "3-day streak"},
	{Threshold: 7, Label: "7-day streak"},
	{Threshold: 30, Label: "30-day streak"},
	{Threshold: 100, Label: "100-day streak"},
}

// Milestones marks each threshold as achieved when the longest streak has
// reached it.
func Milestones(longestStreak int) []domain.Milestone {
	out := make([]domain.Milestone, len(milestoneThresholds))
	for i, m := range milestoneThresholds {
		m.Achieved = longestStreak >= m.Threshold
		out[i] = m
	}
	return out
}
