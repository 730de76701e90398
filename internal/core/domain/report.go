package domain

import "time"

// Milestone is a named streak threshold. Achieved is derived from the
// longest streak at report time.
type Milestone struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
	Achieved  bool   `json:"achieved"`
}

// CategoryStat is the per-prayer breakdown inside a prayer report.
type CategoryStat struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	OnTime    int `json:"on_time"`
}

// RateWindows carries completion percentages over the three standard
// trailing windows, rounded to whole points for display.
type RateWindows struct {
	Day   float64 `json:"day"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// StatisticsReport is the consolidated output of one report computation.
// It is a plain value: the engine holds no state between calls, and
// LongestStreak >= CurrentStreak always holds.
type StatisticsReport struct {
	EntityID      string                  `json:"entity_id"`
	CurrentStreak int                     `json:"current_streak"`
	LongestStreak int                     `json:"longest_streak"`
	Completion    RateWindows             `json:"completion_rate"`
	OnTimeRate    *float64                `json:"on_time_rate,omitempty"`
	PerCategory   map[Prayer]CategoryStat `json:"per_category,omitempty"`
	Milestones    []Milestone             `json:"milestones"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

// ReportInput bundles the policy knobs of a report computation. Location is
// the reference timezone for all calendar arithmetic and is required, never
// defaulted from the server's local zone.
type ReportInput struct {
	UserID     string
	Reference  time.Time
	WindowDays int
	Location   *time.Location
}
