package entities

import (
	"strings"
	"time"
)

// RequirementFlags classifies how a requirement reached its place in the sequence
type RequirementFlags struct {
	GroupedAcrossDays bool `json:"grouped_across_days" yaml:"grouped_across_days"`
	SameDayContention bool `json:"same_day_contention" yaml:"same_day_contention"`
	SequenceLocked    bool `json:"sequence_locked" yaml:"sequence_locked"`
	PullAhead         bool `json:"pull_ahead" yaml:"pull_ahead"`
}

// String lists the raised flags, e.g. "same-day,locked"
func (f RequirementFlags) String() string {
	var parts []string
	if f.GroupedAcrossDays {
		parts = append(parts, "grouped")
	}
	if f.SameDayContention {
		parts = append(parts, "same-day")
	}
	if f.SequenceLocked {
		parts = append(parts, "locked")
	}
	if f.PullAhead {
		parts = append(parts, "pull-ahead")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

// ProductionRequirement is a grouped shortage expressed as work for the cell
type ProductionRequirement struct {
	Rank         int              `json:"rank" yaml:"rank"`
	PartNumber   PartNumber       `json:"part_number" yaml:"part_number"`
	Deficit      Quantity         `json:"deficit" yaml:"deficit"`
	EarliestDate time.Time        `json:"earliest_date" yaml:"earliest_date"`
	Containers   int64            `json:"containers" yaml:"containers"`
	Flags        RequirementFlags `json:"flags" yaml:"flags"`
	Color        ColorCategory    `json:"color" yaml:"color"`
	Description  string           `json:"description,omitempty" yaml:"description,omitempty"`
}

// EarliestOf returns the earliest shortage date across requirements, or the zero time
func EarliestOf(reqs []ProductionRequirement) time.Time {
	var earliest time.Time
	for i, req := range reqs {
		if i == 0 || req.EarliestDate.Before(earliest) {
			earliest = req.EarliestDate
		}
	}
	return earliest
}
