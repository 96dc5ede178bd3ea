package entities

import (
	"fmt"
	"strings"
	"time"
)

// CustomerReleases is the demand type tag for confirmed customer pull requests
const CustomerReleases = "Customer Releases"

// DefaultDateLayout is the month/day/year layout of demand date columns
const DefaultDateLayout = "1/2/2006"

// DemandRecord represents one row of the demand table for a part
type DemandRecord struct {
	PartNumber PartNumber
	DemandType string
	OnHand     Quantity
	PastDue    Quantity
	Cells      map[string]string // raw demand cell per date column key
}

// InScope reports whether the record carries the given demand type
func (r *DemandRecord) InScope(demandType string) bool {
	return strings.TrimSpace(r.DemandType) == demandType
}

// DemandSchema describes which columns of the demand table are dates and how they are written
type DemandSchema struct {
	DateKeys   []string
	DateLayout string
}

// NewDemandSchema creates a validated DemandSchema
func NewDemandSchema(dateKeys []string, layout string) (*DemandSchema, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	seen := make(map[string]bool, len(dateKeys))
	for _, key := range dateKeys {
		if seen[key] {
			return nil, fmt.Errorf("duplicate date column: %s", key)
		}
		seen[key] = true
	}

	keys := make([]string, len(dateKeys))
	copy(keys, dateKeys)
	return &DemandSchema{DateKeys: keys, DateLayout: layout}, nil
}

// DemandBucket is a single dated demand quantity
type DemandBucket struct {
	Date     time.Time
	Quantity Quantity
}

// ShortageEvent represents the incremental shortfall of a part on one date
type ShortageEvent struct {
	PartNumber PartNumber `json:"part_number"`
	Date       time.Time  `json:"date"`
	Shortfall  Quantity   `json:"shortfall"`
	OnHand     Quantity   `json:"on_hand"`
	PastDue    Quantity   `json:"past_due"`
}

// CalendarDay truncates t to midnight in its own location
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayBefore reports whether a falls on a calendar date strictly before b
func DayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
