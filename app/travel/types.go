package travel

import (
	"strings"

	"golang.org/x/text/cases"
)

// Transport modes in fixed preference order. Lower rank wins ties
// between equally priced routes.

type Mode string

const (
	ModeFlight  Mode = "flight"
	ModeTrain   Mode = "train"
	ModeBus     Mode = "bus"
	ModeMixed   Mode = "mixed"
	ModeUnknown Mode = "unknown"
)

var modeRanks = map[Mode]int{
	ModeFlight:  0,
	ModeTrain:   1,
	ModeBus:     2,
	ModeMixed:   3,
	ModeUnknown: 9,
}

// ParseMode normalizes a provider-supplied mode string. Anything
// unrecognized maps to ModeUnknown rather than failing.
func ParseMode(s string) Mode {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modeRanks[mode]; ok {
		return mode
	}
	return ModeUnknown
}

// Rank returns the preference rank used for tie-breaking.
func (m Mode) Rank() int {
	if rank, ok := modeRanks[m]; ok {
		return rank
	}
	return modeRanks[ModeUnknown]
}

// RouteOption is a normalized transport option from one provider.
type RouteOption struct {
	Source  string
	Mode    Mode
	Summary string
	Price   *float64
}

// StayOption is a normalized accommodation option from one provider.
// A missing rating is represented as 0 (no quality reward).
type StayOption struct {
	Source string
	Name   string
	Price  *float64
	Rating float64
}

// ActivityOption is a normalized activity from one provider. Link and
// Description are optional; Link feeds background description enrichment.
type ActivityOption struct {
	Source      string
	Name        string
	Price       *float64
	Link        string
	Description string
}

var foldCaser = cases.Fold()

// DedupKey returns the case-insensitive trimmed identity of an activity.
// An empty key marks the activity as unidentifiable.
func (a ActivityOption) DedupKey() string {
	return foldCaser.String(strings.TrimSpace(a.Name))
}
