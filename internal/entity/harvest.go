package entity

import "github.com/joseph-ayodele/blind-rankings/constants"

// Harvest is one extracted fact: a blind's hunters and ducks for a single report.
type Harvest struct {
	Side    constants.Side
	Blind   string
	Hunters int
	Ducks   int
}

// Key identifies the blind the harvest belongs to.
func (h Harvest) Key() BlindKey {
	return BlindKey{Side: h.Side, Blind: h.Blind}
}

// BlindKey uniquely identifies a blind across the whole run.
type BlindKey struct {
	Side  constants.Side
	Blind string
}

// Counts is a hunters/ducks pair.
type Counts struct {
	Hunters int
	Ducks   int
}

// Add returns the element-wise sum.
func (c Counts) Add(o Counts) Counts {
	return Counts{Hunters: c.Hunters + o.Hunters, Ducks: c.Ducks + o.Ducks}
}

// BlindAggregate holds the running totals for one blind and the per-date breakdown.
// Totals always equal the sum of Daily.
type BlindAggregate struct {
	Key    BlindKey
	Totals Counts
	Daily  map[string]Counts
}

// DayHarvest is the parse result of one daily report, tagged with its date label (YYYY-MM-DD).
type DayHarvest struct {
	Date     string
	Harvests []Harvest
}

// SourceDocument is a fetched daily report awaiting parsing.
type SourceDocument struct {
	Date string
	Name string
	Data []byte
}

// DocumentRef points at a daily report on the publisher's site.
type DocumentRef struct {
	URL      string
	Date     string
	Filename string
}
