// Package rankings folds parsed harvests into per-blind totals and ranks them.
package rankings

import (
	"math"
	"sort"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

// Aggregation accumulates harvests across daily reports. Folding is
// commutative, so reports may be added in any order or merged from partial
// aggregations with the same result.
type Aggregation struct {
	blinds map[entity.BlindKey]*entity.BlindAggregate
	dates  map[string]struct{}
}

func NewAggregation() *Aggregation {
	return &Aggregation{
		blinds: make(map[entity.BlindKey]*entity.BlindAggregate),
		dates:  make(map[string]struct{}),
	}
}

// Aggregate folds all days into a fresh aggregation.
func Aggregate(days []entity.DayHarvest) *Aggregation {
	a := NewAggregation()
	for _, d := range days {
		a.AddDay(d)
	}
	return a
}

// AddDay records the date and adds every harvest of that report.
func (a *Aggregation) AddDay(d entity.DayHarvest) {
	a.dates[d.Date] = struct{}{}
	for _, h := range d.Harvests {
		a.add(h.Key(), d.Date, entity.Counts{Hunters: h.Hunters, Ducks: h.Ducks})
	}
}

// Merge adds another aggregation into a, summing shared buckets.
func (a *Aggregation) Merge(o *Aggregation) {
	if o == nil {
		return
	}
	for d := range o.dates {
		a.dates[d] = struct{}{}
	}
	for key, rec := range o.blinds {
		for date, c := range rec.Daily {
			a.add(key, date, c)
		}
	}
}

// add updates the daily bucket and the totals together.
func (a *Aggregation) add(key entity.BlindKey, date string, c entity.Counts) {
	rec, ok := a.blinds[key]
	if !ok {
		rec = &entity.BlindAggregate{Key: key, Daily: make(map[string]entity.Counts)}
		a.blinds[key] = rec
	}
	rec.Totals = rec.Totals.Add(c)
	rec.Daily[date] = rec.Daily[date].Add(c)
}

// Dates returns every report date seen, ascending.
func (a *Aggregation) Dates() []string {
	out := make([]string, 0, len(a.dates))
	for d := range a.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Len is the number of distinct blinds.
func (a *Aggregation) Len() int { return len(a.blinds) }

// Lookup returns a copy of the aggregate for key.
func (a *Aggregation) Lookup(key entity.BlindKey) (entity.BlindAggregate, bool) {
	rec, ok := a.blinds[key]
	if !ok {
		return entity.BlindAggregate{}, false
	}
	return copyAggregate(rec), true
}

// Blinds returns copies of all aggregates ordered by side then blind name.
func (a *Aggregation) Blinds() []entity.BlindAggregate {
	out := make([]entity.BlindAggregate, 0, len(a.blinds))
	for _, rec := range a.blinds {
		out = append(out, copyAggregate(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Side != out[j].Key.Side {
			return out[i].Key.Side < out[j].Key.Side
		}
		return out[i].Key.Blind < out[j].Key.Blind
	})
	return out
}

// Derive computes the externally visible records for one side.
func (a *Aggregation) Derive(side constants.Side) []entity.BlindRecord {
	var out []entity.BlindRecord
	for _, rec := range a.Blinds() {
		if rec.Key.Side != side {
			continue
		}
		out = append(out, DeriveRecord(rec))
	}
	return out
}

// DeriveRecord computes efficiencies for an aggregate. Daily entries cover
// only the dates the blind was reported on, ascending.
func DeriveRecord(rec entity.BlindAggregate) entity.BlindRecord {
	dates := make([]string, 0, len(rec.Daily))
	for d := range rec.Daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	daily := make([]entity.DailyRecord, 0, len(dates))
	for _, d := range dates {
		c := rec.Daily[d]
		daily = append(daily, entity.DailyRecord{
			Date:           d,
			Hunters:        c.Hunters,
			Ducks:          c.Ducks,
			DucksPerHunter: Efficiency(c.Ducks, c.Hunters),
		})
	}
	return entity.BlindRecord{
		Blind:          rec.Key.Blind,
		TotalHunters:   rec.Totals.Hunters,
		TotalDucks:     rec.Totals.Ducks,
		DucksPerHunter: Efficiency(rec.Totals.Ducks, rec.Totals.Hunters),
		Daily:          daily,
	}
}

// Efficiency is ducks per hunter rounded to three decimals; zero hunters gives 0.
func Efficiency(ducks, hunters int) float64 {
	if hunters == 0 {
		return 0
	}
	return math.Round(float64(ducks)/float64(hunters)*1000) / 1000
}

func copyAggregate(rec *entity.BlindAggregate) entity.BlindAggregate {
	out := entity.BlindAggregate{Key: rec.Key, Totals: rec.Totals, Daily: make(map[string]entity.Counts, len(rec.Daily))}
	for d, c := range rec.Daily {
		out.Daily[d] = c
	}
	return out
}
