package rankings

import (
	"sort"
	"strings"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

// IsUnitBlind reports whether the blind is a numbered blind inside a hunt unit
// ("Johnson #3") rather than a named area ("North Pond").
func IsUnitBlind(name string) bool {
	return strings.Contains(name, constants.UnitBlindMarker)
}

// Rank splits one side's records into area and unit blinds and orders each by
// ducks per hunter, best first, then by name. The input is left untouched.
func Rank(records []entity.BlindRecord) entity.SideRanking {
	r := entity.SideRanking{
		AreaBlinds: []entity.BlindRecord{},
		UnitBlinds: []entity.BlindRecord{},
	}
	for _, rec := range records {
		if IsUnitBlind(rec.Blind) {
			r.UnitBlinds = append(r.UnitBlinds, rec)
		} else {
			r.AreaBlinds = append(r.AreaBlinds, rec)
		}
	}
	sortRecords(r.AreaBlinds)
	sortRecords(r.UnitBlinds)
	return r
}

func sortRecords(rs []entity.BlindRecord) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].DucksPerHunter != rs[j].DucksPerHunter {
			return rs[i].DucksPerHunter > rs[j].DucksPerHunter
		}
		return rs[i].Blind < rs[j].Blind
	})
}
