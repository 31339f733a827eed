package extract

import (
	"strconv"
	"strings"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/document"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

const minDetailCells = 6

// unitState is the unit rows are currently attributed to. The zero value is unset.
type unitState struct {
	unit constants.Unit
	set  bool
}

// ParseDetail walks the detail tables page by page. The current unit starts
// unset on every page, changes only on a multi-line column-0 label, and is
// cleared when that label does not resolve. Rows seen while it is unset are dropped.
func ParseDetail(pages []SidePage) []entity.Harvest {
	var out []entity.Harvest
	for _, pg := range pages {
		var state unitState
		for _, table := range pg.Tables {
			for _, row := range table {
				var h entity.Harvest
				var ok bool
				state, h, ok = walkRow(state, pg.Side, row)
				if ok {
					out = append(out, h)
				}
			}
		}
	}
	return out
}

// walkRow applies one row to the unit state and returns the harvest it carries, if any.
func walkRow(state unitState, side constants.Side, row document.Row) (unitState, entity.Harvest, bool) {
	if len(row) < minDetailCells {
		return state, entity.Harvest{}, false
	}
	blind := row[1]
	id := strings.TrimSpace(blind.Text)
	if !blind.Valid || id == "" || id == constants.BlindHeader {
		return state, entity.Harvest{}, false
	}

	if label := row[0]; label.Valid && strings.TrimSpace(label.Text) != "" && strings.Contains(label.Text, "\n") {
		unit, ok := constants.ResolveUnit(label.Text)
		state = unitState{unit: unit, set: ok}
	}
	if !state.set {
		return state, entity.Harvest{}, false
	}

	hunters, ok := parseCell(row[2])
	if !ok {
		return state, entity.Harvest{}, false
	}
	ducks, ok := parseCell(row[3])
	if !ok {
		return state, entity.Harvest{}, false
	}
	return state, entity.Harvest{
		Side:    side,
		Blind:   string(state.unit) + constants.UnitBlindMarker + id,
		Hunters: hunters,
		Ducks:   ducks,
	}, true
}

// parseCell reads a count cell; blank or merged-away cells count as zero.
func parseCell(c document.Cell) (int, bool) {
	s := strings.TrimSpace(c.Text)
	if !c.Valid || s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
