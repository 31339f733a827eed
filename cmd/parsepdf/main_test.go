package main

import (
	"testing"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

func TestUnitRows(t *testing.T) {
	harvests := []entity.Harvest{
		{Side: constants.Eastside, Blind: "North Pond"},
		{Side: constants.Eastside, Blind: "Johnson #3"},
		{Side: constants.Eastside, Blind: "Johnson #7"},
		{Side: constants.Westside, Blind: "Holman Point #12"},
	}
	rows := unitRows(harvests)
	if len(rows) != len(constants.Units()) {
		t.Fatalf("expected a row per unit, got %d", len(rows))
	}
	got := make(map[string]string, len(rows))
	for _, r := range rows {
		got[r[0]] = r[1]
	}
	for unit, want := range map[string]string{"Johnson": "2", "Holman Point": "1", "Mudhen": "0"} {
		if got[unit] != want {
			t.Errorf("%s rows = %q, want %q", unit, got[unit], want)
		}
	}
	if rows[0][0] != string(constants.Johnson) {
		t.Errorf("rows should follow unit order, first = %q", rows[0][0])
	}
}
