package extract

import (
	"reflect"
	"testing"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

const sampleSummary = `ODFW Sauvie Island Wildlife Area
Daily Harvest Report 12/01/2025
EASTSIDE HUNTERS DUCKS GEESE OTHER DUCKS/HUNTER
North Pond 12 34 5 6 2.83
Big Sturgeon Bay 4 10 0 0 2.50
EASTSIDE 16 44 5 6 2.75
Malformed line
Bad Counts x 4 0 0 1.00
EASTSIDE TOTALS 16 44 5 6 2.75
WESTSIDE HUNTERS DUCKS GEESE OTHER DUCKS/HUNTER
Coon Point 3 0 0 0 0.00
WESTSIDE TOTALS 3 0 0 0 0.00
`

func TestParseSummary(t *testing.T) {
	got := ParseSummary(sampleSummary)
	want := []entity.Harvest{
		{Side: constants.Eastside, Blind: "North Pond", Hunters: 12, Ducks: 34},
		{Side: constants.Eastside, Blind: "Big Sturgeon Bay", Hunters: 4, Ducks: 10},
		{Side: constants.Westside, Blind: "Coon Point", Hunters: 3, Ducks: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSummary =\n%+v\nwant\n%+v", got, want)
	}
}

func TestParseSummaryMissingRegion(t *testing.T) {
	text := "EASTSIDE HUNTERS\nNorth Pond 12 34 5 6 2.83\nEASTSIDE TOTALS 12 34 5 6 2.83\n"
	got := ParseSummary(text)
	if len(got) != 1 || got[0].Blind != "North Pond" || got[0].Side != constants.Eastside {
		t.Fatalf("unexpected harvests %+v", got)
	}

	if got := ParseSummary("no report here"); len(got) != 0 {
		t.Fatalf("expected nothing, got %+v", got)
	}
	// a start marker without an end marker is not a region
	if got := ParseSummary("WESTSIDE HUNTERS\nCoon Point 3 0 0 0 0.00\n"); len(got) != 0 {
		t.Fatalf("expected nothing, got %+v", got)
	}
}

func TestParseSummaryLine(t *testing.T) {
	tests := []struct {
		line string
		ok   bool
		want entity.Harvest
	}{
		{"North Pond 12 34 5 6 2.83", true, entity.Harvest{Side: constants.Eastside, Blind: "North Pond", Hunters: 12, Ducks: 34}},
		{"  Pond   0 0 0 0 0.00 ", true, entity.Harvest{Side: constants.Eastside, Blind: "Pond", Hunters: 0, Ducks: 0}},
		{"12 34 5 6 2.83", false, entity.Harvest{}},
		{"EASTSIDE TOTALS 12 34 5 6 2.83", false, entity.Harvest{}},
		{"WESTSIDE 1 1 0 0 1.00", false, entity.Harvest{}},
		{"North Pond 12.5 34 5 6 2.83", false, entity.Harvest{}},
		{"North Pond 12 -1 5 6 2.83", false, entity.Harvest{}},
		{"North Pond 12 34", false, entity.Harvest{}},
	}
	for _, tt := range tests {
		got, ok := parseSummaryLine(tt.line, constants.Eastside)
		if ok != tt.ok {
			t.Errorf("%q: ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%q: got %+v, want %+v", tt.line, got, tt.want)
		}
	}
}
