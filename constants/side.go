package constants

// Side is one of the two hunting regions of the wildlife area.
type Side string

// Stable values (used as JSON keys and report headings).
const (
	Eastside Side = "Eastside"
	Westside Side = "Westside"
)

// Summary region markers on page 1 of the daily report.
const (
	EastsideStart = "EASTSIDE HUNTERS"
	EastsideEnd   = "EASTSIDE TOTALS"
	WestsideStart = "WESTSIDE HUNTERS"
	WestsideEnd   = "WESTSIDE TOTALS"
)

// regionLabels are header/footer echoes that the loose line split picks up.
var regionLabels = map[string]struct{}{
	"EASTSIDE":        {},
	"EASTSIDE TOTALS": {},
	"WESTSIDE":        {},
	"WESTSIDE TOTALS": {},
}

// IsRegionLabel reports whether name is a region header or totals label.
func IsRegionLabel(name string) bool {
	_, ok := regionLabels[name]
	return ok
}

// DetailPageSides maps the 0-based page index of each detail table page to its side.
var DetailPageSides = []struct {
	Page int
	Side Side
}{
	{Page: 1, Side: Eastside},
	{Page: 2, Side: Westside},
}

// BlindHeader is the literal header of the blind column in detail tables.
const BlindHeader = "Blind"

// UnitBlindMarker separates the unit name from the blind number, e.g. "Johnson #3".
const UnitBlindMarker = " #"
