package constants

import "strings"

type Unit string

const (
	Johnson     Unit = "Johnson"
	Racetrack   Unit = "Racetrack"
	Hunt        Unit = "Hunt"
	Mudhen      Unit = "Mudhen"
	OakIsland   Unit = "Oak Island"
	MudLake     Unit = "Mud Lake"
	Seal        Unit = "Seal"
	Steelman    Unit = "Steelman"
	HolmanPoint Unit = "Holman Point"
)

var allUnits = []Unit{
	Johnson,
	Racetrack,
	Hunt,
	Mudhen,
	OakIsland,
	MudLake,
	Seal,
	Steelman,
	HolmanPoint,
}

// unitSignatures maps the stacked rendering of the rotated unit label found in
// column 0 of the detail tables to the unit. Characters come out one per line,
// bottom-to-top, and wide labels interleave two columns of glyphs, so the table
// is matched verbatim.
var unitSignatures = map[string]Unit{
	"t\ni\nn\nU\nn\no\ns\nn\nh\no\nJ": Johnson,
	"k\nc\na\nt\nr i\nt n\ne U\nc\na\nR": Racetrack,
	"t\ni\nn\nU\nt\nn\nu\nH": Hunt,
	"t\ni\nn\nU\nn\ne\nh\nd\nu\nM": Mudhen,
	"d\nn\na t\nl s i n\nI U\nk\na\nO": OakIsland,
	"t\ni\nn\nU\ne\nk\na\nL\nd\nu\nM": MudLake,
	"t\ni\nn\nU\ne\nk\na\nL\nl\na\ne\nS": Seal,
	"t\ni\nn\nU\nn\na\nm\nl\ne\ne\nt\nS": Steelman,
	"t\nn\ni\no\nP\nt\nn i n\na U\nm\nl\no\nH": HolmanPoint,
}

// Units returns the canonical unit labels.
func Units() []string {
	result := make([]string, len(allUnits))
	for i, u := range allUnits {
		result[i] = string(u)
	}
	return result
}

// ResolveUnit maps a raw column-0 cell to its unit. Only exact signatures
// resolve; anything else reports false.
func ResolveUnit(raw string) (Unit, bool) {
	u, ok := unitSignatures[strings.TrimSpace(raw)]
	return u, ok
}
