package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

const (
	minSummaryTokens = 6
	// name tokens are followed by hunters, ducks, geese, other, ducks/hunter
	summaryTrailing = 5
)

var summaryRegions = []struct {
	side constants.Side
	re   *regexp.Regexp
}{
	{constants.Eastside, regionPattern(constants.EastsideStart, constants.EastsideEnd)},
	{constants.Westside, regionPattern(constants.WestsideStart, constants.WestsideEnd)},
}

func regionPattern(start, end string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(start) + `.*?` + regexp.QuoteMeta(end))
}

// ParseSummary extracts named blinds from the page-1 daily summary. Each side's
// block runs from its HUNTERS header to the nearest TOTALS line; a missing block
// contributes nothing. Lines that do not fit the layout are dropped.
func ParseSummary(text string) []entity.Harvest {
	var out []entity.Harvest
	for _, r := range summaryRegions {
		block := r.re.FindString(text)
		if block == "" {
			continue
		}
		for _, line := range strings.Split(block, "\n") {
			if h, ok := parseSummaryLine(line, r.side); ok {
				out = append(out, h)
			}
		}
	}
	return out
}

func parseSummaryLine(line string, side constants.Side) (entity.Harvest, bool) {
	parts := strings.Fields(line)
	if len(parts) < minSummaryTokens {
		return entity.Harvest{}, false
	}
	n := len(parts)
	hunters, ok := parseSummaryCount(parts[n-summaryTrailing])
	if !ok {
		return entity.Harvest{}, false
	}
	ducks, ok := parseSummaryCount(parts[n-summaryTrailing+1])
	if !ok {
		return entity.Harvest{}, false
	}
	name := strings.Join(parts[:n-summaryTrailing], " ")
	if name == "" || constants.IsRegionLabel(name) {
		return entity.Harvest{}, false
	}
	return entity.Harvest{Side: side, Blind: name, Hunters: hunters, Ducks: ducks}, true
}

func parseSummaryCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
