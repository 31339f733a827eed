package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/utils"
)

// RenderText writes the plain-text ranking: one table per side and blind kind,
// ducks per hunter shown with one decimal.
func RenderText(w io.Writer, report *entity.Report) error {
	var b strings.Builder
	b.WriteString("Blinds ranked by ducks per hunter\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", report.Source)
	}
	if first, last, ok := utils.DateSpan(report.Dates); ok {
		fmt.Fprintf(&b, "Dates: %s to %s (%d reports)\n", first, last, len(report.Dates))
	}

	for _, s := range sides(report) {
		writeRanking(&b, s.title+" AREAS", s.ranking.AreaBlinds)
		writeRanking(&b, s.title+" UNIT BLINDS", s.ranking.UnitBlinds)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type sideView struct {
	title   string
	sheet   string
	ranking entity.SideRanking
}

func sides(report *entity.Report) []sideView {
	return []sideView{
		{title: "EASTSIDE", sheet: "Eastside", ranking: report.Eastside},
		{title: "WESTSIDE", sheet: "Westside", ranking: report.Westside},
	}
}

func writeRanking(w io.Writer, title string, records []entity.BlindRecord) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(records) == 0 {
		fmt.Fprintln(w, "(no blinds reported)")
		return
	}
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Rank", "Blind", "Ducks/Hunter"})
	t.SetAutoFormatHeaders(false)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for i, r := range records {
		t.Append([]string{strconv.Itoa(i + 1), r.Blind, utils.FormatRatio(r.DucksPerHunter)})
	}
	t.Render()
}
