package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/utils"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown lays the report out as GitHub-flavoured Markdown tables.
func RenderMarkdown(report *entity.Report) string {
	var b strings.Builder
	b.WriteString("# Blinds ranked by ducks per hunter\n\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "_Source: %s_\n\n", escapeCell(report.Source))
	}
	if len(report.Dates) > 0 {
		fmt.Fprintf(&b, "Reports: %s\n\n", strings.Join(report.Dates, ", "))
	}

	for _, s := range sides(report) {
		fmt.Fprintf(&b, "## %s\n\n", s.sheet)
		markdownTable(&b, "Areas", s.ranking.AreaBlinds)
		markdownTable(&b, "Unit blinds", s.ranking.UnitBlinds)
	}

	if len(report.Weather) > 0 {
		b.WriteString("## Weather\n\n| Date | Low °F | High °F | Precip in | Wind ° |\n|---|---:|---:|---:|---:|\n")
		for _, d := range report.Dates {
			w, ok := report.Weather[d]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", d, num(w.TempMinF), num(w.TempMaxF), num(w.PrecipitationIn), num(w.WindBearing))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func markdownTable(b *strings.Builder, title string, records []entity.BlindRecord) {
	fmt.Fprintf(b, "### %s\n\n", title)
	if len(records) == 0 {
		b.WriteString("No blinds reported.\n\n")
		return
	}
	b.WriteString("| Rank | Blind | Hunters | Ducks | Ducks/Hunter |\n|---:|---|---:|---:|---:|\n")
	for i, r := range records {
		fmt.Fprintf(b, "| %d | %s | %d | %d | %s |\n", i+1, escapeCell(r.Blind), r.TotalHunters, r.TotalDucks, utils.FormatRatio(r.DucksPerHunter))
	}
	b.WriteString("\n")
}

// RenderHTML converts the Markdown report into a standalone HTML page.
func RenderHTML(report *entity.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(RenderMarkdown(report)), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString("Blind rankings"))
	page.WriteString("<style>body{font-family:sans-serif;max-width:56rem;margin:2rem auto}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.25rem .5rem}</style>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func num(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.1f", *v)
}
