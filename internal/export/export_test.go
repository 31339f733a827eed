package export

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

func ptr(v float64) *float64 { return &v }

func sampleReport() *entity.Report {
	return &entity.Report{
		Source: "latest 2 daily harvest reports",
		Dates:  []string{"2025-12-01", "2025-12-02"},
		Eastside: entity.SideRanking{
			AreaBlinds: []entity.BlindRecord{{
				Blind: "North Pond", TotalHunters: 20, TotalDucks: 30, DucksPerHunter: 1.5,
				Daily: []entity.DailyRecord{
					{Date: "2025-12-01", Hunters: 10, Ducks: 20, DucksPerHunter: 2},
					{Date: "2025-12-02", Hunters: 10, Ducks: 10, DucksPerHunter: 1},
				},
			}},
			UnitBlinds: []entity.BlindRecord{{
				Blind: "Johnson #3", TotalHunters: 3, TotalDucks: 1, DucksPerHunter: 0.333,
				Daily: []entity.DailyRecord{{Date: "2025-12-02", Hunters: 3, Ducks: 1, DucksPerHunter: 0.333}},
			}},
		},
		Westside: entity.SideRanking{
			AreaBlinds: []entity.BlindRecord{},
			UnitBlinds: []entity.BlindRecord{},
		},
		Weather: map[string]entity.Weather{
			"2025-12-01": {TempMinF: ptr(31.2), TempMaxF: ptr(44), PrecipitationIn: ptr(0.1), WindBearing: ptr(190)},
		},
	}
}

func TestRenderJSONMatchesSchema(t *testing.T) {
	b, err := RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"source", "dates", "eastside", "westside", "weather"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestValidateReportJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing sides", `{"source":"","dates":[]}`},
		{"bad date", `{"source":"","dates":["12/01/2025"],"eastside":{"areaBlinds":[],"unitBlinds":[]},"westside":{"areaBlinds":[],"unitBlinds":[]}}`},
		{"negative count", `{"source":"","dates":[],"eastside":{"areaBlinds":[{"blind":"A","totalHunters":-1,"totalDucks":0,"ducksPerHunter":0,"daily":[]}],"unitBlinds":[]},"westside":{"areaBlinds":[],"unitBlinds":[]}}`},
		{"not json", `{"source":`},
		{"unknown field", `{"source":"","dates":[],"eastside":{"areaBlinds":[],"unitBlinds":[]},"westside":{"areaBlinds":[],"unitBlinds":[]},"extra":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateReportJSON([]byte(tt.data)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCompiledReportSchemaIsShared(t *testing.T) {
	first, err := compiledReportSchema()
	if err != nil {
		t.Fatalf("compile report schema: %v", err)
	}
	second, err := compiledReportSchema()
	if err != nil {
		t.Fatalf("compile report schema: %v", err)
	}
	if first != second {
		t.Fatal("report schema should be compiled once")
	}
	if _, err := RenderJSON(sampleReport()); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
}

func TestRenderText(t *testing.T) {
	var b strings.Builder
	if err := RenderText(&b, sampleReport()); err != nil {
		t.Fatalf("RenderText failed: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"Source: latest 2 daily harvest reports",
		"Dates: 2025-12-01 to 2025-12-02 (2 reports)",
		"EASTSIDE AREAS",
		"North Pond",
		"1.5",
		"EASTSIDE UNIT BLINDS",
		"Johnson #3",
		"0.3",
		"WESTSIDE AREAS",
		"(no blinds reported)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "EASTSIDE AREAS") > strings.Index(out, "WESTSIDE AREAS") {
		t.Error("eastside should be rendered before westside")
	}
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML(sampleReport())
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	out := string(page)
	for _, want := range []string{"<!DOCTYPE html>", "<table>", "<h2>Eastside</h2>", "Johnson #3", "<h2>Weather</h2>", "31.2"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderMarkdownEscapesPipes(t *testing.T) {
	r := sampleReport()
	r.Eastside.AreaBlinds[0].Blind = "A|B"
	if md := RenderMarkdown(r); !strings.Contains(md, `A\|B`) {
		t.Errorf("pipe not escaped:\n%s", md)
	}
}

func TestRenderXLSX(t *testing.T) {
	b, err := RenderXLSX(sampleReport())
	if err != nil {
		t.Fatalf("RenderXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	want := []string{"Eastside", "Westside", "Daily"}
	if strings.Join(sheets, ",") != strings.Join(want, ",") {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}

	rows, err := f.GetRows("Eastside")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "North Pond" || rows[1][2] != "area" {
		t.Errorf("row 2 = %v", rows[1])
	}
	if rows[2][1] != "Johnson #3" || rows[2][2] != "unit" {
		t.Errorf("row 3 = %v", rows[2])
	}

	daily, err := f.GetRows("Daily")
	if err != nil {
		t.Fatalf("GetRows daily: %v", err)
	}
	if len(daily) != 4 {
		t.Fatalf("expected header + 3 daily rows, got %d", len(daily))
	}
	if daily[1][2] != "2025-12-01" || len(daily[1]) < 7 {
		t.Errorf("daily row with weather = %v", daily[1])
	}
}

func TestServiceWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	svc := NewService(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	paths, err := svc.WriteAll(context.Background(), sampleReport(), dir)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("expected 4 outputs, got %v", paths)
	}
	for _, name := range []string{TextFile, JSONFile, HTMLFile, XLSXFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestServiceRenderUnknown(t *testing.T) {
	if _, err := NewService(nil).Render(context.Background(), "report.pdf", sampleReport()); err == nil {
		t.Fatal("expected error for unknown output")
	}
}
