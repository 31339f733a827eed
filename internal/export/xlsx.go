package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

const dailySheet = "Daily"

// RenderXLSX returns a workbook with one ranking sheet per side and a daily breakdown sheet.
func RenderXLSX(report *entity.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	views := sides(report)
	// the default workbook carries one sheet; reuse it for the first side
	if err := f.SetSheetName("Sheet1", views[0].sheet); err != nil {
		return nil, err
	}
	for i, s := range views {
		if i > 0 {
			if _, err := f.NewSheet(s.sheet); err != nil {
				return nil, err
			}
		}
		if err := writeRankingSheet(f, s, bold); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.sheet, err)
		}
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, err
	}
	if err := writeDailySheet(f, report, views, bold); err != nil {
		return nil, fmt.Errorf("sheet %s: %w", dailySheet, err)
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRankingSheet(f *excelize.File, s sideView, bold int) error {
	headers := []any{"Rank", "Blind", "Kind", "Hunters", "Ducks", "Ducks/Hunter"}
	if err := f.SetSheetRow(s.sheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(s.sheet, "A1", "F1", bold); err != nil {
		return err
	}

	row := 2
	write := func(kind string, records []entity.BlindRecord) error {
		for i, r := range records {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []any{i + 1, r.Blind, kind, r.TotalHunters, r.TotalDucks, r.DucksPerHunter}
			if err := f.SetSheetRow(s.sheet, cell, &values); err != nil {
				return err
			}
			row++
		}
		return nil
	}
	if err := write("area", s.ranking.AreaBlinds); err != nil {
		return err
	}
	if err := write("unit", s.ranking.UnitBlinds); err != nil {
		return err
	}

	_ = f.SetColWidth(s.sheet, "A", "A", 6)  // rank
	_ = f.SetColWidth(s.sheet, "B", "B", 28) // blind
	_ = f.SetColWidth(s.sheet, "C", "F", 13)
	return nil
}

func writeDailySheet(f *excelize.File, report *entity.Report, views []sideView, bold int) error {
	headers := []any{"Side", "Blind", "Date", "Hunters", "Ducks", "Ducks/Hunter", "Low °F", "High °F", "Precip in", "Wind °"}
	if err := f.SetSheetRow(dailySheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(dailySheet, "A1", "J1", bold); err != nil {
		return err
	}

	row := 2
	for _, s := range views {
		for _, r := range s.ranking.All() {
			for _, d := range r.Daily {
				cell, _ := excelize.CoordinatesToCellName(1, row)
				values := []any{s.sheet, r.Blind, d.Date, d.Hunters, d.Ducks, d.DucksPerHunter}
				w := report.Weather[d.Date]
				values = append(values, optional(w.TempMinF), optional(w.TempMaxF), optional(w.PrecipitationIn), optional(w.WindBearing))
				if err := f.SetSheetRow(dailySheet, cell, &values); err != nil {
					return err
				}
				row++
			}
		}
	}
	_ = f.SetColWidth(dailySheet, "B", "B", 28)
	_ = f.SetColWidth(dailySheet, "C", "C", 12)
	return nil
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
