package export

import (
	"encoding/json"
	"fmt"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

// RenderJSON encodes the report for the static site and checks it against ReportSchema.
func RenderJSON(report *entity.Report) ([]byte, error) {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if err := ValidateReportJSON(b); err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
