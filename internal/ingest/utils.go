package ingest

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/utils"
)

// reportFileRe matches daily report file names: MMDDYYYYs.pdf, optionally with a _0 re-upload suffix.
var reportFileRe = regexp.MustCompile(`^(\d{8})s(?:_0)?\.pdf$`)

// ReportDate returns the ISO date encoded in a daily report file name.
func ReportDate(filename string) (string, bool) {
	m := reportFileRe.FindStringSubmatch(strings.ToLower(filepath.Base(filename)))
	if m == nil {
		return "", false
	}
	return utils.MMDDYYYYToISO(m[1])
}

// AllowedExt checks the extension against the accepted document types.
func AllowedExt(ext string) bool {
	return constants.IsAllowedExt(ext)
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
