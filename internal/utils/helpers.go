package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// ParseYMD parses a YYYY-MM-DD date label.
func ParseYMD(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// MMDDYYYYToISO converts the 8-digit date used in report file names to YYYY-MM-DD.
func MMDDYYYYToISO(s string) (string, bool) {
	if len(s) != 8 {
		return "", false
	}
	t, err := time.Parse("01022006", s)
	if err != nil {
		return "", false
	}
	return t.Format(time.DateOnly), true
}

// DateSpan returns the first and last label of an ascending date list.
func DateSpan(dates []string) (first, last string, ok bool) {
	if len(dates) == 0 {
		return "", "", false
	}
	return dates[0], dates[len(dates)-1], true
}

// ContentHash is the hex sha256 of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FormatRatio renders a ducks-per-hunter value with one decimal.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
