package utils

import "testing"

func TestMMDDYYYYToISO(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12012025", "2025-12-01", true},
		{"01252026", "2026-01-25", true},
		{"13012025", "", false},
		{"1201202", "", false},
		{"abcdefgh", "", false},
	}
	for _, tt := range tests {
		got, ok := MMDDYYYYToISO(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MMDDYYYYToISO(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseYMD(t *testing.T) {
	if _, err := ParseYMD(" 2025-12-01 "); err != nil {
		t.Fatalf("ParseYMD failed: %v", err)
	}
	if _, err := ParseYMD("12/01/2025"); err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(2.833); got != "2.8" {
		t.Errorf("FormatRatio = %q", got)
	}
	if got := FormatRatio(0); got != "0.0" {
		t.Errorf("FormatRatio = %q", got)
	}
}
