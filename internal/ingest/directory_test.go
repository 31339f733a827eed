package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "12012025s.pdf"), "one")
	writeFile(t, filepath.Join(root, "2025-12", "12022025s.pdf"), "two")
	writeFile(t, filepath.Join(root, "copy", "12032025s_0.pdf"), "one")
	writeFile(t, filepath.Join(root, "12022025s_0.pdf"), "two again")
	writeFile(t, filepath.Join(root, "notes.pdf"), "x")
	writeFile(t, filepath.Join(root, "12042025s.txt"), "x")
	writeFile(t, filepath.Join(root, ".hidden", "12052025s.pdf"), "hidden")

	docs, results, stats, err := LoadDirectory(context.Background(), root, true, quietLogger())
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %+v", docs)
	}
	if docs[0].Date != "2025-12-02" || docs[1].Date != "2025-12-01" {
		t.Errorf("order = %s, %s", docs[0].Date, docs[1].Date)
	}
	if stats.Matched != 4 || stats.Succeeded != 2 || stats.Deduplicated != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if len(results) != 4 {
		t.Errorf("results = %+v", results)
	}
}

func TestLoadDirectoryRequiresRoot(t *testing.T) {
	if _, _, _, err := LoadDirectory(context.Background(), " ", false, quietLogger()); err == nil {
		t.Fatal("expected error")
	}
}

func TestReportDate(t *testing.T) {
	tests := map[string]string{
		"12012025s.pdf":            "2025-12-01",
		"/tmp/x/10132025s_0.pdf":   "2025-10-13",
		"01252026S.PDF":            "2026-01-25",
		"12012025.pdf":             "",
		"12012025s_1.pdf":          "",
		"season-summary-2025s.pdf": "",
	}
	for name, want := range tests {
		got, ok := ReportDate(name)
		if got != want || ok != (want != "") {
			t.Errorf("ReportDate(%q) = %q, %v; want %q", name, got, ok, want)
		}
	}
}
