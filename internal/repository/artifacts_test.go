package repository

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// exerciseRepository runs the shared contract against any backend.
func exerciseRepository(t *testing.T, repo ArtifactRepository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "12012025s.pdf"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Put(ctx, "12012025s.pdf", []byte("first")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	// idempotent: a second write leaves the first content in place
	if err := repo.Put(ctx, "12012025s.pdf", []byte("second")); err != nil {
		t.Fatalf("repeat Put failed: %v", err)
	}
	got, err := repo.Get(ctx, "12012025s.pdf")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "first" {
		t.Fatalf("Get = %q, want first", got)
	}

	if err := repo.Put(ctx, "12022025s.pdf", []byte("other")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "12012025s.pdf" || list[0].Size != 5 || list[0].Hash == "" {
		t.Fatalf("List = %+v", list)
	}

	for _, bad := range []string{"", "../escape.pdf", "dir/x.pdf", ".hidden.pdf", "notes.txt"} {
		if err := repo.Put(ctx, bad, []byte("x")); !errors.Is(err, common.ErrInvalidInput) {
			t.Errorf("Put(%q): expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestDirRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	repo, err := NewDirRepository(dir, quietLogger())
	if err != nil {
		t.Fatalf("NewDirRepository failed: %v", err)
	}
	exerciseRepository(t, repo)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected only the two artifacts on disk, got %d entries", len(entries))
	}
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Config{DSN: "sqlite:" + filepath.Join(t.TempDir(), "cache.db")}, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer Close(db, quietLogger())
	if db.Dialect != DialectSQLite {
		t.Fatalf("dialect = %s", db.Dialect)
	}
	exerciseRepository(t, NewSQLRepository(db, quietLogger()))
}

func TestInMemorySQLiteRepository(t *testing.T) {
	repo, closeFn, err := OpenArtifacts(context.Background(), Config{DSN: ":memory:"}, "", quietLogger())
	if err != nil {
		t.Fatalf("OpenArtifacts failed: %v", err)
	}
	defer closeFn()
	exerciseRepository(t, repo)
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, Config{DSN: dsn}, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer Close(db, quietLogger())
	if _, err := db.SQL.ExecContext(ctx, `TRUNCATE artifacts`); err != nil {
		t.Fatal(err)
	}
	exerciseRepository(t, NewSQLRepository(db, quietLogger()))
}

func TestOpenArtifactsDefaultsToDirectory(t *testing.T) {
	dir := t.TempDir()
	repo, closeFn, err := OpenArtifacts(context.Background(), Config{}, dir, quietLogger())
	if err != nil {
		t.Fatalf("OpenArtifacts failed: %v", err)
	}
	defer closeFn()
	if _, ok := repo.(*dirRepo); !ok {
		t.Fatalf("expected directory repository, got %T", repo)
	}
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		dialect Dialect
		target  string
	}{
		{"postgres://u:p@localhost:5432/rankings", DialectPostgres, "postgres://u:p@localhost:5432/rankings"},
		{"postgresql://localhost/rankings", DialectPostgres, "postgresql://localhost/rankings"},
		{"sqlite:./tmp/cache.db", DialectSQLite, "./tmp/cache.db"},
		{"sqlite:///var/cache.db", DialectSQLite, "/var/cache.db"},
		{"cache.db", DialectSQLite, "cache.db"},
	}
	for _, tt := range tests {
		d, target, err := ParseDSN(tt.dsn)
		if err != nil {
			t.Fatalf("ParseDSN(%q): %v", tt.dsn, err)
		}
		if d != tt.dialect || target != tt.target {
			t.Errorf("ParseDSN(%q) = %s, %s", tt.dsn, d, target)
		}
	}
	if _, _, err := ParseDSN("  "); err == nil {
		t.Error("expected error for empty dsn")
	}
}

func TestRebind(t *testing.T) {
	q := `INSERT INTO artifacts (a, b) VALUES (?, ?)`
	if got := rebind(DialectPostgres, q); got != `INSERT INTO artifacts (a, b) VALUES ($1, $2)` {
		t.Errorf("rebind = %s", got)
	}
	if got := rebind(DialectSQLite, q); got != q {
		t.Errorf("sqlite query should be unchanged, got %s", got)
	}
}
