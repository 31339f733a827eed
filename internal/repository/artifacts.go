package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/utils"
)

// Artifact describes a cached report.
type Artifact struct {
	Name     string
	Hash     string
	Size     int64
	StoredAt time.Time
}

// ArtifactRepository caches downloaded reports by file name. Put is
// idempotent: a name already stored is left untouched.
type ArtifactRepository interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	List(ctx context.Context) ([]Artifact, error)
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: artifact name %q", common.ErrInvalidInput, name)
	}
	if !constants.IsAllowedExt(filepath.Ext(name)) {
		return fmt.Errorf("%w: artifact type %q", common.ErrInvalidInput, filepath.Ext(name))
	}
	return nil
}

type dirRepo struct {
	dir    string
	logger *slog.Logger
}

// NewDirRepository stores artifacts as files under dir.
func NewDirRepository(dir string, logger *slog.Logger) (ArtifactRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &dirRepo{dir: dir, logger: logger}, nil
}

func (r *dirRepo) Get(_ context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, common.ErrNotFound
	}
	return data, err
}

func (r *dirRepo) Put(_ context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	dest := filepath.Join(r.dir, name)
	if _, err := os.Stat(dest); err == nil {
		r.logger.Debug("artifact exists; skipping write", "name", name)
		return nil
	}

	tmp, err := os.CreateTemp(r.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return err
	}
	r.logger.Info("artifact stored", "name", name, "bytes", len(data), "dir", r.dir)
	return nil
}

func (r *dirRepo) List(_ context.Context) ([]Artifact, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	var out []Artifact
	for _, e := range entries {
		if e.IsDir() || checkName(e.Name()) != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, Artifact{
			Name:     e.Name(),
			Hash:     utils.ContentHash(data),
			Size:     int64(len(data)),
			StoredAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type sqlRepo struct {
	db     *DB
	logger *slog.Logger
}

// NewSQLRepository stores artifacts in the artifacts table.
func NewSQLRepository(db *DB, logger *slog.Logger) ArtifactRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqlRepo{db: db, logger: logger}
}

func (r *sqlRepo) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := r.db.SQL.QueryRowContext(ctx, rebind(r.db.Dialect, `SELECT data FROM artifacts WHERE name = ?`), name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get artifact", "name", name, "error", err)
		return nil, err
	}
	return data, nil
}

func (r *sqlRepo) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	q := rebind(r.db.Dialect, `INSERT INTO artifacts (name, content_hash, size, data, stored_at)
VALUES (?, ?, ?, ?, ?) ON CONFLICT (name) DO NOTHING`)
	res, err := r.db.SQL.ExecContext(ctx, q, name, utils.ContentHash(data), int64(len(data)), data, time.Now().UTC().Unix())
	if err != nil {
		r.logger.Error("failed to store artifact", "name", name, "error", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.logger.Debug("artifact exists; skipping write", "name", name)
		return nil
	}
	r.logger.Info("artifact stored", "name", name, "bytes", len(data), "dialect", r.db.Dialect)
	return nil
}

func (r *sqlRepo) List(ctx context.Context) ([]Artifact, error) {
	rows, err := r.db.SQL.QueryContext(ctx, `SELECT name, content_hash, size, stored_at FROM artifacts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		var stored int64
		if err := rows.Scan(&a.Name, &a.Hash, &a.Size, &stored); err != nil {
			return nil, err
		}
		a.StoredAt = time.Unix(stored, 0).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

// OpenArtifacts returns the SQL repository when cfg.DSN is set and the
// directory repository otherwise. The returned close func releases the database.
func OpenArtifacts(ctx context.Context, cfg Config, dir string, logger *slog.Logger) (ArtifactRepository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		repo, err := NewDirRepository(dir, logger)
		return repo, func() {}, err
	}
	db, err := Open(ctx, cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}
	return NewSQLRepository(db, logger), func() { Close(db, logger) }, nil
}
