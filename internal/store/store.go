// SPDX-License-Identifier: MPL-2.0

// Package store persists registry modules in a SQLite database. Collection
// fields (variables, outputs, examples, tags) are serialized as JSON text
// columns and round-trip losslessly. Name uniqueness and the download-count
// increment are both enforced at the database level, so concurrent callers
// need no coordination in application code.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/blackroad/tfregistry/pkg/registry"
)

const schema = `
CREATE TABLE IF NOT EXISTS modules (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    provider        TEXT NOT NULL,
    resource_type   TEXT NOT NULL,
    version         TEXT NOT NULL,
    description     TEXT,
    hcl_template    TEXT NOT NULL,
    variables       TEXT DEFAULT '[]',
    outputs         TEXT DEFAULT '[]',
    examples        TEXT DEFAULT '[]',
    tags            TEXT DEFAULT '[]',
    created_at      TEXT,
    download_count  INTEGER DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_provider ON modules(provider);
CREATE INDEX IF NOT EXISTS idx_resource_type ON modules(resource_type);
CREATE UNIQUE INDEX IF NOT EXISTS idx_name ON modules(name);
`

const moduleColumns = `id, name, provider, resource_type, version, description,
	hcl_template, variables, outputs, examples, tags, created_at, download_count`

// Store is a SQLite-backed registry.Store.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

var _ registry.Store = (*Store)(nil)

// Open creates the database file (and parent directory) if needed and
// applies the schema. The busy-timeout pragma plus a single pooled
// connection keep concurrent writers from tripping over SQLITE_BUSY.
func Open(path string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	logger.Debug("opened module database", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert persists a new module. A collision on the unique name index is
// reported as registry.ErrNameExists.
func (s *Store) Insert(ctx context.Context, m *registry.Module) error {
	variables, outputs, examples, tags, err := marshalCollections(m)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO modules (`+moduleColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.ID, m.Name, m.Provider, m.ResourceType, m.Version, m.Description,
		m.HCLTemplate, variables, outputs, examples, tags,
		m.CreatedAt.Format(time.RFC3339Nano), m.DownloadCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", registry.ErrNameExists, m.Name)
		}
		return fmt.Errorf("insert module %q: %w", m.Name, err)
	}
	return nil
}

// Get resolves a module by ID or unique name.
func (s *Store) Get(ctx context.Context, ref string) (*registry.Module, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE id = ? OR name = ?`, ref, ref)
	m, err := scanModule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &registry.NotFoundError{Ref: ref}
	}
	if err != nil {
		return nil, fmt.Errorf("get module %q: %w", ref, err)
	}
	return m, nil
}

// List returns modules matching the optional filters, most downloaded first
// with name as tiebreaker.
func (s *Store) List(ctx context.Context, provider, resourceType string) ([]*registry.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules WHERE 1=1`
	var args []any
	if provider != "" {
		query += ` AND provider = ?`
		args = append(args, provider)
	}
	if resourceType != "" {
		query += ` AND resource_type = ?`
		args = append(args, resourceType)
	}
	query += ` ORDER BY download_count DESC, name ASC`
	return s.queryModules(ctx, query, args...)
}

// Search matches the query substring case-insensitively against name,
// description, provider, resource type, and the serialized tag list.
func (s *Store) Search(ctx context.Context, query string) ([]*registry.Module, error) {
	q := "%" + strings.ToLower(query) + "%"
	return s.queryModules(ctx, `
		SELECT `+moduleColumns+` FROM modules WHERE
		    lower(name) LIKE ? OR lower(description) LIKE ?
		    OR lower(provider) LIKE ? OR lower(resource_type) LIKE ?
		    OR lower(tags) LIKE ?
		ORDER BY download_count DESC`,
		q, q, q, q, q)
}

// Delete removes a module by ID, reporting whether a record existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM modules WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete module %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementDownloads adds one to the module's counter in a single UPDATE
// statement; concurrent renders of the same module never lose increments.
func (s *Store) IncrementDownloads(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE modules SET download_count = download_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment download count of %s: %w", id, err)
	}
	return nil
}

// SetVersion updates a module's version string.
func (s *Store) SetVersion(ctx context.Context, id, version string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE modules SET version = ? WHERE id = ?`, version, id)
	if err != nil {
		return fmt.Errorf("set version of %s: %w", id, err)
	}
	return nil
}

// Stats aggregates the total module count, per-provider counts (most
// populous first), and the five most downloaded modules.
func (s *Store) Stats(ctx context.Context) (*registry.Stats, error) {
	stats := &registry.Stats{}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM modules`).Scan(&stats.TotalModules); err != nil {
		return nil, fmt.Errorf("count modules: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT provider, COUNT(*) AS cnt FROM modules GROUP BY provider ORDER BY cnt DESC`)
	if err != nil {
		return nil, fmt.Errorf("count modules by provider: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc registry.ProviderCount
		if err := rows.Scan(&pc.Provider, &pc.Count); err != nil {
			return nil, err
		}
		stats.ByProvider = append(stats.ByProvider, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	top, err := s.db.QueryContext(ctx,
		`SELECT name, provider, download_count FROM modules ORDER BY download_count DESC LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("rank modules by downloads: %w", err)
	}
	defer top.Close()
	for top.Next() {
		var de registry.DownloadEntry
		if err := top.Scan(&de.Name, &de.Provider, &de.Downloads); err != nil {
			return nil, err
		}
		stats.MostDownloaded = append(stats.MostDownloaded, de)
	}
	return stats, top.Err()
}

func (s *Store) queryModules(ctx context.Context, query string, args ...any) ([]*registry.Module, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	var modules []*registry.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModule(row rowScanner) (*registry.Module, error) {
	var (
		m           registry.Module
		description sql.NullString
		variables   string
		outputs     string
		examples    string
		tags        string
		createdAt   sql.NullString
	)
	err := row.Scan(&m.ID, &m.Name, &m.Provider, &m.ResourceType, &m.Version,
		&description, &m.HCLTemplate, &variables, &outputs, &examples, &tags,
		&createdAt, &m.DownloadCount)
	if err != nil {
		return nil, err
	}
	m.Description = description.String

	if createdAt.Valid && createdAt.String != "" {
		ts, err := time.Parse(time.RFC3339Nano, createdAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt.String, err)
		}
		m.CreatedAt = ts
	}

	if err := json.Unmarshal([]byte(variables), &m.Variables); err != nil {
		return nil, fmt.Errorf("decode variables of %q: %w", m.Name, err)
	}
	if err := json.Unmarshal([]byte(outputs), &m.Outputs); err != nil {
		return nil, fmt.Errorf("decode outputs of %q: %w", m.Name, err)
	}
	if err := json.Unmarshal([]byte(examples), &m.Examples); err != nil {
		return nil, fmt.Errorf("decode examples of %q: %w", m.Name, err)
	}
	if err := json.Unmarshal([]byte(tags), &m.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of %q: %w", m.Name, err)
	}
	return &m, nil
}

func marshalCollections(m *registry.Module) (variables, outputs, examples, tags string, err error) {
	enc := func(v any) (string, error) {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode collection field of %q: %w", m.Name, err)
		}
		return string(raw), nil
	}
	if variables, err = enc(emptySlice(m.Variables)); err != nil {
		return
	}
	if outputs, err = enc(emptySlice(m.Outputs)); err != nil {
		return
	}
	if examples, err = enc(emptySlice(m.Examples)); err != nil {
		return
	}
	tags, err = enc(emptySlice(m.Tags))
	return
}

// emptySlice keeps nil collections serializing as [] rather than null.
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
