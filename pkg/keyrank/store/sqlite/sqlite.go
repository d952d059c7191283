package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/keyrank/pkg/keyrank/internalerr"
	"github.com/cognicore/keyrank/pkg/keyrank/report"
	"github.com/cognicore/keyrank/pkg/keyrank/store"
)

// timeLayout is fixed width so created_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas below are per connection
	db.SetMaxOpenConns(1)

	// Enable WAL mode
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL on %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS reports_source ON reports(source, created_at);

CREATE TABLE IF NOT EXISTS report_keywords (
	report_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	word TEXT NOT NULL,
	stem TEXT NOT NULL,
	tag TEXT,
	score REAL NOT NULL,
	PRIMARY KEY(report_id, position),
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS report_pairs (
	report_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	a TEXT NOT NULL,
	b TEXT NOT NULL,
	count INTEGER NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY(report_id, position),
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveReport inserts or replaces a report and its rows
func (s *sqliteStore) SaveReport(ctx context.Context, r report.Report) error {
	if r.ID == "" {
		return fmt.Errorf("report without id: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO reports (id, source, created_at)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	created_at=excluded.created_at;
`, r.ID, r.Source, r.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return err
	}

	if err := replaceKeywords(ctx, tx, r.ID, r.Keywords); err != nil {
		return err
	}
	if err := replacePairs(ctx, tx, r.ID, r.TopPairs); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceKeywords(ctx context.Context, tx *sql.Tx, id string, keywords []report.Keyword) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM report_keywords WHERE report_id=?`, id); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO report_keywords (report_id, position, word, stem, tag, score)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, k := range keywords {
		if _, err := stmt.ExecContext(ctx, id, i, k.Word, k.Stem, k.Tag, k.Score); err != nil {
			return err
		}
	}
	return nil
}

func replacePairs(ctx context.Context, tx *sql.Tx, id string, pairs []report.Pair) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM report_pairs WHERE report_id=?`, id); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO report_pairs (report_id, position, a, b, count, weight)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range pairs {
		if _, err := stmt.ExecContext(ctx, id, i, p.A, p.B, p.Count, p.Weight); err != nil {
			return err
		}
	}
	return nil
}

// GetReport loads one report by ID
func (s *sqliteStore) GetReport(ctx context.Context, id string) (report.Report, error) {
	var (
		r       report.Report
		created string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, source, created_at
FROM reports
WHERE id = ?;
`, id).Scan(&r.ID, &r.Source, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Report{}, fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return report.Report{}, err
	}
	if parsed, perr := time.Parse(timeLayout, created); perr == nil {
		r.CreatedAt = parsed
	}

	if r.Keywords, err = s.loadKeywords(ctx, id); err != nil {
		return report.Report{}, err
	}
	if r.TopPairs, err = s.loadPairs(ctx, id); err != nil {
		return report.Report{}, err
	}
	return r, nil
}

// ListReports returns the newest reports, optionally for one source
func (s *sqliteStore) ListReports(ctx context.Context, source string, limit int) ([]report.Report, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	query := `SELECT id FROM reports ORDER BY created_at DESC, id DESC LIMIT ?`
	args := []interface{}{limit}
	if source != "" {
		query = `SELECT id FROM reports WHERE source = ? ORDER BY created_at DESC, id DESC LIMIT ?`
		args = []interface{}{source, limit}
	}

	ids, err := s.loadStringColumn(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	reports := make([]report.Report, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetReport(ctx, id)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// DeleteReport removes a report and, through cascading keys, its rows
func (s *sqliteStore) DeleteReport(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

func (s *sqliteStore) loadKeywords(ctx context.Context, id string) ([]report.Keyword, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT word, stem, tag, score
FROM report_keywords
WHERE report_id = ?
ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keywords := []report.Keyword{}
	for rows.Next() {
		var (
			k   report.Keyword
			tag sql.NullString
		)
		if err := rows.Scan(&k.Word, &k.Stem, &tag, &k.Score); err != nil {
			return nil, err
		}
		k.Tag = tag.String
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

func (s *sqliteStore) loadPairs(ctx context.Context, id string) ([]report.Pair, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT a, b, count, weight
FROM report_pairs
WHERE report_id = ?
ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := []report.Pair{}
	for rows.Next() {
		var p report.Pair
		if err := rows.Scan(&p.A, &p.B, &p.Count, &p.Weight); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func (s *sqliteStore) loadStringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var val string
		if err := rows.Scan(&val); err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, rows.Err()
}
