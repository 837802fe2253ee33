package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
	"github.com/maktaba-labs/maktaba-cli/internal/core/query"
)

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

const entryColumns = "b.id, b.file_reference, b.file_name, b.uploaded_at"

// Add inserts a new entry.
func (s *catalogStore) Add(ctx context.Context, entry *domain.CatalogEntry, searchText string) error {
	if entry.UploadedAt.IsZero() {
		entry.UploadedAt = time.Now().UTC()
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO books (file_reference, file_name, search_name, uploaded_at)
		VALUES (?, ?, ?, ?)
	`, entry.FileReference, entry.FileName, searchText, entry.UploadedAt.UTC().Format(timeFormat))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("file reference %q: %w", entry.FileReference, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("inserting entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading entry id: %w", err)
	}
	entry.ID = id
	return nil
}

// Get retrieves an entry by ID.
func (s *catalogStore) Get(ctx context.Context, id int64) (*domain.CatalogEntry, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM books b WHERE b.id = ?", id)
	return scanEntryRow(row)
}

// GetByReference retrieves an entry by file reference.
func (s *catalogStore) GetByReference(ctx context.Context, fileReference string) (*domain.CatalogEntry, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM books b WHERE b.file_reference = ?", fileReference)
	return scanEntryRow(row)
}

// List returns entries newest first.
func (s *catalogStore) List(ctx context.Context, offset, limit int) ([]domain.CatalogEntry, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM books b ORDER BY b.uploaded_at DESC, b.id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of entries.
func (s *catalogStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Delete removes an entry. The full-text row goes with it via trigger.
func (s *catalogStore) Delete(ctx context.Context, id int64) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search runs one match-then-rank pass.
func (s *catalogStore) Search(ctx context.Context, q domain.StoreQuery) ([]domain.ScoredEntry, error) {
	stmt, args, ok := searchStatement(q)
	if !ok {
		return []domain.ScoredEntry{}, nil
	}

	rows, err := s.store.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	results := []domain.ScoredEntry{}
	for rows.Next() {
		var r domain.ScoredEntry
		var uploaded any
		if err := rows.Scan(&r.Entry.ID, &r.Entry.FileReference, &r.Entry.FileName, &uploaded,
			&r.ExactMatch, &r.Rank, &r.Similarity); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		if r.Entry.UploadedAt, err = parseTime(uploaded); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	return results, nil
}

// MatchTerms runs a single full-text query ordered by rank.
func (s *catalogStore) MatchTerms(ctx context.Context, expression string, limit int) ([]domain.CatalogEntry, error) {
	if expression == "" {
		return []domain.CatalogEntry{}, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM books_fts
		JOIN books b ON b.id = books_fts.rowid
		WHERE books_fts MATCH :expr
		ORDER BY bm25(books_fts), b.id
		LIMIT :limit
	`, sql.Named("expr", expression), sql.Named("limit", limit))
	if err != nil {
		return nil, fmt.Errorf("matching terms: %w", err)
	}
	defer rows.Close()

	entries := []domain.CatalogEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("matching terms: %w", err)
	}
	return entries, nil
}

// searchStatement builds the ranked query for q. Disabled clauses are left
// out of the SQL entirely; ok is false when nothing could match.
func searchStatement(q domain.StoreQuery) (stmt string, args []any, ok bool) {
	var (
		with  string
		join  string
		where []string
	)
	exact, rank, sim := "0", "0.0", "0.0"

	if q.Expression != "" {
		with = `WITH fts AS (
			SELECT rowid AS id, -bm25(books_fts) AS score
			FROM books_fts
			WHERE books_fts MATCH :expr
		)
		`
		join = "LEFT JOIN fts ON fts.id = b.id"
		rank = "COALESCE(fts.score, 0.0)"
		where = append(where, "fts.id IS NOT NULL")
		args = append(args, sql.Named("expr", q.Expression))
	}
	if q.Substring != "" {
		exact = `(b.search_name LIKE :substr ESCAPE '` + query.LikeEscapeChar + `')`
		where = append(where, exact)
		args = append(args, sql.Named("substr", q.Substring))
	}
	if q.SimilarityKey != "" {
		// A zero threshold would admit every row.
		threshold := q.SimilarityThreshold
		if threshold <= 0 {
			threshold = domain.DefaultSimilarityThreshold
		}
		sim = "similarity(b.search_name, :simkey)"
		where = append(where, sim+" >= :threshold")
		args = append(args, sql.Named("simkey", q.SimilarityKey), sql.Named("threshold", threshold))
	}
	if len(where) == 0 {
		return "", nil, false
	}

	candidateLimit := q.CandidateLimit
	if candidateLimit <= 0 {
		candidateLimit = domain.DefaultCandidateLimit
	}
	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultResultLimit
	}
	args = append(args, sql.Named("candidates", candidateLimit), sql.Named("limit", limit))

	stmt = with + `SELECT id, file_reference, file_name, uploaded_at, exact, rank, sim
		FROM (
			SELECT ` + entryColumns + `,
				` + exact + ` AS exact,
				` + rank + ` AS rank,
				` + sim + ` AS sim
			FROM books b
			` + join + `
			WHERE ` + strings.Join(where, " OR ") + `
			LIMIT :candidates
		)
		ORDER BY exact DESC, rank DESC, sim DESC, id ASC
		LIMIT :limit`
	return stmt, args, true
}

// entryScanner is satisfied by *sql.Row and *sql.Rows.
type entryScanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc entryScanner) (domain.CatalogEntry, error) {
	var e domain.CatalogEntry
	var uploaded any
	if err := sc.Scan(&e.ID, &e.FileReference, &e.FileName, &uploaded); err != nil {
		return e, fmt.Errorf("scanning entry: %w", err)
	}
	t, err := parseTime(uploaded)
	if err != nil {
		return e, err
	}
	e.UploadedAt = t
	return e, nil
}

func scanEntryRow(row *sql.Row) (*domain.CatalogEntry, error) {
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// timeFormat is how uploaded_at is written. Fixed width keeps text order
// equal to time order.
const timeFormat = "2006-01-02 15:04:05.000000000"

// timeLayouts are the text forms accepted when reading uploaded_at.
var timeLayouts = []string{
	timeFormat,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

func parseTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), nil
	case int64:
		return time.Unix(x, 0).UTC(), nil
	case []byte:
		return parseTime(string(x))
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("parsing uploaded_at %q: unknown layout", x)
	default:
		return time.Time{}, fmt.Errorf("parsing uploaded_at: unexpected type %T", v)
	}
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
}
