// Package store keeps page layouts in a sqlite database under slugged page
// names.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var (
	ErrNotFound = errors.New("page not found")
	ErrNoSlug   = errors.New("page name has no usable characters")
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	slug    TEXT PRIMARY KEY,
	title   TEXT NOT NULL DEFAULT '',
	layout  BLOB NOT NULL,
	updated INTEGER NOT NULL
);
`

// Entry describes stored page.
type Entry struct {
	Slug    string
	Title   string
	Updated time.Time
}

// Store is layout storage. Single connection is shared and serialized, which
// is plenty for command line use.
type Store struct {
	log  *zap.Logger
	mu   sync.Mutex
	conn *sqlite.Conn
}

// Open opens (creating when necessary) database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open layout store %q: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare layout store %q: %w", path, err)
	}
	log.Debug("Layout store opened", zap.String("path", path))
	return &Store{log: log.Named("store"), conn: conn}, nil
}

// Close closes underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Slug normalizes page name. Empty name falls back to title.
func Slug(name, title string) (string, error) {
	for _, s := range []string{name, title} {
		if out := slug.Make(s); out != "" {
			return out, nil
		}
	}
	return "", ErrNoSlug
}

// lock serializes connection use and makes ctx interrupt running statements.
func (s *Store) lock(ctx context.Context) func() {
	s.mu.Lock()
	old := s.conn.SetInterrupt(ctx.Done())
	return func() {
		s.conn.SetInterrupt(old)
		s.mu.Unlock()
	}
}

// Put stores layout document under normalized page name and returns the
// name. Existing page is replaced.
func (s *Store) Put(ctx context.Context, name, title string, layout []byte) (_ string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := Slug(name, title)
	if err != nil {
		return "", err
	}

	defer s.lock(ctx)()
	defer sqlitex.Save(s.conn)(&err)

	err = sqlitex.Execute(s.conn,
		`INSERT INTO pages (slug, title, layout, updated) VALUES (?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET title = excluded.title, layout = excluded.layout, updated = excluded.updated`,
		&sqlitex.ExecOptions{Args: []any{key, title, layout, time.Now().Unix()}})
	if err != nil {
		return "", fmt.Errorf("unable to store page %q: %w", key, err)
	}
	s.log.Debug("Page stored", zap.String("slug", key), zap.Int("bytes", len(layout)))
	return key, nil
}

// Get returns stored layout document. Name is normalized the same way Put
// does it.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := slug.Make(name)

	defer s.lock(ctx)()

	var (
		data  []byte
		found bool
	)
	err := sqlitex.Execute(s.conn, `SELECT layout FROM pages WHERE slug = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) (err error) {
				found = true
				data, err = io.ReadAll(stmt.ColumnReader(0))
				return err
			}})
	if err != nil {
		return nil, fmt.Errorf("unable to read page %q: %w", key, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return data, nil
}

// Delete removes stored page.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := slug.Make(name)

	defer s.lock(ctx)()

	if err := sqlitex.Execute(s.conn, `DELETE FROM pages WHERE slug = ?`, &sqlitex.ExecOptions{Args: []any{key}}); err != nil {
		return fmt.Errorf("unable to delete page %q: %w", key, err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return nil
}

// List returns stored pages in natural order of their names.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer s.lock(ctx)()

	var entries []Entry
	err := sqlitex.Execute(s.conn, `SELECT slug, title, updated FROM pages`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			entries = append(entries, Entry{
				Slug:    stmt.ColumnText(0),
				Title:   stmt.ColumnText(1),
				Updated: time.Unix(stmt.ColumnInt64(2), 0),
			})
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list pages: %w", err)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case natural.Less(a.Slug, b.Slug):
			return -1
		case natural.Less(b.Slug, a.Slug):
			return 1
		}
		return 0
	})
	return entries, nil
}
