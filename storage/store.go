// Package storage persists documents in a local SQLite database keyed by name.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"bookforge/assets"
	"bookforge/document"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrQuotaExceeded = errors.New("document exceeds storage quota")
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	degraded   INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
)`

// Store is a single connection document store. Connection is guarded by mutex,
// sqlite connections must not be used concurrently.
type Store struct {
	mu       sync.Mutex
	conn     *sqlite.Conn
	maxBytes int
	log      *zap.Logger
}

// Entry describes stored document without decoding it.
type Entry struct {
	Name      string
	Bytes     int
	Degraded  bool
	UpdatedAt time.Time
}

// SaveResult reports what was actually written.
type SaveResult struct {
	Bytes    int
	Degraded bool
	// Stripped is number of inline payloads removed to fit the quota.
	Stripped int
}

// Open opens (creating when necessary) database at path. Non positive
// maxBytes disables quota.
func Open(path string, maxBytes int, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := sqlitex.ExecuteTransient(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare schema: %w", err)
	}
	return &Store{conn: conn, maxBytes: maxBytes, log: log.Named("storage")}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// lock serializes access and makes long running statements interruptible by ctx.
func (s *Store) lock(ctx context.Context) func() {
	s.mu.Lock()
	s.conn.SetInterrupt(ctx.Done())
	return func() {
		s.conn.SetInterrupt(nil)
		s.mu.Unlock()
	}
}

// Save writes document under name replacing previous version. When encoded
// document is over quota inline images are dropped and save is retried, if it
// is still too large ErrQuotaExceeded is returned and nothing is written.
func (s *Store) Save(ctx context.Context, name string, doc *document.Document) (SaveResult, error) {
	var res SaveResult

	body, err := document.Encode(doc, false)
	if err != nil {
		return res, err
	}
	if s.overQuota(body) {
		degraded, n := Degrade(doc)
		if body, err = document.Encode(degraded, false); err != nil {
			return res, err
		}
		res.Degraded, res.Stripped = true, n
		s.log.Warn("Document is over quota, inline images dropped",
			zap.String("name", name), zap.Int("stripped", n), zap.Int("bytes", len(body)), zap.Int("quota", s.maxBytes))
		if s.overQuota(body) {
			return SaveResult{}, fmt.Errorf("%w: %s is %d bytes, quota is %d", ErrQuotaExceeded, name, len(body), s.maxBytes)
		}
	}
	res.Bytes = len(body)

	defer s.lock(ctx)()
	err = sqlitex.Execute(s.conn,
		`INSERT INTO documents (name, body, degraded, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, degraded = excluded.degraded, updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{Args: []any{name, string(body), res.Degraded, time.Now().UTC().Format(time.RFC3339Nano)}})
	if err != nil {
		return SaveResult{}, fmt.Errorf("save %s: %w", name, err)
	}
	s.log.Debug("Document saved", zap.String("name", name), zap.Int("bytes", res.Bytes), zap.Bool("degraded", res.Degraded))
	return res, nil
}

func (s *Store) overQuota(body []byte) bool {
	return s.maxBytes > 0 && len(body) > s.maxBytes
}

// Load reads and normalizes document stored under name.
func (s *Store) Load(ctx context.Context, name string) (*document.Document, error) {
	var (
		body  string
		found bool
	)
	unlock := s.lock(ctx)
	err := sqlitex.Execute(s.conn, `SELECT body FROM documents WHERE name = ?`,
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				body, found = stmt.ColumnText(0), true
				return nil
			},
		})
	unlock()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	doc, err := document.Decode([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return doc, nil
}

// Exists reports whether document with name is stored.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var found bool
	defer s.lock(ctx)()
	err := sqlitex.Execute(s.conn, `SELECT 1 FROM documents WHERE name = ?`,
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(*sqlite.Stmt) error {
				found = true
				return nil
			},
		})
	return found, err
}

// List returns stored documents ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	defer s.lock(ctx)()
	err := sqlitex.Execute(s.conn, `SELECT name, length(body), degraded, updated_at FROM documents ORDER BY name`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				e := Entry{
					Name:     stmt.ColumnText(0),
					Bytes:    stmt.ColumnInt(1),
					Degraded: stmt.ColumnBool(2),
				}
				if t, err := time.Parse(time.RFC3339Nano, stmt.ColumnText(3)); err == nil {
					e.UpdatedAt = t
				}
				entries = append(entries, e)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return entries, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	defer s.lock(ctx)()
	if err := sqlitex.Execute(s.conn, `DELETE FROM documents WHERE name = ?`, &sqlitex.ExecOptions{Args: []any{name}}); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Degrade returns copy of doc without inline binary payloads: frame image
// sources and background reference bitmaps given as data URLs. Frames which
// lost their image are marked missing. Second value is number of payloads
// removed.
func Degrade(doc *document.Document) (*document.Document, int) {
	out := doc.Clone()
	var n int
	for i := range out.Pages {
		p := &out.Pages[i]
		for j := range p.Frames {
			f := &p.Frames[j]
			if assets.IsDataURL(f.Src) {
				f.Src = ""
				f.Missing = true
				n++
			}
		}
		if bg := p.BackgroundReference; bg != nil && assets.IsDataURL(bg.DataURL) {
			bg.DataURL = ""
			n++
		}
	}
	return out, n
}
