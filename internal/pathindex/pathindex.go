// Package pathindex persists the canonical path of every addressable node
// of a document to a SQLite database, so diff/patch tools can address nodes
// of a baseline document across runs without re-parsing it. A sidecar table
// maps element and attribute names to roaring bitmaps of node rowids for
// O(k) "which paths carry name X" lookups.
package pathindex

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/xaddr"
	"github.com/agentic-research/xaddr/internal/dom"
)

// Entry is one indexed node.
type Entry struct {
	Path    string
	Kind    xaddr.Kind
	Name    string
	Content string
}

// Writer builds an index database. All rows are written inside a single
// transaction, committed by Close.
type Writer struct {
	db       *sql.DB
	tx       *sql.Tx
	stmtNode *sql.Stmt
	nextID   uint32
	refs     map[string]*roaring.Bitmap
}

// Create opens (or overwrites the contents of) the database at dbPath and
// prepares it for bulk insertion.
func Create(dbPath string) (*Writer, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Bulk-insert tuning; the index is rebuilt from scratch on every run,
	// so durability of intermediate state does not matter.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		id INTEGER PRIMARY KEY,
		path TEXT UNIQUE NOT NULL,
		kind INTEGER NOT NULL,
		name TEXT,
		content TEXT
	);
	DELETE FROM nodes;

	CREATE TABLE IF NOT EXISTS name_refs (
		token TEXT PRIMARY KEY,
		bitmap BLOB
	);
	DELETE FROM name_refs;
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &Writer{db: db, refs: make(map[string]*roaring.Bitmap)}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return err
	}
	w.stmtNode, err = w.tx.Prepare(`
		INSERT OR REPLACE INTO nodes (id, path, kind, name, content)
		VALUES (?, ?, ?, ?, ?)
	`)
	return err
}

// IndexDocument writes one row per addressable node of doc and records the
// node's name in the bitmap sidecar. May be called for at most one document
// per database; paths are unique per document only.
func (w *Writer) IndexDocument(doc *dom.Document) error {
	return dom.WalkAddressable(doc, func(path string, n xaddr.Node) error {
		id := w.nextID
		w.nextID++

		content := n.Data()
		if xaddr.IsText(n) {
			content = xaddr.MergedText(n)
		}
		if _, err := w.stmtNode.Exec(id, path, int(n.Kind()), n.Name(), content); err != nil {
			return fmt.Errorf("insert node %s: %w", path, err)
		}

		if name := n.Name(); name != "" && !strings.HasPrefix(name, "#") {
			bm, ok := w.refs[name]
			if !ok {
				bm = roaring.New()
				w.refs[name] = bm
			}
			bm.Add(id)
		}
		return nil
	})
}

// Close flushes the name bitmaps, commits the transaction and closes the
// database.
func (w *Writer) Close() error {
	defer func() { _ = w.db.Close() }()

	if err := w.flushRefs(); err != nil {
		_ = w.tx.Rollback()
		return err
	}
	if w.stmtNode != nil {
		_ = w.stmtNode.Close()
	}
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

func (w *Writer) flushRefs() error {
	stmt, err := w.tx.Prepare(`INSERT OR REPLACE INTO name_refs (token, bitmap) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare name_refs insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var buf bytes.Buffer
	for token, bm := range w.refs {
		buf.Reset()
		if _, err := bm.WriteTo(&buf); err != nil {
			return fmt.Errorf("serialize bitmap for %s: %w", token, err)
		}
		if _, err := stmt.Exec(token, buf.Bytes()); err != nil {
			return fmt.Errorf("insert ref %s: %w", token, err)
		}
	}
	return nil
}

// Open opens an existing index database for reading.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	return db, nil
}

// Lookup returns the entry stored for a path, or nil if the path is not
// indexed.
func Lookup(db *sql.DB, path string) (*Entry, error) {
	row := db.QueryRow(`SELECT path, kind, name, content FROM nodes WHERE path = ?`, path)
	var e Entry
	var kind int
	if err := row.Scan(&e.Path, &kind, &e.Name, &e.Content); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %s: %w", path, err)
	}
	e.Kind = xaddr.Kind(kind)
	return &e, nil
}

// PathsByName returns the paths of all indexed nodes carrying the given
// element or attribute name, in document order.
func PathsByName(db *sql.DB, name string) ([]string, error) {
	row := db.QueryRow(`SELECT bitmap FROM name_refs WHERE token = ?`, name)
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("name_refs %s: %w", name, err)
	}

	bm := roaring.New()
	if _, err := bm.ReadFrom(bytes.NewReader(blob)); err != nil {
		return nil, fmt.Errorf("deserialize bitmap for %s: %w", name, err)
	}

	ids := bm.ToArray()
	if len(ids) == 0 {
		return nil, nil
	}

	// One batched query; rowids ascend in document order, so ORDER BY id
	// preserves it.
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := db.Query(`SELECT path FROM nodes WHERE id IN (`+placeholders+`) ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("paths for %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("paths for %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("paths for %s: %w", name, err)
	}
	return paths, nil
}
