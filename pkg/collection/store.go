package collection

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/reqsink/reqsink/internal/files"
	"github.com/reqsink/reqsink/pkg/snapshot"
)

var (
	// ErrStorageUnavailable means the collection directory or file
	// cannot be created or written.
	ErrStorageUnavailable = errors.New("collection storage unavailable")

	// ErrCorruptCollection means the file on disk exists but is not a
	// parseable collection document. The file is overwritten with a
	// fresh one.
	ErrCorruptCollection = errors.New("corrupt collection document")
)

// Store records snapshots into a named collection file.
//
// Every Record call is a self-contained read-modify-write: the document is
// loaded from disk (or initialized), merged and written back in full, so a
// reader between two calls always sees a complete document. Writers within
// one process are serialized, concurrent writers from multiple processes are
// not supported.
type Store struct {
	Name string
	Dir  string

	mu sync.Mutex
}

// NewStore creates a store for the named collection.
// With an empty dir the collection lives in a dot-prefixed
// directory in the current working directory.
func NewStore(name, dir string) *Store {
	if dir == "" {
		dir = fmt.Sprintf(".%s_collections", name)
	}
	return &Store{
		Name: name,
		Dir:  dir,
	}
}

// Path returns the collection file path.
func (s *Store) Path() string {
	return filepath.Join(s.Dir, s.Name+".json")
}

// Record merges the snapshot into the collection document and writes it back.
// An existing item with the same method and path is replaced at its position,
// a new one is appended.
func (s *Store) Record(snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	doc := s.load()
	merge(doc, NewItem(snap))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := files.SaveFile(s.Path(), data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// load reads the collection from disk.
// A missing or unparseable file yields a fresh document.
func (s *Store) load() *Collection {
	contents, err := os.ReadFile(s.Path())
	if err != nil {
		return NewCollection(s.Name)
	}

	doc := &Collection{}
	if err := json.Unmarshal(contents, doc); err != nil || doc.Info == nil {
		slog.Warn("Starting fresh collection",
			"path", s.Path(),
			"error", ErrCorruptCollection,
		)
		return NewCollection(s.Name)
	}

	if doc.Item == nil {
		doc.Item = make([]*Item, 0)
	}
	return doc
}

func merge(doc *Collection, item *Item) {
	for i, existing := range doc.Item {
		if existing.Name == item.Name {
			doc.Item[i] = item
			return
		}
	}
	doc.Item = append(doc.Item, item)
}
