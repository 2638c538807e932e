package script

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reqsink/reqsink/internal/files"
	"github.com/reqsink/reqsink/pkg/snapshot"
)

var (
	// ErrStorageUnavailable means the script directory or file
	// cannot be created or written.
	ErrStorageUnavailable = errors.New("script storage unavailable")

	// ErrCorruptScript means the script file exists but cannot be read
	// back for appending. The file is overwritten with a fresh one.
	ErrCorruptScript = errors.New("corrupt script file")
)

// Store records snapshots into a named shell script.
//
// In group mode the script grows monotonically: every Record appends a new
// command block, including repeats. Without group mode the file is rewritten
// with exactly one block on every call. The file is left executable after
// every write.
type Store struct {
	Name  string
	Dir   string
	Group bool

	mu sync.Mutex

	// replaced in tests for deterministic output
	now func() time.Time
}

// NewStore creates a store for the named script.
// With an empty dir the script lives in a dot-prefixed
// directory in the current working directory.
func NewStore(name, dir string, group bool) *Store {
	if dir == "" {
		dir = fmt.Sprintf(".%s_scripts", name)
	}
	return &Store{
		Name:  name,
		Dir:   dir,
		Group: group,
		now:   time.Now,
	}
}

// Path returns the script file path.
func (s *Store) Path() string {
	return filepath.Join(s.Dir, s.Name+".sh")
}

// Record formats the snapshot as a curl command block and writes the script
// back to disk with executable permission.
func (s *Store) Record(snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	now := s.now()
	content := s.load(now)
	content += "\n" + Command(snap, now) + "\n"

	if err := files.SaveExecutable(s.Path(), []byte(content)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// load returns the script content the new block is appended to: the existing
// file in group mode, the bare header otherwise or when the file is absent.
func (s *Store) load(now time.Time) string {
	if !s.Group {
		return Header(s.Name, now)
	}

	contents, err := os.ReadFile(s.Path())
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Starting fresh script",
				"path", s.Path(),
				"error", ErrCorruptScript,
			)
		}
		return Header(s.Name, now)
	}
	return string(contents)
}
