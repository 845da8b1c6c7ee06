package drafts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockTimeout   = 3 * time.Second
	lockRetryStep = 100 * time.Millisecond
)

// FileStore keeps a draft in a JSON file. A sibling ".lock" file serialises
// access between processes sharing the same draft.
type FileStore struct {
	path     string
	fileLock *flock.Flock
	mu       sync.Mutex
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		fileLock: flock.New(path + ".lock"),
	}
}

// Path returns the draft file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store. A missing or empty file yields ErrNotFound.
func (s *FileStore) Load(ctx context.Context) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock(ctx, false)
	if err != nil {
		return Draft{}, err
	}
	defer unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("read draft: %w", err)
	}
	if len(data) == 0 {
		return Draft{}, ErrNotFound
	}
	return Decode(data)
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, d Draft) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create draft dir: %w", err)
		}
	}

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("rename draft: %w", err)
	}
	return nil
}

// lock acquires the cross-process lock, shared for reads and exclusive for
// writes, giving up after lockTimeout.
func (s *FileStore) lock(ctx context.Context, exclusive bool) (func(), error) {
	if !exclusive {
		if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, os.ErrNotExist) {
			// Nothing to read and nowhere to put a lock file.
			return func() {}, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = s.fileLock.TryLockContext(ctx, lockRetryStep)
	} else {
		locked, err = s.fileLock.TryRLockContext(ctx, lockRetryStep)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire draft lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire draft lock on %s", s.path)
	}
	return func() { _ = s.fileLock.Unlock() }, nil
}
