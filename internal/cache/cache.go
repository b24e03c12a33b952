// Content-addressed page cache.
// Every URL hashes to a stable fingerprint that names its on-disk artifacts.

package cache

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrMiss is returned by Get when no entry exists for the key.
var ErrMiss = errors.New("cache: miss")

// ErrEmptyFetch is returned by GetOrFetch when the fetch function produced
// nothing. Empty results are never persisted, so the next call retries.
var ErrEmptyFetch = errors.New("cache: fetch returned no content")

// Store is a minimal content-addressed key/value store. The filesystem
// implementation below is the default; anything that can hold named blobs
// (embedded DB, object store) could back it instead.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Exists(key string) bool
	// Age reports how long ago the entry for key was written.
	Age(key string) (time.Duration, error)
	// Quarantine relocates every artifact whose name starts with prefix to a
	// holding area for human inspection, instead of deleting it.
	Quarantine(prefix string) error
}

// Fingerprint returns the stable hex digest used to key a URL's artifacts.
// md5 is fine here: the digest names files, it is not a security boundary.
func Fingerprint(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// SummaryKey names the cached job summary derived from a URL's page.
func SummaryKey(url string) string {
	return Fingerprint(url) + "_summary.txt"
}

// RatingKey names the cached resume-match rating derived from a URL's page.
func RatingKey(url string) string {
	return Fingerprint(url) + "_rating.txt"
}

// FileStore keeps one flat file per key under a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the cache directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key)
}

func (fs *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, ErrMiss
	}
	return data, err
}

func (fs *FileStore) Put(key string, data []byte) error {
	return os.WriteFile(fs.path(key), data, 0644)
}

func (fs *FileStore) Exists(key string) bool {
	_, err := os.Stat(fs.path(key))
	return err == nil
}

func (fs *FileStore) Age(key string) (time.Duration, error) {
	info, err := os.Stat(fs.path(key))
	if os.IsNotExist(err) {
		return 0, ErrMiss
	}
	if err != nil {
		return 0, err
	}
	return time.Since(info.ModTime()), nil
}

func (fs *FileStore) Quarantine(prefix string) error {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return err
	}
	removedDir := filepath.Join(fs.dir, "removed")
	for _, entry := range entries {
		if entry.IsDir() || len(entry.Name()) < len(prefix) || entry.Name()[:len(prefix)] != prefix {
			continue
		}
		if err := os.MkdirAll(removedDir, 0755); err != nil {
			return err
		}
		src := filepath.Join(fs.dir, entry.Name())
		dst := filepath.Join(removedDir, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("failed to quarantine %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// GetOrFetch returns the cached entry for key if it is younger than ttl,
// otherwise invokes fetch and persists a non-empty result. A ttl < 0 means
// the entry never expires. Failed or empty fetches are not cached, so a
// future call will retry. Concurrent callers may race on the same key;
// last writer wins, which is acceptable because fetches are idempotent.
func GetOrFetch(store Store, key string, ttl time.Duration, fetch func() ([]byte, error)) ([]byte, error) {
	if store.Exists(key) {
		age, err := store.Age(key)
		if err == nil && (ttl < 0 || age <= ttl) {
			return store.Get(key)
		}
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFetch
	}

	if err := store.Put(key, data); err != nil {
		return nil, fmt.Errorf("failed to persist cache entry %s: %w", key, err)
	}
	return data, nil
}
