// Package localstore is a file-backed analogue of browser local storage: a
// small set of named JSON values persisted under versioned keys. It is the
// fallback side of the site's dual-write persistence — every content
// mutation is written through here synchronously, so the on-disk copy always
// matches the in-memory state regardless of what the remote mirror does.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Versioned key names. Format changes get a new prefix rather than a
// migration of old values.
const (
	KeyPosts   = "v3_posts"
	KeyAdmin   = "v3_admin"
	KeyAvatar  = "v3_avatar"
	KeyGallery = "v3_gallery"
)

// Store persists named JSON values as files in a single directory.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open creates (if needed) and returns a Store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	// Keys are fixed constants, but guard against separators anyway.
	return filepath.Join(s.dir, strings.ReplaceAll(key, string(os.PathSeparator), "_")+".json")
}

// Set marshals v and writes it under key. The write is synchronous; when Set
// returns the value is durable.
func (s *Store) Set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: marshal %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("localstore: rename %s: %w", key, err)
	}
	return nil
}

// Get unmarshals the value under key into v. It reports whether the key was
// present; a missing key leaves v untouched and is not an error.
func (s *Store) Get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path(key))
	s.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("localstore: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("localstore: parse %s: %w", key, err)
	}
	return true, nil
}

// Raw returns the serialized bytes stored under key, or nil if absent.
func (s *Store) Raw(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil
	}
	return data
}

// Delete removes the value under key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("localstore: delete %s: %w", key, err)
	}
	return nil
}
