// Package prefs is the small persisted key-value store holding user
// preferences such as the custom settings root.
package prefs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/wrench/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// KeyCustomRoot holds the user-selected settings root
const KeyCustomRoot = "custom_root"

// Store is a string key-value store
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore persists values as a flat TOML table
type FileStore struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewFileStore returns a store backed by the file at path
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Get returns the value of key and whether it was present
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

// Delete removes key; deleting a missing key is not an error
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *FileStore) read() (map[string]string, error) {
	values := map[string]string{}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read preferences %s", s.path)
	}

	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse preferences %s", s.path)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := toml.Marshal(values)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode preferences")
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(s.path))
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write preferences %s", s.path)
	}
	return nil
}
