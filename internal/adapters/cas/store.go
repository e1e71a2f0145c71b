// Package cas implements the persisted command to dependency store.
package cas

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
)

// formatVersion is bumped whenever the document layout changes.
// Files with another version are discarded like corrupt ones.
const formatVersion = 1

var (
	_ ports.StoreOpener     = (*Opener)(nil)
	_ ports.DependencyStore = (*Store)(nil)
)

// rawMarker starts a base64 encoded string in the document. Command lines and
// paths never contain NUL, so the marker cannot clash with a plain value.
const rawMarker = "\x00"

// document is the on-disk layout of the store.
// Command keys and dependency paths are written with encodeText.
type document struct {
	Version  int                            `json:"version"`
	Commands map[string][]domain.Dependency `json:"commands"`
}

// encodeText returns s unchanged when JSON can carry it as is. Invalid UTF-8
// would be replaced by U+FFFD, so such strings are stored as marked base64.
func encodeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return rawMarker + base64.StdEncoding.EncodeToString([]byte(s))
}

func decodeText(s string) (string, error) {
	encoded, ok := strings.CutPrefix(s, rawMarker)
	if !ok {
		return s, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func newDocument(records map[string][]domain.Dependency) document {
	doc := document{Version: formatVersion, Commands: make(map[string][]domain.Dependency, len(records))}
	for command, deps := range records {
		encoded := make([]domain.Dependency, len(deps))
		for i, dep := range deps {
			dep.Path = encodeText(dep.Path)
			encoded[i] = dep
		}
		doc.Commands[encodeText(command)] = encoded
	}
	return doc
}

// records decodes the commands of the document.
func (d document) records() (map[string][]domain.Dependency, error) {
	records := make(map[string][]domain.Dependency, len(d.Commands))
	for key, deps := range d.Commands {
		command, err := decodeText(key)
		if err != nil {
			return nil, err
		}
		decoded := make([]domain.Dependency, len(deps))
		for i, dep := range deps {
			if dep.Path, err = decodeText(dep.Path); err != nil {
				return nil, err
			}
			decoded[i] = dep
		}
		records[command] = decoded
	}
	return records, nil
}

// Opener opens JSON dependency stores.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open loads the store at path.
func (o *Opener) Open(path string) (ports.DependencyStore, domain.LoadStatus) {
	s := &Store{
		path:    filepath.Clean(path),
		records: make(map[string][]domain.Dependency),
	}
	return s, s.load()
}

// Remove deletes the store file at path.
func (o *Opener) Remove(path string) error {
	if err := os.Remove(filepath.Clean(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreRemoveFailed.Error()), "path", path)
	}
	return nil
}

// Store is the in-memory mapping of one store file.
type Store struct {
	path    string
	mu      sync.RWMutex
	records map[string][]domain.Dependency
}

// load fills the store from its file. Every failure leaves the store empty:
// a lost record only costs a re-run of its command.
func (s *Store) load() domain.LoadStatus {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.LoadMissing
		}
		return domain.LoadUnreadable
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || doc.Version != formatVersion {
		// An interrupted write or a foreign file: start over rather than fail.
		return domain.LoadCorrupt
	}

	records, err := doc.records()
	if err != nil {
		return domain.LoadCorrupt
	}
	s.records = records
	return domain.LoadOK
}

// Get returns a copy of the dependencies recorded for command.
func (s *Store) Get(command string) ([]domain.Dependency, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deps, ok := s.records[command]
	if !ok {
		return nil, false
	}
	return slices.Clone(deps), true
}

// Put replaces the dependencies recorded for command.
func (s *Store) Put(command string, deps []domain.Dependency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deps == nil {
		deps = []domain.Dependency{}
	}
	s.records[command] = slices.Clone(deps)
}

// Delete removes the record of command.
func (s *Store) Delete(command string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[command]
	delete(s.records, command)
	return ok
}

// Commands returns every recorded command in sorted order.
func (s *Store) Commands() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.records))
}

// Save writes the whole mapping to a temporary file next to the store and
// renames it into place, so readers never observe a partial document.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(newDocument(s.records), "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}

	return nil
}
