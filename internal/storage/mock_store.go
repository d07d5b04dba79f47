package storage

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
)

// MockStore is an in-memory Store for tests. Paths are treated as opaque
// slash-separated strings; parent directories spring into existence when a
// file is added. Write failures can be injected per path via FailWrites.
type MockStore struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool

	// FailWrites maps a path to the error WriteFile/NewLineWriter should
	// return for it.
	FailWrites map[string]error
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		files:      make(map[string][]byte),
		dirs:       make(map[string]bool),
		FailWrites: make(map[string]error),
	}
}

// AddFile inserts a file and registers its parent directories.
func (s *MockStore) AddFile(p, content string) *MockStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p] = []byte(content)
	s.addParents(p)
	return s
}

// Files returns a snapshot of all file paths currently stored.
func (s *MockStore) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Content returns the raw content of a stored file, or "" when absent.
func (s *MockStore) Content(p string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.files[p])
}

func (s *MockStore) addParents(p string) {
	for d := path.Dir(p); d != "." && d != "/"; d = path.Dir(d) {
		s.dirs[d] = true
	}
}

func (s *MockStore) ListDir(dir string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirs[dir] {
		return nil, fmt.Errorf("list %s: %w", dir, os.ErrNotExist)
	}
	seen := make(map[string]bool)
	for p := range s.files {
		if path.Dir(p) == dir {
			seen[path.Base(p)] = true
		}
	}
	for d := range s.dirs {
		if path.Dir(d) == dir {
			seen[path.Base(d)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MockStore) ReadFile(p string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[p]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", p, os.ErrNotExist)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MockStore) EachLine(p string, fn LineFunc) error {
	data, err := s.ReadFile(p)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		if !fn(strings.TrimSuffix(line, "\r")) {
			return nil
		}
	}
	return nil
}

func (s *MockStore) WriteFile(p string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailWrites[p]; err != nil {
		return err
	}
	s.files[p] = append([]byte(nil), data...)
	s.addParents(p)
	return nil
}

func (s *MockStore) NewLineWriter(p string) (LineWriter, error) {
	s.mu.Lock()
	if err := s.FailWrites[p]; err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()
	return &mockLineWriter{store: s, path: p}, nil
}

func (s *MockStore) Exists(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[p]; ok {
		return true
	}
	return s.dirs[p]
}

func (s *MockStore) MkdirAll(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs[dir] = true
	s.addParents(dir + "/x")
	return nil
}

func (s *MockStore) RemoveAll(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := dir + "/"
	for p := range s.files {
		if strings.HasPrefix(p, prefix) {
			delete(s.files, p)
		}
	}
	for d := range s.dirs {
		if d == dir || strings.HasPrefix(d, prefix) {
			delete(s.dirs, d)
		}
	}
	return nil
}

type mockLineWriter struct {
	store *MockStore
	path  string
	buf   strings.Builder
}

func (w *mockLineWriter) WriteString(s string) error {
	_, _ = w.buf.WriteString(s)
	return nil
}

func (w *mockLineWriter) Close() error {
	return w.store.WriteFile(w.path, []byte(w.buf.String()))
}
