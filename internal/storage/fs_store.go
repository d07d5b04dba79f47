package storage

import (
	"bufio"
	"os"
	"strings"
)

// FSStore implements Store directly on the operating system filesystem.
type FSStore struct{}

// NewFSStore creates a new filesystem-backed store.
func NewFSStore() *FSStore {
	return &FSStore{}
}

func (s *FSStore) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *FSStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (s *FSStore) EachLine(path string, fn LineFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		// Scanner strips the \n; source files are CRLF so drop the \r too.
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if !fn(line) {
			return nil
		}
	}
	return scanner.Err()
}

func (s *FSStore) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (s *FSStore) NewLineWriter(path string) (LineWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &fsLineWriter{file: f, buf: bufio.NewWriter(f)}, nil
}

func (s *FSStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *FSStore) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o750)
}

func (s *FSStore) RemoveAll(dir string) error {
	return os.RemoveAll(dir)
}

type fsLineWriter struct {
	file *os.File
	buf  *bufio.Writer
}

func (w *fsLineWriter) WriteString(s string) error {
	_, err := w.buf.WriteString(s)
	return err
}

func (w *fsLineWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
