// Package storage provides the filesystem capability set the build pipeline
// consumes: directory listing, whole-file reads and writes, line streaming,
// line-buffered writers, and recursive create/delete.
package storage

// LineFunc receives one line (terminator stripped). Returning false stops the
// stream early without error.
type LineFunc func(line string) bool

// LineWriter is a buffered, line-oriented file writer. Nothing is guaranteed
// to be on disk until Close returns.
type LineWriter interface {
	WriteString(s string) error
	Close() error
}

// Store abstracts the filesystem operations used by the build pipeline so
// tests can substitute an in-memory implementation.
type Store interface {
	// ListDir returns the names of the immediate entries of dir in lexical order.
	ListDir(dir string) ([]string, error)

	// ReadFile returns the whole content of the file at path.
	ReadFile(path string) ([]byte, error)

	// EachLine streams the file at path line by line. CR/LF terminators are
	// stripped before fn sees the line.
	EachLine(path string, fn LineFunc) error

	// WriteFile replaces the file at path with data.
	WriteFile(path string, data []byte) error

	// NewLineWriter opens a buffered writer that replaces the file at path.
	NewLineWriter(path string) (LineWriter, error)

	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// RemoveAll deletes dir and everything below it. Missing dir is not an error.
	RemoveAll(dir string) error
}
