package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSStore_WriteReadRoundTrip(t *testing.T) {
	store := NewFSStore()
	path := filepath.Join(t.TempDir(), "file.md")

	require.NoError(t, store.WriteFile(path, []byte("hello\r\nworld\r\n")))

	data, err := store.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\r\nworld\r\n", string(data))
}

func TestFSStore_EachLineStripsCRLF(t *testing.T) {
	store := NewFSStore()
	path := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\nthree\r\n"), 0o644))

	var lines []string
	err := store.EachLine(path, func(line string) bool {
		lines = append(lines, line)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestFSStore_EachLineStopsEarly(t *testing.T) {
	store := NewFSStore()
	path := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\r\nthree\r\n"), 0o644))

	var lines []string
	err := store.EachLine(path, func(line string) bool {
		lines = append(lines, line)
		return len(lines) < 2
	})
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, lines)
}

func TestFSStore_ListDir(t *testing.T) {
	store := NewFSStore()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))

	names, err := store.ListDir(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.md", "b.md", "sub"}, names)
}

func TestFSStore_LineWriter(t *testing.T) {
	store := NewFSStore()
	path := filepath.Join(t.TempDir(), "out.md")

	w, err := store.NewLineWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteString("first\r\n"))
	require.NoError(t, w.WriteString("second\r\n"))
	require.NoError(t, w.Close())

	data, err := store.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first\r\nsecond\r\n", string(data))
}

func TestFSStore_ExistsAndRemoveAll(t *testing.T) {
	store := NewFSStore()
	dir := filepath.Join(t.TempDir(), "book")

	require.False(t, store.Exists(dir))
	require.NoError(t, store.MkdirAll(dir))
	require.True(t, store.Exists(dir))
	require.NoError(t, store.WriteFile(filepath.Join(dir, "x.md"), []byte("x")))

	require.NoError(t, store.RemoveAll(dir))
	require.False(t, store.Exists(dir))
	// Removing a missing directory is not an error.
	require.NoError(t, store.RemoveAll(dir))
}

func TestMockStore_ListDirAndRemoveAll(t *testing.T) {
	store := NewMockStore().
		AddFile("proj/src/chapter01/01-node.md", "x").
		AddFile("proj/src/chapter01/02-ide.md", "y").
		AddFile("proj/src/preface/pre.md", "z")

	names, err := store.ListDir("proj/src")
	require.NoError(t, err)
	require.Equal(t, []string{"chapter01", "preface"}, names)

	names, err = store.ListDir("proj/src/chapter01")
	require.NoError(t, err)
	require.Equal(t, []string{"01-node.md", "02-ide.md"}, names)

	require.NoError(t, store.RemoveAll("proj/src/chapter01"))
	require.False(t, store.Exists("proj/src/chapter01/01-node.md"))
	require.True(t, store.Exists("proj/src/preface/pre.md"))
}

func TestMockStore_InjectedWriteFailure(t *testing.T) {
	store := NewMockStore()
	store.FailWrites["proj/out.md"] = os.ErrPermission

	err := store.WriteFile("proj/out.md", []byte("x"))
	require.ErrorIs(t, err, os.ErrPermission)

	_, err = store.NewLineWriter("proj/out.md")
	require.ErrorIs(t, err, os.ErrPermission)
}
