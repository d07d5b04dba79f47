package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, t.TempDir(), func(context.Context) error { return nil })
	require.NoError(t, err)
}

func TestRun_MissingDirFails(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "absent"),
		func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestRun_RebuildsAfterChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rebuilds atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, dir, func(context.Context) error {
			rebuilds.Add(1)
			return nil
		})
	}()

	// Give the watcher a moment to register before touching the tree.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.md"), []byte("x\r\n"), 0o644))

	require.Eventually(t, func() bool {
		return rebuilds.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRun_CoalescesEventBursts(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rebuilds atomic.Int32
	go func() {
		_ = Run(ctx, dir, func(context.Context) error {
			rebuilds.Add(1)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "page.md"), []byte("x\r\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return rebuilds.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)

	// The burst fits inside one debounce window, so one rebuild serves it.
	time.Sleep(2 * debounceDelay)
	require.LessOrEqual(t, rebuilds.Load(), int32(2))
}
