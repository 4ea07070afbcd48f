package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatchAdapter_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.arxml")
	other := filepath.Join(dir, "other.arxml")
	require.NoError(t, os.WriteFile(path, []byte("<AUTOSAR/>"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- NewFileWatchAdapter().Watch(ctx, path, 20*time.Millisecond, func() {
			calls.Add(1)
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("<AUTOSAR/>"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("<AUTOSAR></AUTOSAR>"), 0644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFileWatchAdapter_MissingDirectory(t *testing.T) {
	err := NewFileWatchAdapter().Watch(context.Background(), "/nonexistent/dir/model.arxml", 0, func() {})
	require.Error(t, err)
}
