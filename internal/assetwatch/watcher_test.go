package assetwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

func TestWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0o644))

	w, err := New(path, testDebounce)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("v 1 0 0\n"), 0o644))

	select {
	case got := <-w.Changes():
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path, testDebounce)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.obj"), []byte("x"), 0o644))

	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change %s", got)
	case <-time.After(10 * testDebounce):
	}
}

func TestRelevant(t *testing.T) {
	w := &Watcher{path: filepath.Join("/models", "a.obj")}
	assert.True(t, w.relevant(fsnotify.Event{Name: "/models/a.obj", Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/models/a.obj", Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/models/a.obj", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/models/b.obj", Op: fsnotify.Write}))
}

func TestNotifyCollapses(t *testing.T) {
	w := &Watcher{path: "/m.obj", changes: make(chan string, 1)}
	w.notify()
	w.notify()
	assert.Len(t, w.changes, 1)
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.obj")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	w, err := New(path, testDebounce)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "m.obj"), testDebounce)
	assert.Error(t, err)
}
