package watch

// Test Plan for the change watcher:
// - A burst of writes fires one debounced callback with the changed files
// - Files inside skipped directories never reach the callback
// - New subdirectories are picked up after creation
// - Stop is idempotent and safe before Start

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectBatches starts a watcher and returns a function that waits for the
// next callback batch.
func collectBatches(t *testing.T, root string, skip []string) (*Watcher, chan []string) {
	t.Helper()

	w, err := New(root, skip)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	w.debounceTime = 50 * time.Millisecond

	batches := make(chan []string, 10)
	require.NoError(t, w.Start(context.Background(), func(files []string) {
		batches <- files
	}))

	return w, batches
}

func waitForBatch(t *testing.T, batches chan []string) []string {
	t.Helper()
	select {
	case batch := <-batches:
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher callback")
		return nil
	}
}

func TestWatcher_DebouncesBurstIntoOneBatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, batches := collectBatches(t, root, nil)

	a := filepath.Join(root, "a.py")
	b := filepath.Join(root, "b.py")
	require.NoError(t, os.WriteFile(a, []byte("x = 1\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("y = 2\n"), 0644))

	batch := waitForBatch(t, batches)
	assert.Contains(t, batch, a)
	assert.Contains(t, batch, b)
}

func TestWatcher_SkipsIgnoredDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	skipped := filepath.Join(root, "node_modules")
	require.NoError(t, os.MkdirAll(skipped, 0755))

	_, batches := collectBatches(t, root, []string{"node_modules"})

	require.NoError(t, os.WriteFile(filepath.Join(skipped, "dep.js"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.js"), []byte("y"), 0644))

	batch := waitForBatch(t, batches)
	assert.Contains(t, batch, filepath.Join(root, "main.js"))
	for _, file := range batch {
		assert.NotContains(t, file, "node_modules")
	}
}

func TestWatcher_PicksUpNewDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, batches := collectBatches(t, root, nil)

	newDir := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(newDir, 0755))
	// Give the event loop a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)

	inner := filepath.Join(newDir, "util.py")
	require.NoError(t, os.WriteFile(inner, []byte("z = 3\n"), 0644))

	found := false
	deadline := time.After(5 * time.Second)
	for !found {
		select {
		case batch := <-batches:
			for _, file := range batch {
				if file == inner {
					found = true
				}
			}
		case <-deadline:
			t.Fatal("new-directory file change never reported")
		}
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	wg.Wait()
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}
