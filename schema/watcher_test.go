package schema

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func csvLoader(path string) (*VarSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromCSVHeader(f)
}

func TestWatchDeliversInitialSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeDataset(t, path, "y,x1\n1,2\n")

	vs, w, err := Watch(path, csvLoader)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []string{"y", "x1"}, vs.Names())
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeDataset(t, path, "y,x1\n1,2\n")

	_, w, err := Watch(path, csvLoader)
	require.NoError(t, err)
	defer w.Close()

	writeDataset(t, path, "y,x1,m\n1,2,a\n")

	select {
	case vs := <-w.Updates():
		assert.Equal(t, []string{"y", "x1", "m"}, vs.Names())
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for schema reload")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	writeDataset(t, path, "y\n1\n")

	_, w, err := Watch(path, csvLoader)
	require.NoError(t, err)
	defer w.Close()

	writeDataset(t, filepath.Join(dir, "other.csv"), "a,b\n")

	select {
	case vs := <-w.Updates():
		t.Fatalf("unexpected update from sibling file: %v", vs.Names())
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingFile(t *testing.T) {
	_, _, err := Watch(filepath.Join(t.TempDir(), "absent.csv"), csvLoader)
	assert.Error(t, err)
}

func TestWatchKeepsLatestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeDataset(t, path, "y\n1\n")

	_, w, err := Watch(path, csvLoader)
	require.NoError(t, err)
	defer w.Close()

	// Two writes with no consumer in between: the undrained snapshot is
	// replaced, never queued behind.
	writeDataset(t, path, "y,x1\n1,2\n")
	time.Sleep(100 * time.Millisecond)
	writeDataset(t, path, "y,x1,m\n1,2,a\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case vs := <-w.Updates():
			if vs.Len() == 3 {
				assert.Equal(t, []string{"y", "x1", "m"}, vs.Names())
				return
			}
			// Intermediate snapshot slipped through; keep draining.
		case <-deadline:
			t.Fatal("timed out waiting for the latest snapshot")
		}
	}
}
