package logging

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyFileRollsOnDayChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")

	f, err := NewDailyFile(path)
	require.NoError(t, err)
	defer f.Close()

	now := time.Date(2026, 3, 1, 23, 59, 0, 0, time.Local)
	f.now = func() time.Time { return now }

	_, err = f.Write([]byte("first day\n"))
	require.NoError(t, err)
	_, err = f.Write([]byte("still first day\n"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	now = now.Add(2 * time.Minute)
	_, err = f.Write([]byte("second day\n"))
	require.NoError(t, err)

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "previous day's file is kept")

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second day\n", string(current))

	rolled, err := os.ReadFile(filepath.Join(dir, "log20260301.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first day\nstill first day\n", string(rolled))
}

func TestDailyFileRollsStaleFileOnFirstWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("yesterday\n"), 0o644))

	yesterday := time.Now().Add(-36 * time.Hour)
	require.NoError(t, os.Chtimes(path, yesterday, yesterday))

	f, err := NewDailyFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("today\n"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "today\n", string(current))
	assert.FileExists(t, filepath.Join(dir, "log"+yesterday.Format("20060102")+".txt"))
}

func TestRolledNameAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")

	assert.Equal(t, filepath.Join(dir, "log20260301.txt"), rolledName(path, "20260301"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "log20260301.txt"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "log20260301_001.txt"), rolledName(path, "20260301"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "log20260301_001.txt"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "log20260301_002.txt"), rolledName(path, "20260301"))
}

func TestDailyFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs", "log.txt")

	f, err := NewDailyFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, path, f.Filename())
}

func TestDailyFileConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	f, err := NewDailyFile(path)
	require.NoError(t, err)
	defer f.Close()

	const writers, lines = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < lines; j++ {
				_, _ = f.Write([]byte("0123456789\n"))
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, writers*lines*len("0123456789\n"))
}
