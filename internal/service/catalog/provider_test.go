package catalog

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

func TestProviderReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.json")

	p := NewProvider(NewLoader(nil), path, "", nil)
	assert.True(t, p.Snapshot().Degraded)

	var notified atomic.Int32
	p.OnReload(func(c *Catalog) {
		notified.Add(1)
	})

	writeFile(t, dir, "tools.json", `{"tools": [{"name": "A", "url": "https://a.example", "category": "c", "subcategory": "s"}]}`)
	c := p.Reload()
	assert.False(t, c.Degraded)
	assert.Equal(t, 1, c.Len())
	assert.Same(t, c, p.Snapshot())
	assert.Equal(t, int32(1), notified.Load())
	assert.Equal(t, uint64(1), p.Generation())
}

func TestProviderWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tools.json", `{"tools": [{"name": "A", "url": "https://a.example", "category": "c", "subcategory": "s"}]}`)

	p := NewProvider(NewLoader(nil), path, "", nil)
	require.Equal(t, 1, p.Snapshot().Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, p.Watch(ctx, 20*time.Millisecond))

	require.NoError(t, os.WriteFile(path, []byte(`{"tools": [
		{"name": "A", "url": "https://a.example", "category": "c", "subcategory": "s"},
		{"name": "B", "url": "https://b.example", "category": "c", "subcategory": "s"}
	]}`), 0o644))

	assert.Eventually(t, func() bool {
		return p.Snapshot().Len() == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestProviderWatchMissingDir(t *testing.T) {
	p := NewProvider(NewLoader(nil), filepath.Join(t.TempDir(), "gone", "tools.json"), "", nil)
	err := p.Watch(context.Background(), 0)
	assert.Error(t, err)
}
