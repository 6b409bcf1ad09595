package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeGuard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.dll")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	g := NewChangeGuard()
	assert.True(t, g.Changed(path), "unknown file counts as changed")

	g.Remember(path)
	assert.False(t, g.Changed(path))

	require.NoError(t, os.WriteFile(path, []byte("version two"), 0644))
	assert.True(t, g.Changed(path))

	g.Remember(path)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.True(t, g.Changed(path))

	require.NoError(t, os.Remove(path))
	assert.False(t, g.Changed(path), "missing file is not a change")
}
