package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	content := "jobs:\n  - input: a.html\n    output: a.out.html\n  - input: b.html\n    output: b.out.html\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := loadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Jobs, 2)
	assert.Equal(t, Job{Input: "a.html", Output: "a.out.html"}, m.Jobs[0])
	assert.Equal(t, Job{Input: "b.html", Output: "b.out.html"}, m.Jobs[1])
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := loadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
