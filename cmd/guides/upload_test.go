package main

import (
	"os"
	"path/filepath"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24"><path d="M4 4h16v16H4z" fill="#ff0000"/></svg>`

func Test_GroupsFromDir(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"zebra.png":  "raster",
		"zebra.svg":  testSVG,
		"apple.png":  "raster",
		"apple.svg":  testSVG,
		"mango.jpeg": "raster",
		"mango.svg":  testSVG,
		"orphan.png": "raster",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0644))
	}

	cmd := &UploadCommand{Dir: dir, Category: 1}
	groups, err := cmd.groupsFromDir()
	require.NoError(t, err)

	// Pairs are matched by base name and ordered alphabetically on every
	// run; the unpaired image is skipped
	require.Len(t, groups, 3)
	assert.Equal(t, "apple", groups[0].FileName)
	assert.Equal(t, "mango", groups[1].FileName)
	assert.Equal(t, "zebra", groups[2].FileName)
}

func Test_GroupsFromDir_empty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "only.png"), []byte("raster"), 0644))

	cmd := &UploadCommand{Dir: dir, Category: 1}
	_, err := cmd.groupsFromDir()
	assert.Error(t, err)
}
