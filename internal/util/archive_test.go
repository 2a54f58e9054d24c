package util

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlist-hq/shortlist-api/internal/model"
)

func TestZipFilesRoundTrip(t *testing.T) {
	files := []model.GeneratedFile{
		{Path: "main.go", Content: "package main\n"},
		{Path: "internal/app/app.go", Content: "package app\n"},
		{Path: "README.md", Content: "# demo\n"},
	}

	data, err := ZipFiles("demo-project", files)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, len(files))

	seen := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		_, dup := seen[f.Name]
		require.False(t, dup, "duplicate entry %s", f.Name)
		seen[f.Name] = string(content)
	}
	assert.Equal(t, "package main\n", seen["demo-project/main.go"])
	assert.Equal(t, "package app\n", seen["demo-project/internal/app/app.go"])
	assert.Equal(t, "# demo\n", seen["demo-project/README.md"])
}

func TestZipFilesEmpty(t *testing.T) {
	data, err := ZipFiles("empty", nil)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}
