package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elianvancutsem/folio/content"
)

func TestToTitle(t *testing.T) {
	assert.Equal(t, "My Blog", toTitle("my-blog"))
	assert.Equal(t, "Myblog", toTitle("myblog"))
}

func TestRunNew(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	require.NoError(t, runNew(fs, &out, "github.com/me/my-site", "https://example.com/"))

	cfg, err := afero.ReadFile(fs, filepath.Join("my-site", "folio.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "hostname: https://example.com\n")
	assert.Contains(t, string(cfg), "title: My Site")
	assert.Contains(t, out.String(), "created my-site/folio.yaml")

	records, err := content.NewLoader(fs, filepath.Join("my-site", "content")).Load(context.Background())
	require.NoError(t, err)
	for _, r := range records {
		assert.NoError(t, r.Validate(), r.Path)
	}
	paths := make([]string, 0, len(records))
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	assert.ElementsMatch(t, []string{"/index", "/blog/hello-world", "/projects/my-site"}, paths)
}

func TestRunNewExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("taken", 0o755))

	err := runNew(fs, &bytes.Buffer{}, "taken", "http://localhost:3000")
	assert.ErrorContains(t, err, "already exists")
}
