package content

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, name, data string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, []byte(data), 0o644))
}

func TestLoaderMarkdown(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/Hello World.md", `---
title: Hello World
description: First post
imgUrl: https://www.elian.codes/img/hello.png
author: Elian Van Cutsem
createdAt: 2021-03-01T10:00:00Z
tags:
  - Nuxt.js
  - programming
---
# Hello

Some **text**.
`)

	records, err := NewLoader(fs, "content").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "hello-world", r.Slug)
	assert.Equal(t, "/blog/hello-world", r.Path)
	assert.Equal(t, "/blog", r.Dir)
	assert.Equal(t, "blog", r.Collection)
	assert.Equal(t, ".md", r.Extension)
	assert.Equal(t, "Hello World", r.Title)
	assert.Equal(t, []string{"Nuxt.js", "programming"}, r.Tags)
	assert.Equal(t, time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC), r.CreatedAt)

	text, ok := r.Body()
	require.True(t, ok)
	assert.Contains(t, text, "# Hello")
	assert.NotContains(t, text, "title:")
}

func TestLoaderRootIndex(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/index.md", "---\ntitle: Home\n---\nWelcome\n")

	records, err := NewLoader(fs, "content").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/index", records[0].Path)
	assert.Equal(t, "/", records[0].Dir)
	assert.Equal(t, "", records[0].Collection)
}

func TestLoaderYAMLHasNoBody(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/projects/folio.yaml", "title: Folio\ncreatedAt: 2020-01-02\n")
	writeFile(t, fs, "content/projects/logo.png", "not content")

	records, err := NewLoader(fs, "content").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/projects/folio", records[0].Path)
	_, ok := records[0].Body()
	assert.False(t, ok)
}

func TestLoaderFallsBackToModTime(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/undated.md", "---\ntitle: Undated\n---\nbody\n")
	mod := time.Date(2019, 7, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("content/blog/undated.md", mod, mod))

	records, err := NewLoader(fs, "content").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].CreatedAt.Equal(mod))
}

func TestLoaderMalformedDate(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/bad.md", "---\ntitle: Bad\ncreatedAt: not a date\n---\nbody\n")

	_, err := NewLoader(fs, "content").Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderMissingDirectory(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs(), "content").Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderCustomHook(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/a.md", "---\ntitle: A\n---\nbody\n")

	records, err := NewLoader(fs, "content", func(doc *Document) {
		doc.Author = "hooked"
	}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hooked", records[0].Author)
	_, ok := records[0].Body()
	assert.False(t, ok, "custom hooks replace the default body hook")
}

func TestLoaderRejectsSlugCollision(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/hello-world.md", "---\ntitle: A\n---\nA\n")
	writeFile(t, fs, "content/blog/Hello World.md", "---\ntitle: B\n---\nB\n")

	_, err := NewLoader(fs, "content").Load(context.Background())
	require.ErrorIs(t, err, ErrDuplicatePath)
	assert.Contains(t, err.Error(), "/blog/hello-world")
}

func TestLoaderRejectsSameNameDifferentExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/hello.md", "---\ntitle: Post\n---\nBody\n")
	writeFile(t, fs, "content/blog/hello.yaml", "title: Data\n")

	_, err := NewLoader(fs, "content").Load(context.Background())
	require.ErrorIs(t, err, ErrDuplicatePath)
}

func TestLoaderFoldsAccentsInSlug(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/Café.md", "---\ntitle: Café\n---\nBody\n")

	records, err := NewLoader(fs, "content").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/blog/cafe", records[0].Path)
}

func TestLoaderRejectsEmptySlug(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "content/blog/!!!.md", "---\ntitle: Bang\n---\nBody\n")

	_, err := NewLoader(fs, "content").Load(context.Background())
	assert.ErrorContains(t, err, "empty slug")
}
