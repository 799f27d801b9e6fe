package folio

import "embed"

// EmbeddedAssets contains static assets shipped with folio: theme.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
