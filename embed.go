package carehub

import "embed"

// EmbeddedAssets contains static assets shipped with the site:
// carehub.css, toc.js (table of contents highlighting) and filter.js
// (conditions search and category chips).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

var embeddedAssetNames = []string{"carehub.css", "toc.js", "filter.js"}
