package atelier

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// chat.js (the chat widget) and site.css (base styles).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
