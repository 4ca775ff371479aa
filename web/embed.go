// Package web embeds the server-rendered UI assets.
package web

import "embed"

// TemplatesFS holds the HTML templates, one file per page plus shared
// header/footer partials.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds css and js served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
