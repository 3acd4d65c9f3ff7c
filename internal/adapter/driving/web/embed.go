package web

import "embed"

// StaticFS holds the embedded panel stylesheet.
//
//go:embed static/*
var StaticFS embed.FS
