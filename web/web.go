package web

import "embed"

// Templates holds the page templates compiled into the binary.
//
//go:embed templates
var Templates embed.FS

// Static holds the client assets served under /static.
//
//go:embed static
var Static embed.FS
