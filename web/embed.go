package web

import "embed"

// BuildFS embeds the pre-built front-end bundle served at the root path.
//
//go:embed build
var BuildFS embed.FS
