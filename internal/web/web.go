// Package web embeds the browser client: a single page that connects to /ws,
// prints every frame it receives and reconnects five seconds after a disconnect.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Static returns the embedded site rooted at its top directory.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
