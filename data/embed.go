// Package data embeds the default linguistic resource tables.
package data

import (
	"embed"
	"io/fs"
)

//go:embed resources
var resources embed.FS

// Resources returns the embedded resource directory: manifest.yaml,
// dialects/*.yaml and morphology.yaml at its root.
func Resources() (fs.FS, error) {
	return fs.Sub(resources, "resources")
}
