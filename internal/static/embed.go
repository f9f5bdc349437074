package static

import (
	"embed"
	"io/fs"
)

//go:embed index.html app.js style.css
var embedded embed.FS

// FS exposes the bundled single-page app.
func FS() fs.FS {
	return embedded
}
