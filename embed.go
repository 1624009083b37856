package qalampress

import "embed"

// embeddedFrontend ships the default public frontend and admin panel,
// so a bare binary serves a working site. Setting STATIC_ROOT replaces
// it with files from disk.
//
//go:embed web
var embeddedFrontend embed.FS
