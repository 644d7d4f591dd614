// Package static embeds the site's stylesheets and browser test scripts.
package static

import "embed"

//go:embed css qa
var Files embed.FS
