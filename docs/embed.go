// Package docs embeds the utpm guide into the binary.
package docs

import "embed"

// Guide holds GUIDE.md, the default topic, and one markdown file per topic under guide/.
//
//go:embed GUIDE.md guide/*.md
var Guide embed.FS
