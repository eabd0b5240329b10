package appfs

import "embed"

//go:embed migrations syllabus
var FS embed.FS
