package migrations

import "embed"

// FS contains the embedded SQL migrations, one directory per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
