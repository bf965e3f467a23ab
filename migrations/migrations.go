// Package migrations embeds the SQL migrations so the binaries can migrate without the source tree.
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS

const Dir = "postgres"
