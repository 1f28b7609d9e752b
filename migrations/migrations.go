// Package migrations embeds the schema migrations for each SQL provider.
package migrations

import "embed"

// FS holds sqlite/*.sql and postgres/*.sql
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
