// Package migrations carries the statute store schema as embedded bun SQL
// migrations, so the binaries migrate without a source checkout around.
package migrations

import "embed"

//go:embed *.sql
var sqlFiles embed.FS

// FS exposes the embedded migration files.
func FS() embed.FS {
	return sqlFiles
}
