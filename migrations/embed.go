// Package migrations holds the versioned PostgreSQL schema.
package migrations

import "embed"

// FS contains the golang-migrate up/down files.
//
//go:embed *.sql
var FS embed.FS
