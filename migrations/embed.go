// Package migrations holds the goose SQL migrations of the journal schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
