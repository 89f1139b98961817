// Package migrations embeds the SQL schema migrations for the lead store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
