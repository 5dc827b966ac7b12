// Package migrations embeds the numbered schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
