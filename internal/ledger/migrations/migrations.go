// Package migrations embeds the ledger schema migrations applied with
// goose at open time.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
