// Package migrations embeds the goose SQL migrations for the PostgreSQL store.
package migrations

import "embed"

// Migrations holds every *.sql file of this directory, applied in file-name order.
//
//go:embed *.sql
var Migrations embed.FS
