// Package pgmigrations embeds the goose migrations of the self-hosted
// Postgres backend.
package pgmigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
