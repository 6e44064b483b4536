// Package sqlite embeds the goose migrations for the local cache database.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
