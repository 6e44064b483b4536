// Package postgres embeds the goose migrations for the household database.
package postgres

import "embed"

//go:embed *.sql
var Migrations embed.FS
