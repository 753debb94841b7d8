// Package migrations embeds the SQL migration files so a single binary can
// bring its own schema up to date on startup.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
