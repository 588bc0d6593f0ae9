// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// MigrationsDir is the directory of Migrations holding the migration files.
const MigrationsDir = "migrations"

// Migrations contains all SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
