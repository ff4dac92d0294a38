package db

import "embed"

// Migrations holds the goose migrations applied by postgres.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
