package db

import "embed"

// Schema holds one idempotent DDL file per dialect: schema/<dialect>.sql.
//
//go:embed schema/*.sql
var Schema embed.FS

//go:embed seed/*.json
var SeedFiles embed.FS
