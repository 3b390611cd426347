// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sqlitedialect is a condensed gorm.Dialector over
// modernc.org/sqlite, the pure-Go (cgo-free) SQLite driver. It supports
// exactly what internal/settings needs: AutoMigrate of a fresh table and
// plain Create/First/Raw queries with an upsert clause. It is not a
// general-purpose drop-in for gorm.io/driver/sqlite — schema evolution
// (ALTER COLUMN and friends) is intentionally not implemented.
package sqlitedialect

import (
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/callbacks"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/migrator"
	"gorm.io/gorm/schema"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver name modernc.org/sqlite
// registers itself under.
const DriverName = "sqlite"

// Dialector opens dsn through modernc.org/sqlite.
type Dialector struct {
	DSN string
}

// Open returns a gorm.Dialector for dsn (a file path or ":memory:").
func Open(dsn string) gorm.Dialector {
	return Dialector{DSN: dsn}
}

func (d Dialector) Name() string {
	return "sqlite"
}

func (d Dialector) Initialize(db *gorm.DB) error {
	callbacks.RegisterDefaultCallbacks(db, &callbacks.Config{
		CreateClauses: []string{"INSERT", "VALUES", "ON CONFLICT"},
	})

	sqlDB, err := sql.Open(DriverName, d.DSN)
	if err != nil {
		return err
	}
	// SQLite serializes writers regardless; a single pooled connection
	// avoids "database is locked" errors and keeps ":memory:" DSNs
	// (used by tests) from silently fanning out to separate in-memory
	// databases per connection.
	sqlDB.SetMaxOpenConns(1)
	db.ConnPool = sqlDB
	return nil
}

func (d Dialector) Migrator(db *gorm.DB) gorm.Migrator {
	return sqliteMigrator{migrator.Migrator{Config: migrator.Config{
		DB:        db,
		Dialector: d,
	}}}
}

func (d Dialector) DataTypeOf(field *schema.Field) string {
	switch field.DataType {
	case schema.Bool:
		return "numeric"
	case schema.Int, schema.Uint:
		return "integer"
	case schema.Float:
		return "real"
	case schema.String:
		return "text"
	case schema.Time:
		return "datetime"
	case schema.Bytes:
		return "blob"
	default:
		return string(field.DataType)
	}
}

func (d Dialector) DefaultValueOf(*schema.Field) clause.Expression {
	return clause.Expr{SQL: "NULL"}
}

func (d Dialector) BindVarName(writer clause.Writer, _ string) {
	writer.WriteByte('?')
}

func (d Dialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteByte('"')
	writer.WriteString(str)
	writer.WriteByte('"')
}

func (d Dialector) Explain(sqlStr string, vars ...interface{}) string {
	return logger.ExplainSQL(sqlStr, nil, `"`, vars...)
}

// sqliteMigrator overrides the two migrator.Migrator defaults that
// assume an information_schema-backed database, which SQLite has no
// equivalent of.
type sqliteMigrator struct {
	migrator.Migrator
}

func (m sqliteMigrator) CurrentDatabase() string {
	return "sqlite"
}

func (m sqliteMigrator) HasTable(value interface{}) bool {
	var count int64
	stmt := &gorm.Statement{DB: m.DB}
	if err := stmt.Parse(value); err != nil {
		return false
	}
	m.DB.Raw(
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		stmt.Schema.Table,
	).Scan(&count)
	return count > 0
}
