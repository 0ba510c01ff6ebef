// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open maps the configured database type onto a registered driver:

	conn, err := db.Open(db.TypeSQLite, "file:univote.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite connections are limited to one open connection and run with foreign
keys enabled.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is portable between PostgreSQL and SQLite.

# Tables

  - solution: Candidate solutions in display order
  - vote: One vote per email address
  - vote_solution: Solutions selected by each vote

# Relationships

	vote 1──* vote_solution *──1 solution

All foreign keys use ON DELETE CASCADE.

# Errors

IsUniqueViolation recognises unique constraint failures from both lib/pq
(SQLSTATE 23505) and SQLite.
*/
package db
