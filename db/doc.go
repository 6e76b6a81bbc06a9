// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Drivers

Two backends are supported through database/sql:

  - sqlite (modernc.org/sqlite, pure Go): the default, one file on disk
  - postgres (github.com/lib/pq): for several instances sharing one store

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are pinned to a single pooled connection with foreign
keys enabled. Queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - channels: registered entrants and their vote tally
  - votes: one row per voter key (UNIQUE voter_key)
  - winners: append-only winner snapshots
  - settings: key/value competition settings
  - admin_sessions: live admin login tokens

# Constraint Errors

IsUniqueViolation normalises driver errors so callers can detect a
duplicate voter key without string matching:

	if db.IsUniqueViolation(err) {
		return ErrAlreadyVoted
	}
*/
package db
