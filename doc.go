// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the channel contest API server.

Channels register for a community contest, visitors cast a single vote
each, and an admin declares winners, sets the host channel and the end
time, and exports the field as CSV.

# Starting the Server

A .env file in the working directory is loaded first, then flags and
environment variables:

	ADMIN_USERNAME=admin ADMIN_PASSWORD=... VOTER_KEY_SALT=... go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..." -admin-user admin -admin-pass ... -voter-salt ...

# Configuration

Required settings:

  - ADMIN_USERNAME (-admin-user), ADMIN_PASSWORD (-admin-pass): admin login
  - VOTER_KEY_SALT (-voter-salt): salt for hashing client addresses

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): file path or connection string (default: competition.db)
  - SESSION_TTL (-session-ttl): admin session lifetime (default: 12h)
  - VOTE_RATE_LIMIT (-vote-rate): requests per minute per address on /register and /vote (default: 30, 0 disables)
  - CORS_ORIGIN (-cors-origin): allowed browser origin
  - LOG_LEVEL (-log-level): debug, info, warn or error

# Architecture

  - handlers: HTTP request handlers (contest, admin)
  - router: Route definitions using Go 1.22+ routing
  - competition: Contest rules and admin operations
  - store: SQL persistence, including the vote ledger
  - auth: Admin login, sessions and the guard
  - middleware: CORS, logging, rate limiting, voter identity, JSON helpers
  - models: Request/response and domain types
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
