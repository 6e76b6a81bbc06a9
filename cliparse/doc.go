// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: PostgreSQL connection string or SQLite file (default: competition.db)
  - AdminUsername, AdminPassword: Admin credentials (required)
  - VoterKeySalt: Secret for hashing voter addresses (required)
  - SessionTTL: Admin session lifetime (default: 12h)
  - VoteRateLimit: Vote/register requests per minute per client (default: 30)
  - CORSOrigin: Allowed origin (default: echo request origin)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--admin-user  Admin username
	--admin-pass  Admin password
	--voter-salt  Voter key salt
	--session-ttl Session lifetime
	--vote-rate   Rate limit per minute
	--cors-origin Allowed CORS origin
	--log-level   Log level

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ADMIN_USERNAME  → --admin-user
	ADMIN_PASSWORD  → --admin-pass
	VOTER_KEY_SALT  → --voter-salt
	SESSION_TTL     → --session-ttl
	VOTE_RATE_LIMIT → --vote-rate
	CORS_ORIGIN     → --cors-origin
	LOG_LEVEL       → --log-level

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing.
*/
package cliparse
