// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the channel contest API.

# Route Registration

NewRouter wires storage, the competition service and the admin guard, and
returns the mux wrapped in CORS:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Public (POST routes are rate limited per client address):

	POST /register   - Register a channel
	GET  /channels   - Leaderboard, most votes first
	POST /vote/{id}  - Cast the caller's single vote
	GET  /winners    - Winner history, newest first
	GET  /host       - Host channel
	GET  /settings   - Host, end time and current winner

Admin (session cookie or Authorization: Bearer token):

	POST   /admin/login          - Start a session
	POST   /admin/logout         - End the session
	GET    /admin/session        - Session check
	GET    /admin/channels       - All channels, newest first
	DELETE /admin/channels/{id}  - Remove a channel and its votes
	POST   /admin/declare-winner - Snapshot a winner
	POST   /admin/host           - Set the host channel
	POST   /admin/settings       - Set the end time
	POST   /admin/reset          - Clear channels and votes
	GET    /admin/export         - CSV export
*/
package router
