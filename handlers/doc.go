// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the contest API.

# Handler Types

  - ContestHandler: public registration, leaderboard, voting and read-only views
  - AdminHandler: admin login/logout and every privileged operation

Handlers wrap a competition.Service; the admin handler also holds the
auth.Guard:

	contest := handlers.NewContestHandler(svc, cfg)
	admin := handlers.NewAdminHandler(svc, guard)

# Voting

	POST /vote/{id}  {"voterId": "optional"}

One vote per voter key across the whole competition. A repeat vote is 409
with reason "already_voted"; an unknown channel is 404.

# Admin Flow

	POST /admin/login → sets the contest_admin cookie and returns the token

Every other /admin route resolves the session first and answers 401
(reason "unauthorized") without touching storage when it is missing or
expired. The session is then passed to the competition service explicitly.

# Errors

writeServiceError maps service errors onto status codes:

	ValidationError → 400 missing_field
	ErrNotFound     → 404 not_found
	ErrAlreadyVoted → 409 already_voted
	ErrUnauthorized → 401 unauthorized
	anything else   → 500 internal (logged, details withheld)
*/
package handlers
