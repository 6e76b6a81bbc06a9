// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request carries an X-Request-ID, generated when the
client does not send one.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin, mux),
	}

An empty origin echoes the request's Origin header.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusConflict, models.ReasonAlreadyVoted, "You have already voted")

# Voter Keys

VoterKey picks the identity used for the one-vote rule: the voterId body
field, then the X-Voter-Id header, then a salted hash of the client IP.

# Admin Sessions

SessionToken reads the token from "Authorization: Bearer" or the
contest_admin cookie. SetSessionCookie and ClearSessionCookie manage the
cookie on login and logout.

# Rate Limiting

	limiter := middleware.NewRateLimiter(cfg.VoteRateLimit)
	mux.HandleFunc("POST /vote/{id}", limiter.Wrap(handler))

Per client IP token bucket (golang.org/x/time/rate); over-limit requests get
429 with a Retry-After header.
*/
package middleware
