// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin authentication and voter key hashing.

# Admin Sessions

A Guard checks credentials against the configured admin account and keeps
sessions in the database:

	guard := auth.NewGuard(st, cfg.AdminUsername, cfg.AdminPassword, cfg.SessionTTL)
	sess, err := guard.Login(ctx, username, password)
	sess, err = guard.Require(ctx, token)
	err = guard.Logout(ctx, token)

Login returns ErrInvalidCredentials on mismatch. Require returns
ErrUnauthorized for empty, unknown or expired tokens. Credentials are
compared exactly (case-sensitive) in constant time; they are plaintext
configuration values.

# Capability

An *AdminSession can only be produced by a Guard. Privileged operations take
it as an argument and call Check, which fails closed on nil.

# Tokens

Session tokens are random 32-byte secrets, URL-safe base64 encoded:

	token, err := auth.GenerateSessionToken()

# IP Hashing

Voters without an explicit identifier are keyed by a salted hash of their
address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
