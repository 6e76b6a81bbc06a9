// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/channel-contest/auth"
)

const (
	VoterIDHeader     = "X-Voter-Id"
	SessionCookieName = "contest_admin"

	maxVoterIDLen = 128
)

// VoterKey derives the one-vote-per-voter key for a request. A client
// supplied identifier (body field, then X-Voter-Id header) wins; otherwise
// the salted hash of the client address is used. The result is never empty.
func VoterKey(r *http.Request, bodyVoterID, salt string) string {
	id := strings.TrimSpace(bodyVoterID)
	if id == "" {
		id = strings.TrimSpace(r.Header.Get(VoterIDHeader))
	}
	if id != "" {
		if len(id) > maxVoterIDLen {
			id = id[:maxVoterIDLen]
		}
		return "id:" + id
	}

	return "ip:" + auth.HashIP(GetClientIP(r), salt)
}

// SessionToken returns the admin session token carried by the request,
// from an "Authorization: Bearer" header or the session cookie.
func SessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// SetSessionCookie stores the admin session token on the client
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the admin session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
