// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/channel-contest/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrUnauthorized       = errors.New("admin session required")
)

// SessionStore persists admin sessions so every instance sharing the
// database sees the same logins.
type SessionStore interface {
	CreateSession(ctx context.Context, token string, expiresAt time.Time) error
	SessionExpiry(ctx context.Context, token string) (time.Time, error)
	DeleteSession(ctx context.Context, token string) error
}

// AdminSession is proof that the caller logged in as admin. Only a Guard
// can mint one; privileged operations take it as an explicit argument.
type AdminSession struct {
	token     string
	expiresAt time.Time
}

func (s *AdminSession) Token() string        { return s.token }
func (s *AdminSession) ExpiresAt() time.Time { return s.expiresAt }

// Check fails closed: a nil session is never authorized.
func (s *AdminSession) Check() error {
	if s == nil || s.token == "" {
		return ErrUnauthorized
	}
	return nil
}

type Guard struct {
	sessions SessionStore
	username string
	password string
	ttl      time.Duration
	now      func() time.Time
}

func NewGuard(sessions SessionStore, username, password string, ttl time.Duration) *Guard {
	return &Guard{
		sessions: sessions,
		username: username,
		password: password,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks the credentials against the configured admin account and
// opens a new session.
func (g *Guard) Login(ctx context.Context, username, password string) (*AdminSession, error) {
	// Evaluate both comparisons so timing does not reveal which one failed.
	userOK := equalSecret(username, g.username)
	passOK := equalSecret(password, g.password)
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	expiresAt := g.now().Add(g.ttl).UTC()
	if err := g.sessions.CreateSession(ctx, token, expiresAt); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &AdminSession{token: token, expiresAt: expiresAt}, nil
}

// Require resolves token to a live admin session. Unknown, empty and
// expired tokens yield ErrUnauthorized; expired rows are removed.
func (g *Guard) Require(ctx context.Context, token string) (*AdminSession, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	expiresAt, err := g.sessions.SessionExpiry(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if !g.now().Before(expiresAt) {
		if err := g.sessions.DeleteSession(ctx, token); err != nil {
			slog.Warn("failed to delete expired session", "error", err)
		}
		return nil, ErrUnauthorized
	}

	return &AdminSession{token: token, expiresAt: expiresAt}, nil
}

// Logout invalidates the session immediately.
func (g *Guard) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return g.sessions.DeleteSession(ctx, token)
}
