// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/channel-contest/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyVoted = errors.New("voter has already voted")
)

// ChannelOrder selects how ListChannels sorts its result.
type ChannelOrder int

const (
	// OrderByVotes is the leaderboard order: most votes first, earlier
	// registration wins ties.
	OrderByVotes ChannelOrder = iota
	// OrderByNewest lists the most recently registered channels first.
	OrderByNewest
)

func (o ChannelOrder) clause() string {
	if o == OrderByNewest {
		return "ORDER BY created_at DESC, id DESC"
	}
	return "ORDER BY votes DESC, created_at ASC, id ASC"
}

// Store is the single source of truth for channels, votes, winners,
// settings and admin sessions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

const channelColumns = `id, name, link, about, votes, created_at`

func scanChannel(row scanner) (models.Channel, error) {
	var c models.Channel
	var about sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Link, &about, &c.Votes, &c.CreatedAt); err != nil {
		return models.Channel{}, err
	}
	c.About = about.String
	return c, nil
}

// CreateChannel registers a new channel with zero votes.
func (s *Store) CreateChannel(ctx context.Context, name, link, about string) (models.Channel, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO channels (name, link, about, votes, created_at)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING `+channelColumns,
		name, link, nullString(about), s.now())

	c, err := scanChannel(row)
	if err != nil {
		return models.Channel{}, fmt.Errorf("insert channel: %w", err)
	}
	return c, nil
}

func (s *Store) GetChannel(ctx context.Context, id int64) (models.Channel, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+channelColumns+` FROM channels WHERE id = $1`, id)

	c, err := scanChannel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Channel{}, ErrNotFound
	}
	if err != nil {
		return models.Channel{}, fmt.Errorf("query channel %d: %w", id, err)
	}
	return c, nil
}

func (s *Store) ListChannels(ctx context.Context, order ChannelOrder) ([]models.Channel, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+channelColumns+` FROM channels `+order.clause())
	if err != nil {
		return nil, fmt.Errorf("query channels: %w", err)
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		c, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channels: %w", err)
	}

	return channels, nil
}

// DeleteChannel removes a channel together with its votes so the tally
// invariant holds for the remaining rows.
func (s *Store) DeleteChannel(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE channel_id = $1`, id); err != nil {
		return fmt.Errorf("delete votes for channel %d: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete channel %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete channel %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Reset deletes every vote and channel and clears the current winner.
// Winner history and the host/endAt settings are kept.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM votes`,
		`DELETE FROM channels`,
		`DELETE FROM settings WHERE key = '` + models.SettingCurrentWinner + `'`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset (%s): %w", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
