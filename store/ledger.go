// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/channel-contest/db"
)

// CastVote records one vote for channelID on behalf of voterKey and returns
// the channel's new tally.
//
// The vote row and the tally increment commit together. The UNIQUE
// constraint on votes.voter_key decides races between concurrent requests
// from the same voter: the loser's insert fails and is reported as
// ErrAlreadyVoted.
func (s *Store) CastVote(ctx context.Context, channelID int64, voterKey string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM votes WHERE voter_key = $1`, voterKey).Scan(&existing)
	if err == nil {
		return 0, ErrAlreadyVoted
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query existing vote: %w", err)
	}

	var found int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM channels WHERE id = $1`, channelID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query channel %d: %w", channelID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (channel_id, voter_key, created_at)
		VALUES ($1, $2, $3)
	`, channelID, voterKey, s.now())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrAlreadyVoted
		}
		return 0, fmt.Errorf("insert vote: %w", err)
	}

	var votes int
	err = tx.QueryRowContext(ctx, `
		UPDATE channels SET votes = votes + 1
		WHERE id = $1
		RETURNING votes
	`, channelID).Scan(&votes)
	if errors.Is(err, sql.ErrNoRows) {
		// Channel removed between the check and the update.
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment votes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrAlreadyVoted
		}
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return votes, nil
}

// CountVotes returns the number of vote rows recorded for a channel.
func (s *Store) CountVotes(ctx context.Context, channelID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE channel_id = $1`, channelID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count votes for channel %d: %w", channelID, err)
	}
	return n, nil
}
