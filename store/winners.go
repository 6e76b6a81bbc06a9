// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/danielhkuo/channel-contest/models"
)

// DeclareWinner appends a snapshot of the channel's current state to the
// winner history and points the currentWinner setting at it. Vote counts
// are left untouched.
func (s *Store) DeclareWinner(ctx context.Context, channelID int64) (models.Winner, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Winner{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+channelColumns+` FROM channels WHERE id = $1`, channelID)
	c, err := scanChannel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Winner{}, ErrNotFound
	}
	if err != nil {
		return models.Winner{}, fmt.Errorf("query channel %d: %w", channelID, err)
	}

	w := models.Winner{
		ChannelID:  c.ID,
		Name:       c.Name,
		Link:       c.Link,
		About:      c.About,
		Votes:      c.Votes,
		DeclaredAt: s.now(),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO winners (channel_id, name, link, about, votes, declared_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, w.ChannelID, w.Name, w.Link, nullString(w.About), w.Votes, w.DeclaredAt).Scan(&w.ID)
	if err != nil {
		return models.Winner{}, fmt.Errorf("insert winner: %w", err)
	}

	if err := upsertSetting(ctx, tx, models.SettingCurrentWinner, strconv.FormatInt(c.ID, 10)); err != nil {
		return models.Winner{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Winner{}, fmt.Errorf("commit transaction: %w", err)
	}
	return w, nil
}

// ListWinners returns the winner history, most recent declaration first.
func (s *Store) ListWinners(ctx context.Context) ([]models.Winner, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, channel_id, name, link, about, votes, declared_at
		FROM winners
		ORDER BY declared_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query winners: %w", err)
	}
	defer rows.Close()

	winners := []models.Winner{}
	for rows.Next() {
		var w models.Winner
		var about sql.NullString
		if err := rows.Scan(&w.ID, &w.ChannelID, &w.Name, &w.Link, &about, &w.Votes, &w.DeclaredAt); err != nil {
			return nil, fmt.Errorf("scan winner: %w", err)
		}
		w.About = about.String
		winners = append(winners, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate winners: %w", err)
	}

	return winners, nil
}
