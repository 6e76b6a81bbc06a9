// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/channel-contest/models"
	"github.com/danielhkuo/channel-contest/store"
)

var (
	ErrNotFound     = store.ErrNotFound
	ErrAlreadyVoted = store.ErrAlreadyVoted
)

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field}
	}
	return nil
}

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Ping reports whether storage is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Register creates a channel with zero votes.
func (s *Service) Register(ctx context.Context, name, link, about string) (models.Channel, error) {
	if err := required("name", name); err != nil {
		return models.Channel{}, err
	}
	if err := required("link", link); err != nil {
		return models.Channel{}, err
	}

	c, err := s.store.CreateChannel(ctx, strings.TrimSpace(name), strings.TrimSpace(link), about)
	if err != nil {
		return models.Channel{}, err
	}

	slog.Info("channel registered", "channel_id", c.ID, "name", c.Name)
	return c, nil
}

// Leaderboard lists channels by votes, ties going to the earlier entrant.
func (s *Service) Leaderboard(ctx context.Context) ([]models.Channel, error) {
	return s.store.ListChannels(ctx, store.OrderByVotes)
}

// Vote casts voterKey's single vote for channelID and returns the new tally.
func (s *Service) Vote(ctx context.Context, channelID int64, voterKey string) (int, error) {
	if err := required("voter key", voterKey); err != nil {
		return 0, err
	}

	votes, err := s.store.CastVote(ctx, channelID, voterKey)
	if err != nil {
		return 0, err
	}

	slog.Info("vote cast", "channel_id", channelID, "votes", votes)
	return votes, nil
}

func (s *Service) Winners(ctx context.Context) ([]models.Winner, error) {
	return s.store.ListWinners(ctx)
}

// Host returns the host channel, or an empty Host when none is set.
func (s *Service) Host(ctx context.Context) (models.Host, error) {
	raw, ok, err := s.store.GetSetting(ctx, models.SettingHost)
	if err != nil || !ok {
		return models.Host{}, err
	}
	return decodeHost(raw)
}

// Status is the public view of the competition settings.
func (s *Service) Status(ctx context.Context) (models.CompetitionStatus, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return models.CompetitionStatus{}, err
	}

	var status models.CompetitionStatus
	status.EndAt = settings[models.SettingEndAt]

	if raw, ok := settings[models.SettingHost]; ok {
		if status.Host, err = decodeHost(raw); err != nil {
			return models.CompetitionStatus{}, err
		}
	}

	if raw, ok := settings[models.SettingCurrentWinner]; ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.CompetitionStatus{}, fmt.Errorf("parse %s setting %q: %w", models.SettingCurrentWinner, raw, err)
		}
		status.CurrentWinnerID = &id

		c, err := s.store.GetChannel(ctx, id)
		switch {
		case err == nil:
			status.CurrentWinner = &c
		case !errors.Is(err, store.ErrNotFound):
			return models.CompetitionStatus{}, err
		}
	}

	return status, nil
}

func decodeHost(raw string) (models.Host, error) {
	var h models.Host
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return models.Host{}, fmt.Errorf("decode %s setting: %w", models.SettingHost, err)
	}
	return h, nil
}
