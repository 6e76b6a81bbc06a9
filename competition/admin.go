// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/channel-contest/auth"
	"github.com/danielhkuo/channel-contest/models"
	"github.com/danielhkuo/channel-contest/store"
)

// Every method in this file takes the caller's admin session and returns
// auth.ErrUnauthorized, without touching storage, when it is nil.

// ExportHeader is the first row of the CSV export.
var ExportHeader = []string{"id", "name", "link", "about", "votes", "created_at"}

// AdminChannels lists every channel, newest first.
func (s *Service) AdminChannels(ctx context.Context, sess *auth.AdminSession) ([]models.Channel, error) {
	if err := sess.Check(); err != nil {
		return nil, err
	}
	return s.store.ListChannels(ctx, store.OrderByNewest)
}

// RemoveChannel deletes a channel and the votes cast for it.
func (s *Service) RemoveChannel(ctx context.Context, sess *auth.AdminSession, channelID int64) error {
	if err := sess.Check(); err != nil {
		return err
	}
	if err := s.store.DeleteChannel(ctx, channelID); err != nil {
		return err
	}

	slog.Info("channel removed", "channel_id", channelID)
	return nil
}

// DeclareWinner snapshots the channel into the winner history and marks it
// as the current winner. It may be called repeatedly.
func (s *Service) DeclareWinner(ctx context.Context, sess *auth.AdminSession, channelID int64) (models.Winner, error) {
	if err := sess.Check(); err != nil {
		return models.Winner{}, err
	}

	w, err := s.store.DeclareWinner(ctx, channelID)
	if err != nil {
		return models.Winner{}, err
	}

	slog.Info("winner declared", "channel_id", channelID, "winner_id", w.ID, "votes", w.Votes)
	return w, nil
}

func (s *Service) SetHost(ctx context.Context, sess *auth.AdminSession, name, link string) (models.Host, error) {
	if err := sess.Check(); err != nil {
		return models.Host{}, err
	}
	if err := required("name", name); err != nil {
		return models.Host{}, err
	}
	if err := required("link", link); err != nil {
		return models.Host{}, err
	}

	h := models.Host{Name: strings.TrimSpace(name), Link: strings.TrimSpace(link)}
	raw, err := json.Marshal(h)
	if err != nil {
		return models.Host{}, fmt.Errorf("encode host: %w", err)
	}
	if err := s.store.SetSetting(ctx, models.SettingHost, string(raw)); err != nil {
		return models.Host{}, err
	}

	slog.Info("host updated", "name", h.Name)
	return h, nil
}

// SetEndAt stores value verbatim. An empty string unsets the end time; no
// timestamp validation is performed.
func (s *Service) SetEndAt(ctx context.Context, sess *auth.AdminSession, value string) error {
	if err := sess.Check(); err != nil {
		return err
	}
	if err := s.store.SetSetting(ctx, models.SettingEndAt, value); err != nil {
		return err
	}

	slog.Info("end time updated", "end_at", value)
	return nil
}

// Reset removes all channels and votes and clears the current winner.
// Winner history, host and end time are kept.
func (s *Service) Reset(ctx context.Context, sess *auth.AdminSession) error {
	if err := sess.Check(); err != nil {
		return err
	}
	if err := s.store.Reset(ctx); err != nil {
		return err
	}

	slog.Info("competition reset")
	return nil
}

// Export writes every channel as CSV, newest first.
func (s *Service) Export(ctx context.Context, sess *auth.AdminSession, w io.Writer) error {
	if err := sess.Check(); err != nil {
		return err
	}

	channels, err := s.store.ListChannels(ctx, store.OrderByNewest)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, c := range channels {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Link,
			c.About,
			strconv.Itoa(c.Votes),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}

	return nil
}
