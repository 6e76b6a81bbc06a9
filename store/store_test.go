// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/channel-contest/models"
	"github.com/danielhkuo/channel-contest/testutil"
)

// newTestStore returns a store whose clock advances one second per call so
// creation order is unambiguous.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := New(testutil.SetupTestDB(t))
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var tick atomic.Int64
	s.now = func() time.Time {
		return base.Add(time.Duration(tick.Add(1)) * time.Second)
	}
	return s
}

func TestCreateChannel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.CreateChannel(ctx, "Foo", "http://x", "  about foo  ")
	if err != nil {
		t.Fatalf("CreateChannel() error = %v", err)
	}

	if c.ID == 0 {
		t.Error("expected non-zero channel ID")
	}
	if c.Name != "Foo" || c.Link != "http://x" {
		t.Errorf("unexpected channel: %+v", c)
	}
	if c.About != "about foo" {
		t.Errorf("About = %q, want trimmed %q", c.About, "about foo")
	}
	if c.Votes != 0 {
		t.Errorf("Votes = %d, want 0", c.Votes)
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	got, err := s.GetChannel(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetChannel() error = %v", err)
	}
	if got.Name != c.Name || got.About != c.About {
		t.Errorf("GetChannel() = %+v, want %+v", got, c)
	}
}

func TestCreateChannel_EmptyAboutIsNull(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.CreateChannel(ctx, "Foo", "http://x", "")
	if err != nil {
		t.Fatalf("CreateChannel() error = %v", err)
	}

	var isNull bool
	if err := s.db.QueryRow(`SELECT about IS NULL FROM channels WHERE id = $1`, c.ID).Scan(&isNull); err != nil {
		t.Fatal(err)
	}
	if !isNull {
		t.Error("expected empty about to be stored as NULL")
	}
}

func TestGetChannel_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetChannel(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChannel() error = %v, want ErrNotFound", err)
	}
}

func TestListChannels_Order(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.CreateChannel(ctx, "A", "http://a", "")
	b, _ := s.CreateChannel(ctx, "B", "http://b", "")
	c, _ := s.CreateChannel(ctx, "C", "http://c", "")

	// B and C tie on one vote each; A has none.
	if _, err := s.CastVote(ctx, c.ID, "v1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CastVote(ctx, b.ID, "v2"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		order ChannelOrder
		want  []int64
	}{
		{"leaderboard ties broken by earlier registration", OrderByVotes, []int64{b.ID, c.ID, a.ID}},
		{"newest first", OrderByNewest, []int64{c.ID, b.ID, a.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channels, err := s.ListChannels(ctx, tt.order)
			if err != nil {
				t.Fatalf("ListChannels() error = %v", err)
			}
			if len(channels) != len(tt.want) {
				t.Fatalf("got %d channels, want %d", len(channels), len(tt.want))
			}
			for i, id := range tt.want {
				if channels[i].ID != id {
					t.Errorf("position %d: got channel %d, want %d", i, channels[i].ID, id)
				}
			}
		})
	}
}

func TestListChannels_EmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)

	channels, err := s.ListChannels(context.Background(), OrderByVotes)
	if err != nil {
		t.Fatalf("ListChannels() error = %v", err)
	}
	if channels == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestCastVote(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.CreateChannel(ctx, "Foo", "http://x", "")

	votes, err := s.CastVote(ctx, a.ID, "v1")
	if err != nil {
		t.Fatalf("CastVote(v1) error = %v", err)
	}
	if votes != 1 {
		t.Errorf("votes after v1 = %d, want 1", votes)
	}

	votes, err = s.CastVote(ctx, a.ID, "v2")
	if err != nil {
		t.Fatalf("CastVote(v2) error = %v", err)
	}
	if votes != 2 {
		t.Errorf("votes after v2 = %d, want 2", votes)
	}

	_, err = s.CastVote(ctx, a.ID, "v1")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("repeat CastVote(v1) error = %v, want ErrAlreadyVoted", err)
	}

	got, _ := s.GetChannel(ctx, a.ID)
	if got.Votes != 2 {
		t.Errorf("channel votes = %d, want 2", got.Votes)
	}
	testutil.AssertTallyConsistent(t, s.db)
}

func TestCastVote_OneVotePerVoterAcrossChannels(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.CreateChannel(ctx, "A", "http://a", "")
	b, _ := s.CreateChannel(ctx, "B", "http://b", "")

	if _, err := s.CastVote(ctx, a.ID, "v1"); err != nil {
		t.Fatal(err)
	}

	_, err := s.CastVote(ctx, b.ID, "v1")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("vote for second channel error = %v, want ErrAlreadyVoted", err)
	}

	got, _ := s.GetChannel(ctx, b.ID)
	if got.Votes != 0 {
		t.Errorf("channel B votes = %d, want 0", got.Votes)
	}
}

func TestCastVote_ChannelNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CastVote(ctx, 42, "v1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("CastVote() error = %v, want ErrNotFound", err)
	}

	// The failed attempt must not consume the voter key.
	if n := testutil.CountRows(t, s.db, "votes"); n != 0 {
		t.Errorf("votes rows = %d, want 0", n)
	}
}

func TestCastVote_ConcurrentSameVoter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.CreateChannel(ctx, "Foo", "http://x", "")

	const attempts = 20
	var success, conflict atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CastVote(ctx, a.ID, "same-voter")
			switch {
			case err == nil:
				success.Add(1)
			case errors.Is(err, ErrAlreadyVoted):
				conflict.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if success.Load() != 1 {
		t.Errorf("successful votes = %d, want 1", success.Load())
	}
	if conflict.Load() != attempts-1 {
		t.Errorf("conflicts = %d, want %d", conflict.Load(), attempts-1)
	}

	got, _ := s.GetChannel(ctx, a.ID)
	if got.Votes != 1 {
		t.Errorf("channel votes = %d, want 1", got.Votes)
	}
	testutil.AssertTallyConsistent(t, s.db)
}

func TestCastVote_ConcurrentDistinctVoters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.CreateChannel(ctx, "A", "http://a", "")
	b, _ := s.CreateChannel(ctx, "B", "http://b", "")

	const voters = 30
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := a.ID
			if i%3 == 0 {
				target = b.ID
			}
			if _, err := s.CastVote(ctx, target, fmt.Sprintf("voter-%d", i)); err != nil {
				t.Errorf("CastVote(voter-%d) error = %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	gotA, _ := s.GetChannel(ctx, a.ID)
	gotB, _ := s.GetChannel(ctx, b.ID)
	if gotA.Votes+gotB.Votes != voters {
		t.Errorf("total votes = %d, want %d", gotA.Votes+gotB.Votes, voters)
	}
	if gotB.Votes != 10 {
		t.Errorf("channel B votes = %d, want 10", gotB.Votes)
	}
	testutil.AssertTallyConsistent(t, s.db)
}

func TestDeleteChannel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.CreateChannel(ctx, "A", "http://a", "")
	b, _ := s.CreateChannel(ctx, "B", "http://b", "")
	s.CastVote(ctx, a.ID, "v1")
	s.CastVote(ctx, b.ID, "v2")

	if err := s.DeleteChannel(ctx, a.ID); err != nil {
		t.Fatalf("DeleteChannel() error = %v", err)
	}

	if _, err := s.GetChannel(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted channel still readable: %v", err)
	}
	if n, _ := s.CountVotes(ctx, a.ID); n != 0 {
		t.Errorf("votes left for deleted channel = %d", n)
	}
	if n, _ := s.CountVotes(ctx, b.ID); n != 1 {
		t.Errorf("votes for other channel = %d, want 1", n)
	}

	// Voter v1 is free to vote again once their channel is gone.
	if _, err := s.CastVote(ctx, b.ID, "v1"); err != nil {
		t.Errorf("re-vote after removal error = %v", err)
	}

	if err := s.DeleteChannel(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteChannel() error = %v, want ErrNotFound", err)
	}
	testutil.AssertTallyConsistent(t, s.db)
}

func TestDeclareWinner(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.CreateChannel(ctx, "Foo", "http://x", "the foo")
	s.CastVote(ctx, a.ID, "v1")
	s.CastVote(ctx, a.ID, "v2")

	for i := 1; i <= 3; i++ {
		w, err := s.DeclareWinner(ctx, a.ID)
		if err != nil {
			t.Fatalf("DeclareWinner() call %d error = %v", i, err)
		}
		if w.ChannelID != a.ID || w.Votes != 2 || w.Name != "Foo" || w.About != "the foo" {
			t.Errorf("unexpected snapshot: %+v", w)
		}
	}

	winners, err := s.ListWinners(ctx)
	if err != nil {
		t.Fatalf("ListWinners() error = %v", err)
	}
	if len(winners) != 3 {
		t.Errorf("winner rows = %d, want 3", len(winners))
	}
	if winners[0].ID < winners[len(winners)-1].ID {
		t.Error("expected most recent winner first")
	}

	got, _ := s.GetChannel(ctx, a.ID)
	if got.Votes != 2 {
		t.Errorf("declaring a winner changed votes to %d", got.Votes)
	}

	current, ok, err := s.GetSetting(ctx, models.SettingCurrentWinner)
	if err != nil || !ok {
		t.Fatalf("currentWinner not set: ok=%v err=%v", ok, err)
	}
	if current != fmt.Sprint(a.ID) {
		t.Errorf("currentWinner = %q, want %d", current, a.ID)
	}
}

func TestDeclareWinner_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.DeclareWinner(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeclareWinner() error = %v, want ErrNotFound", err)
	}
	if _, ok, _ := s.GetSetting(ctx, models.SettingCurrentWinner); ok {
		t.Error("currentWinner set for a missing channel")
	}
	if n := testutil.CountRows(t, s.db, "winners"); n != 0 {
		t.Errorf("winner rows = %d, want 0", n)
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, ok, err := s.GetSetting(ctx, models.SettingEndAt); ok || err != nil {
		t.Fatalf("unset key: ok=%v err=%v", ok, err)
	}

	if err := s.SetSetting(ctx, models.SettingEndAt, "2025-06-01T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting(ctx, models.SettingEndAt, "not a date"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := s.GetSetting(ctx, models.SettingEndAt)
	if err != nil || !ok || v != "not a date" {
		t.Errorf("GetSetting() = %q, %v, %v; want last write", v, ok, err)
	}

	all, err := s.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[models.SettingEndAt] != "not a date" {
		t.Errorf("Settings() = %v", all)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a, _ := s.CreateChannel(ctx, "Foo", "http://x", "")
	s.CastVote(ctx, a.ID, "v1")
	s.DeclareWinner(ctx, a.ID)
	s.SetSetting(ctx, models.SettingHost, `{"name":"Host","link":"http://h"}`)
	s.SetSetting(ctx, models.SettingEndAt, "2025-06-01")

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if n := testutil.CountRows(t, s.db, "channels"); n != 0 {
		t.Errorf("channels after reset = %d", n)
	}
	if n := testutil.CountRows(t, s.db, "votes"); n != 0 {
		t.Errorf("votes after reset = %d", n)
	}
	if n := testutil.CountRows(t, s.db, "winners"); n != 1 {
		t.Errorf("winners after reset = %d, want 1", n)
	}
	if _, ok, _ := s.GetSetting(ctx, models.SettingCurrentWinner); ok {
		t.Error("currentWinner survived reset")
	}
	if _, ok, _ := s.GetSetting(ctx, models.SettingHost); !ok {
		t.Error("host lost on reset")
	}
	if _, ok, _ := s.GetSetting(ctx, models.SettingEndAt); !ok {
		t.Error("endAt lost on reset")
	}

	// Voter keys are released.
	b, _ := s.CreateChannel(ctx, "Bar", "http://y", "")
	if _, err := s.CastVote(ctx, b.ID, "v1"); err != nil {
		t.Errorf("vote after reset error = %v", err)
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.CreateSession(ctx, "tok", expires); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	got, err := s.SessionExpiry(ctx, "tok")
	if err != nil {
		t.Fatalf("SessionExpiry() error = %v", err)
	}
	if !got.Equal(expires) {
		t.Errorf("SessionExpiry() = %v, want %v", got, expires)
	}

	if err := s.DeleteSession(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SessionExpiry(ctx, "tok"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete error = %v, want ErrNotFound", err)
	}
}
