// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/channel-contest/cliparse"
	"github.com/danielhkuo/channel-contest/db"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          5000,
		DatabaseURL:   ":memory:",
		DatabaseType:  cliparse.DatabaseSQLite,
		AdminUsername: "admin",
		AdminPassword: "test-password",
		VoterKeySalt:  "test-voter-salt",
		SessionTTL:    time.Hour,
		VoteRateLimit: 0,
		LogLevel:      "error",
	}
}

// CreateTestChannel inserts a channel with zero votes and returns its ID
func CreateTestChannel(t *testing.T, conn *sql.DB, name, link string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO channels (name, link, about, votes, created_at)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id
	`, name, link, "about "+name, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test channel: %v", err)
	}

	return id
}

// CreateTestVote records a vote and bumps the channel tally
func CreateTestVote(t *testing.T, conn *sql.DB, channelID int64, voterKey string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO votes (channel_id, voter_key, created_at)
		VALUES ($1, $2, $3)
	`, channelID, voterKey, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	_, err = conn.Exec(`UPDATE channels SET votes = votes + 1 WHERE id = $1`, channelID)
	if err != nil {
		t.Fatalf("Failed to bump test channel votes: %v", err)
	}
}

// SetTestSetting upserts a settings row
func SetTestSetting(t *testing.T, conn *sql.DB, key, value string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		t.Fatalf("Failed to set test setting: %v", err)
	}
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// ChannelVotes returns the stored tally for a channel
func ChannelVotes(t *testing.T, conn *sql.DB, channelID int64) int {
	t.Helper()

	var votes int
	if err := conn.QueryRow(`SELECT votes FROM channels WHERE id = $1`, channelID).Scan(&votes); err != nil {
		t.Fatalf("Failed to read votes for channel %d: %v", channelID, err)
	}
	return votes
}

// AssertTallyConsistent checks that every channel's tally matches its vote rows
func AssertTallyConsistent(t *testing.T, conn *sql.DB) {
	t.Helper()

	rows, err := conn.Query(`
		SELECT c.id, c.votes, COUNT(v.id)
		FROM channels c
		LEFT JOIN votes v ON v.channel_id = c.id
		GROUP BY c.id, c.votes
	`)
	if err != nil {
		t.Fatalf("Failed to query tallies: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var tally, counted int
		if err := rows.Scan(&id, &tally, &counted); err != nil {
			t.Fatalf("Failed to scan tally: %v", err)
		}
		if tally != counted {
			t.Errorf("channel %d: votes column = %d, vote rows = %d", id, tally, counted)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
