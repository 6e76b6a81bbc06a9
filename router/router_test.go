// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/channel-contest/models"
	"github.com/danielhkuo/channel-contest/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	db := testutil.SetupTestDB(t)

	mux := NewRouter(db, testutil.GetTestConfig())
	db.Close()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "channel-contest API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/no-such-route", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// 400, 401 and 404 are all valid handler responses here
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/register"},
		{"GET", "/channels"},
		{"POST", "/vote/1"},
		{"GET", "/winners"},
		{"GET", "/host"},
		{"GET", "/settings"},

		{"POST", "/admin/login"},
		{"POST", "/admin/logout"},
		{"GET", "/admin/session"},
		{"GET", "/admin/channels"},
		{"DELETE", "/admin/channels/1"},
		{"POST", "/admin/declare-winner"},
		{"POST", "/admin/host"},
		{"POST", "/admin/settings"},
		{"POST", "/admin/reset"},
		{"GET", "/admin/export"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/vote/1"},
		{"DELETE", "/channels"},
		{"GET", "/admin/reset"},
		{"POST", "/admin/channels/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	channelID := testutil.CreateTestChannel(t, db, "Keep Me", "https://example.com/keep")

	testCases := []struct {
		method string
		path   string
		body   interface{}
	}{
		{"GET", "/admin/session", nil},
		{"GET", "/admin/channels", nil},
		{"DELETE", fmt.Sprintf("/admin/channels/%d", channelID), nil},
		{"POST", "/admin/declare-winner", models.DeclareWinnerRequest{WinnerID: channelID}},
		{"POST", "/admin/host", models.SetHostRequest{Name: "h", Link: "l"}},
		{"POST", "/admin/reset", nil},
		{"GET", "/admin/export", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, tc.body, map[string]string{
				"Authorization": "Bearer not-a-real-token",
			})
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Reason != models.ReasonUnauthorized {
				t.Errorf("Expected reason %q, got %q", models.ReasonUnauthorized, resp.Reason)
			}
		})
	}

	// Nothing changed
	if n := testutil.CountRows(t, db, "channels"); n != 1 {
		t.Errorf("Expected 1 channel after unauthorized calls, got %d", n)
	}
	if n := testutil.CountRows(t, db, "winners"); n != 0 {
		t.Errorf("Expected 0 winners after unauthorized calls, got %d", n)
	}
	if n := testutil.CountRows(t, db, "settings"); n != 0 {
		t.Errorf("Expected 0 settings after unauthorized calls, got %d", n)
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig())

	channelID := testutil.CreateTestChannel(t, db, "Path Param", "https://example.com/p")

	t.Run("channel ID extraction", func(t *testing.T) {
		req := testutil.MakeRequest("POST", fmt.Sprintf("/vote/%d", channelID), nil, map[string]string{
			"X-Voter-Id": "path-param-voter",
		})
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if got := testutil.ChannelVotes(t, db, channelID); got != 1 {
			t.Errorf("Expected 1 vote, got %d", got)
		}
	})

	t.Run("non-numeric ID", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/vote/abc", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestCORSHeaders(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	cfg.CORSOrigin = "https://contest.example.com"
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("OPTIONS", "/vote/1", nil)
	req.Header.Set("Origin", "https://contest.example.com")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected preflight 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != cfg.CORSOrigin {
		t.Errorf("Expected Allow-Origin %q, got %q", cfg.CORSOrigin, got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Expected Allow-Credentials true, got %q", got)
	}
}

func TestVoteRateLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	cfg.VoteRateLimit = 2
	mux := NewRouter(db, cfg)

	channelID := testutil.CreateTestChannel(t, db, "Limited", "https://example.com/limited")
	path := fmt.Sprintf("/vote/%d", channelID)

	var codes []int
	for i := 0; i < 3; i++ {
		req := testutil.MakeRequest("POST", path, models.VoteRequest{VoterID: fmt.Sprintf("v%d", i)}, nil)
		req.RemoteAddr = "203.0.113.7:4000"
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("Expected first two votes to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be rate limited, got %d", codes[2])
	}
}
