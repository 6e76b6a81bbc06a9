// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/channel-contest/cliparse"
	"github.com/danielhkuo/channel-contest/competition"
	"github.com/danielhkuo/channel-contest/middleware"
	"github.com/danielhkuo/channel-contest/models"
)

type ContestHandler struct {
	svc *competition.Service
	cfg cliparse.Config
}

func NewContestHandler(svc *competition.Service, cfg cliparse.Config) *ContestHandler {
	return &ContestHandler{svc: svc, cfg: cfg}
}

// Health handles GET /health
func (h *ContestHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Register handles POST /register
func (h *ContestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidJSON, "Invalid JSON")
		return
	}

	channel, err := h.svc.Register(r.Context(), req.Name, req.Link, req.About)
	if err != nil {
		writeServiceError(w, err, "register channel")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Message: "Channel registered!",
		Channel: channel,
	})
}

// ListChannels handles GET /channels
func (h *ContestHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.svc.Leaderboard(r.Context())
	if err != nil {
		writeServiceError(w, err, "list channels")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, channels)
}

// Vote handles POST /vote/{id}
// The body is optional; {"voterId": "..."} overrides the address-derived key.
func (h *ContestHandler) Vote(w http.ResponseWriter, r *http.Request) {
	channelID, ok := channelIDFromPath(w, r)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidJSON, "Invalid JSON")
		return
	}

	voterKey := middleware.VoterKey(r, req.VoterID, h.cfg.VoterKeySalt)

	votes, err := h.svc.Vote(r.Context(), channelID, voterKey)
	if err != nil {
		writeServiceError(w, err, "cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Message: "Vote added!",
		Votes:   votes,
	})
}

// Winners handles GET /winners
func (h *ContestHandler) Winners(w http.ResponseWriter, r *http.Request) {
	winners, err := h.svc.Winners(r.Context())
	if err != nil {
		writeServiceError(w, err, "list winners")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, winners)
}

// Host handles GET /host
func (h *ContestHandler) Host(w http.ResponseWriter, r *http.Request) {
	host, err := h.svc.Host(r.Context())
	if err != nil {
		writeServiceError(w, err, "get host")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, host)
}

// Settings handles GET /settings
func (h *ContestHandler) Settings(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		writeServiceError(w, err, "get settings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}
