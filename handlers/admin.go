// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/channel-contest/auth"
	"github.com/danielhkuo/channel-contest/competition"
	"github.com/danielhkuo/channel-contest/middleware"
	"github.com/danielhkuo/channel-contest/models"
)

type AdminHandler struct {
	svc   *competition.Service
	guard *auth.Guard
}

func NewAdminHandler(svc *competition.Service, guard *auth.Guard) *AdminHandler {
	return &AdminHandler{svc: svc, guard: guard}
}

// requireAdmin resolves the caller's session or writes 401.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.AdminSession, bool) {
	sess, err := h.guard.Require(r.Context(), middleware.SessionToken(r))
	if err != nil {
		writeServiceError(w, err, "check admin session")
		return nil, false
	}
	return sess, true
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidJSON, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonMissingField, "username and password are required")
		return
	}

	sess, err := h.guard.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("admin login failed", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonInvalidCredentials, "Invalid credentials")
		return
	}
	if err != nil {
		writeServiceError(w, err, "admin login")
		return
	}

	middleware.SetSessionCookie(w, r, sess.Token(), sess.ExpiresAt())
	slog.Info("admin logged in", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message:   "Logged in",
		Token:     sess.Token(),
		ExpiresAt: sess.ExpiresAt(),
	})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.guard.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		writeServiceError(w, err, "admin logout")
		return
	}

	middleware.ClearSessionCookie(w)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// Session handles GET /admin/session
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Admin:     true,
		ExpiresAt: sess.ExpiresAt(),
	})
}

// ListChannels handles GET /admin/channels
func (h *AdminHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	channels, err := h.svc.AdminChannels(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err, "admin list channels")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, channels)
}

// RemoveChannel handles DELETE /admin/channels/{id}
func (h *AdminHandler) RemoveChannel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	channelID, ok := channelIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveChannel(r.Context(), sess, channelID); err != nil {
		writeServiceError(w, err, "remove channel")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Channel removed"})
}

// DeclareWinner handles POST /admin/declare-winner
func (h *AdminHandler) DeclareWinner(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.DeclareWinnerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidJSON, "Invalid JSON")
		return
	}

	if req.WinnerID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonMissingField, "winnerId is required")
		return
	}

	winner, err := h.svc.DeclareWinner(r.Context(), sess, req.WinnerID)
	if err != nil {
		writeServiceError(w, err, "declare winner")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeclareWinnerResponse{
		Message: "Winner declared",
		Winner:  winner,
	})
}

// SetHost handles POST /admin/host
func (h *AdminHandler) SetHost(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.SetHostRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidJSON, "Invalid JSON")
		return
	}

	host, err := h.svc.SetHost(r.Context(), sess, req.Name, req.Link)
	if err != nil {
		writeServiceError(w, err, "set host")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HostResponse{
		Message: "Host channel updated",
		Host:    host,
	})
}

// SetSettings handles POST /admin/settings
func (h *AdminHandler) SetSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.SetEndAtRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidJSON, "Invalid JSON")
		return
	}

	if req.EndAt == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonMissingField, "endAt is required")
		return
	}

	if err := h.svc.SetEndAt(r.Context(), sess, *req.EndAt); err != nil {
		writeServiceError(w, err, "set end time")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Settings updated"})
}

// Reset handles POST /admin/reset
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := h.svc.Reset(r.Context(), sess); err != nil {
		writeServiceError(w, err, "reset competition")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Competition reset"})
}

// Export handles GET /admin/export
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	// Buffer so a failure mid-export still produces a clean error response.
	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), sess, &buf); err != nil {
		writeServiceError(w, err, "export channels")
		return
	}

	filename := "channels-" + time.Now().UTC().Format("20060102") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
