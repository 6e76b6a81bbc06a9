// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/channel-contest/auth"
	"github.com/danielhkuo/channel-contest/competition"
	"github.com/danielhkuo/channel-contest/middleware"
	"github.com/danielhkuo/channel-contest/models"
)

// writeServiceError maps a competition/auth error onto the HTTP error
// contract. Anything unrecognised is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, err error, op string) {
	var verr *competition.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonMissingField, verr.Error())
	case errors.Is(err, competition.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound, "Channel not found")
	case errors.Is(err, competition.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, models.ReasonAlreadyVoted, "You have already voted")
	case errors.Is(err, auth.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonUnauthorized, "Admin login required")
	default:
		slog.Error(op+" failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonInternal, "Internal server error")
	}
}

// channelIDFromPath parses the {id} path value
func channelIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonMissingField, "id is required")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalidID, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
