// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/channel-contest/auth"
	"github.com/danielhkuo/channel-contest/cliparse"
	"github.com/danielhkuo/channel-contest/competition"
	"github.com/danielhkuo/channel-contest/handlers"
	"github.com/danielhkuo/channel-contest/middleware"
	"github.com/danielhkuo/channel-contest/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	st := store.New(db)
	svc := competition.NewService(st)
	guard := auth.NewGuard(st, cfg.AdminUsername, cfg.AdminPassword, cfg.SessionTTL)

	// Initialize handlers
	contestHandler := handlers.NewContestHandler(svc, cfg)
	adminHandler := handlers.NewAdminHandler(svc, guard)

	// Registration and voting share one per-address budget
	limiter := middleware.NewRateLimiter(cfg.VoteRateLimit)

	mux.HandleFunc("GET /health", contestHandler.Health)

	// Public competition
	mux.HandleFunc("POST /register", middleware.WithLogging(limiter.Wrap(contestHandler.Register)))
	mux.HandleFunc("GET /channels", middleware.WithLogging(contestHandler.ListChannels))
	mux.HandleFunc("POST /vote/{id}", middleware.WithLogging(limiter.Wrap(contestHandler.Vote)))
	mux.HandleFunc("GET /winners", middleware.WithLogging(contestHandler.Winners))
	mux.HandleFunc("GET /host", middleware.WithLogging(contestHandler.Host))
	mux.HandleFunc("GET /settings", middleware.WithLogging(contestHandler.Settings))

	// Admin session
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("POST /admin/logout", middleware.WithLogging(adminHandler.Logout))
	mux.HandleFunc("GET /admin/session", middleware.WithLogging(adminHandler.Session))

	// Admin operations (session required)
	mux.HandleFunc("GET /admin/channels", middleware.WithLogging(adminHandler.ListChannels))
	mux.HandleFunc("DELETE /admin/channels/{id}", middleware.WithLogging(adminHandler.RemoveChannel))
	mux.HandleFunc("POST /admin/declare-winner", middleware.WithLogging(adminHandler.DeclareWinner))
	mux.HandleFunc("POST /admin/host", middleware.WithLogging(adminHandler.SetHost))
	mux.HandleFunc("POST /admin/settings", middleware.WithLogging(adminHandler.SetSettings))
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.Reset))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(adminHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("channel-contest API v1"))
	})

	return middleware.CORS(cfg.CORSOrigin, mux)
}
