// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ballotbox/assist"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(db, cfg)
	registrationHandler := handlers.NewRegistrationHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	accountHandler := handlers.NewAccountHandler(db, cfg)

	var assistClient assist.Client
	if cfg.AssistURL != "" {
		assistClient = assist.NewHTTPClient(cfg.AssistURL, cfg.AssistAPIKey)
	}
	assistHandler := handlers.NewAssistHandler(assistClient)

	secret := cfg.TokenSecret

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management
	mux.HandleFunc("POST /elections", middleware.WithLogging(middleware.WithAdmin(secret, electionHandler.CreateElection)))
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("DELETE /elections/{id}", middleware.WithLogging(middleware.WithAdmin(secret, electionHandler.DeleteElection)))

	// Candidate registration and voting
	mux.HandleFunc("POST /elections/{id}/register", middleware.WithLogging(registrationHandler.RegisterCandidate))
	mux.HandleFunc("POST /elections/{id}/vote", middleware.WithLogging(middleware.WithAuth(secret, votingHandler.CastVote)))

	// Results retrieval (public, polled by the results page)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Admin approval workflow
	mux.HandleFunc("POST /candidates/{id}/approve", middleware.WithLogging(middleware.WithAdmin(secret, adminHandler.ApproveCandidate)))
	mux.HandleFunc("POST /candidates/{id}/revoke", middleware.WithLogging(middleware.WithAdmin(secret, adminHandler.RevokeCandidate)))
	mux.HandleFunc("POST /voters/{id}/verify", middleware.WithLogging(middleware.WithAdmin(secret, adminHandler.SetVoterVerified)))
	mux.HandleFunc("POST /voters/{id}/eligible", middleware.WithLogging(middleware.WithAdmin(secret, adminHandler.SetVoterEligible)))
	mux.HandleFunc("GET /admin/voters", middleware.WithLogging(middleware.WithAdmin(secret, adminHandler.ListVoters)))
	mux.HandleFunc("GET /admin/candidates", middleware.WithLogging(middleware.WithAdmin(secret, adminHandler.ListCandidateAccounts)))

	// Account self-registration
	mux.HandleFunc("POST /voters/register", middleware.WithLogging(middleware.WithAuth(secret, accountHandler.RegisterVoter)))
	mux.HandleFunc("POST /candidates/register", middleware.WithLogging(middleware.WithAuth(secret, accountHandler.RegisterCandidateAccount)))
	mux.HandleFunc("GET /voters/me", middleware.WithLogging(middleware.WithAuth(secret, accountHandler.GetMe)))

	// Generative-text assistant
	mux.HandleFunc("POST /assist/summarize", middleware.WithLogging(assistHandler.Summarize))
	mux.HandleFunc("POST /assist/chat", middleware.WithLogging(assistHandler.Chat))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
