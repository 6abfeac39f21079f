// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /elections/{id}/results
// Candidates are ordered by vote count descending, ties broken by
// registration order. Always reads the latest committed counters, at any
// lifecycle stage; callers poll this endpoint for live tallies.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var electionName string
	err := h.db.QueryRow(`
		SELECT name FROM election WHERE id = $1
	`, electionID).Scan(&electionName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name, vote_count
		FROM candidate
		WHERE election_id = $1
		ORDER BY vote_count DESC, position
	`, electionID)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	results := []models.CandidateResult{}
	totalVotes := 0
	for rows.Next() {
		var cr models.CandidateResult
		if err := rows.Scan(&cr.CandidateID, &cr.CandidateName, &cr.VoteCount); err != nil {
			slog.Error("failed to scan result row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		totalVotes += cr.VoteCount
		results = append(results, cr)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read result rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionResults{
		ElectionID:   electionID,
		ElectionName: electionName,
		Results:      results,
		TotalVotes:   totalVotes,
	})
}
