// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type RegistrationHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRegistrationHandler(db *sql.DB, cfg cliparse.Config) *RegistrationHandler {
	return &RegistrationHandler{db: db, cfg: cfg}
}

// RegisterCandidate handles POST /elections/{id}/register
// Appends a new candidate to an election that has not yet concluded.
func (h *RegistrationHandler) RegisterCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.RegisterCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fieldErrors := map[string][]string{}
	validateCandidateFields(fieldErrors, "", req.Name, req.Party, req.Platform, req.ImageURL)
	if len(fieldErrors) > 0 {
		middleware.ValidationErrorResponse(w, "Invalid candidate data provided.", fieldErrors)
		return
	}

	var startDate, endDate string
	err := h.db.QueryRow(`
		SELECT start_date, end_date FROM election WHERE id = $1
	`, electionID).Scan(&startDate, &endDate)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	start, err := db.ParseTime(startDate)
	if err != nil {
		slog.Error("bad stored start date", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	end, err := db.ParseTime(endDate)
	if err != nil {
		slog.Error("bad stored end date", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Registration stays open until the election concludes.
	if ElectionStatus(time.Now(), start, end) == models.StatusConcluded {
		middleware.ErrorResponse(w, http.StatusForbidden, "This election has concluded. Registration is closed.")
		return
	}

	candidateID := uuid.NewString()
	result, err := h.db.Exec(`
		INSERT INTO candidate (id, election_id, name, party, platform, image_url, vote_count, position)
		VALUES ($1, $2, $3, $4, $5, $6, 0,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM candidate WHERE election_id = $7))
	`, candidateID, electionID, req.Name, req.Party, req.Platform, nullIfEmpty(req.ImageURL), electionID)

	if err != nil {
		slog.Error("failed to insert candidate", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register candidate.")
		return
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		slog.Error("candidate insert matched nothing", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register candidate.")
		return
	}

	slog.Info("candidate registered", "election_id", electionID, "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterCandidateResponse{
		Message: "Candidate registered successfully!",
		Candidate: models.Candidate{
			ID:         candidateID,
			ElectionID: electionID,
			Name:       req.Name,
			Party:      req.Party,
			Platform:   req.Platform,
			ImageURL:   req.ImageURL,
			VoteCount:  0,
		},
	})
}
