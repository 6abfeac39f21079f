// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// CastVote handles POST /elections/{id}/vote
// Preconditions are checked in order, each with its own failure message:
// election exists, election is ongoing, voter is eligible, candidate
// belongs to the election, voter has not already voted. The counter
// increment is a single conditional update inside the same transaction as
// the ballot insert, so concurrent votes never lose updates and a duplicate
// ballot rolls the whole thing back.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	principal, ok := auth.FromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "A valid bearer token is required.")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ValidationErrorResponse(w, "Invalid vote data provided.", map[string][]string{
			"candidateId": {"Candidate ID is required."},
		})
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

	switch ElectionStatus(time.Now(), start, end) {
	case models.StatusUpcoming:
		middleware.ErrorResponse(w, http.StatusForbidden, "This election has not started yet.")
		return
	case models.StatusConcluded:
		middleware.ErrorResponse(w, http.StatusForbidden, "This election has concluded. Voting is closed.")
		return
	}

	if status, message := h.checkEligibility(principal); status != 0 {
		middleware.ErrorResponse(w, status, message)
		return
	}

	var candidateExists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE election_id = $1 AND id = $2)
	`, electionID, req.CandidateID).Scan(&candidateExists)
	if err != nil {
		slog.Error("failed to check candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !candidateExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found in this election.")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// The UNIQUE (election_id, voter_id) constraint is the authoritative
	// one-ballot-per-voter check.
	_, err = tx.Exec(`
		INSERT INTO ballot (id, election_id, voter_id, candidate_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), electionID, principal.ID, req.CandidateID, db.FormatTime(time.Now()))

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this election.")
			return
		}
		slog.Error("failed to insert ballot", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote.")
		return
	}

	result, err := tx.Exec(`
		UPDATE candidate
		SET vote_count = vote_count + 1
		WHERE election_id = $1 AND id = $2
	`, electionID, req.CandidateID)

	if err != nil {
		slog.Error("failed to increment vote count", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote.")
		return
	}

	modified, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote.")
		return
	}
	if modified == 0 {
		// Election or candidate vanished between the check and the write;
		// the rollback leaves no partial state.
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote. Candidate or election may not match.")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit vote", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote.")
		return
	}

	slog.Info("vote recorded", "election_id", electionID, "candidate_id", req.CandidateID, "voter_id", principal.ID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Vote recorded successfully!"})
}

// checkEligibility applies the voting access rule: candidates are
// implicitly eligible; voters need both admin-granted flags; nobody else
// may cast a ballot. Returns a zero status when the principal may vote.
func (h *VotingHandler) checkEligibility(principal auth.Principal) (int, string) {
	switch principal.Role {
	case models.RoleCandidate:
		return 0, ""
	case models.RoleVoter:
		var isEligible, isVerified bool
		err := h.db.QueryRow(`
			SELECT is_eligible, is_verified FROM voter WHERE id = $1
		`, principal.ID).Scan(&isEligible, &isVerified)
		if err == sql.ErrNoRows {
			return http.StatusForbidden, "Voter registration not found."
		}
		if err != nil {
			slog.Error("failed to query voter", "error", err, "voter_id", principal.ID)
			return http.StatusInternalServerError, "Database error"
		}
		if !isVerified {
			return http.StatusForbidden, "Your voter registration has not been verified."
		}
		if !isEligible {
			return http.StatusForbidden, "You are not marked as eligible to vote."
		}
		return 0, ""
	default:
		return http.StatusForbidden, "Only registered voters and candidates may cast ballots."
	}
}

// isUniqueViolation matches the duplicate-key errors of both supported
// drivers, the same way ballot uniqueness is detected elsewhere.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
