// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

// AdminHandler covers the approval workflow: boolean flags on candidate
// and voter account records, togglable only by an admin principal (the
// router wires every route here behind the admin gate).
type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// ApproveCandidate handles POST /candidates/{id}/approve
func (h *AdminHandler) ApproveCandidate(w http.ResponseWriter, r *http.Request) {
	h.setCandidateApproval(w, r, true)
}

// RevokeCandidate handles POST /candidates/{id}/revoke
func (h *AdminHandler) RevokeCandidate(w http.ResponseWriter, r *http.Request) {
	h.setCandidateApproval(w, r, false)
}

func (h *AdminHandler) setCandidateApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate ID is required.")
		return
	}

	result, err := h.db.Exec(`
		UPDATE candidate_account SET is_approved = $1 WHERE id = $2
	`, approved, candidateID)
	if err != nil {
		slog.Error("failed to update candidate approval", "error", err, "candidate_id", candidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	updated, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if updated == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found.")
		return
	}

	slog.Info("candidate approval updated", "candidate_id", candidateID, "approved", approved)

	message := fmt.Sprintf("Candidate %s approved successfully.", candidateID)
	if !approved {
		message = fmt.Sprintf("Candidate %s approval revoked.", candidateID)
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: message})
}

// SetVoterVerified handles POST /voters/{id}/verify (body: {"isVerified": bool})
func (h *AdminHandler) SetVoterVerified(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Voter ID is required.")
		return
	}

	var req models.SetVerifiedRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.IsVerified == nil {
		middleware.ValidationErrorResponse(w, "Invalid data provided.", map[string][]string{
			"isVerified": {"isVerified is required."},
		})
		return
	}

	if !h.updateVoterFlag(w, "is_verified", *req.IsVerified, voterID) {
		return
	}

	slog.Info("voter verification updated", "voter_id", voterID, "verified", *req.IsVerified)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Voter verification status updated successfully to %t.", *req.IsVerified),
	})
}

// SetVoterEligible handles POST /voters/{id}/eligible (body: {"isEligible": bool})
func (h *AdminHandler) SetVoterEligible(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Voter ID is required.")
		return
	}

	var req models.SetEligibleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.IsEligible == nil {
		middleware.ValidationErrorResponse(w, "Invalid data provided.", map[string][]string{
			"isEligible": {"isEligible is required."},
		})
		return
	}

	if !h.updateVoterFlag(w, "is_eligible", *req.IsEligible, voterID) {
		return
	}

	slog.Info("voter eligibility updated", "voter_id", voterID, "eligible", *req.IsEligible)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Voter eligibility status updated successfully to %t.", *req.IsEligible),
	})
}

func (h *AdminHandler) updateVoterFlag(w http.ResponseWriter, column string, value bool, voterID string) bool {
	// column is one of the two fixed flag names, never caller input
	result, err := h.db.Exec(
		fmt.Sprintf(`UPDATE voter SET %s = $1 WHERE id = $2`, column),
		value, voterID)
	if err != nil {
		slog.Error("failed to update voter flag", "error", err, "voter_id", voterID, "flag", column)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}

	updated, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if updated == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found.")
		return false
	}
	return true
}

// ListVoters handles GET /admin/voters
func (h *AdminHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, email, full_name, is_eligible, is_verified, registered_at
		FROM voter
		ORDER BY registered_at DESC
	`)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		var registeredAt string
		if err := rows.Scan(&v.ID, &v.Email, &v.FullName, &v.IsEligible, &v.IsVerified, &registeredAt); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if v.RegisteredAt, err = db.ParseTime(registeredAt); err != nil {
			slog.Error("bad stored registration time", "error", err, "voter_id", v.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		voters = append(voters, v)
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// ListCandidateAccounts handles GET /admin/candidates
func (h *AdminHandler) ListCandidateAccounts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, email, full_name, party, is_approved, registered_at
		FROM candidate_account
		ORDER BY registered_at DESC
	`)
	if err != nil {
		slog.Error("failed to query candidate accounts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	accounts := []models.CandidateAccount{}
	for rows.Next() {
		var a models.CandidateAccount
		var registeredAt string
		if err := rows.Scan(&a.ID, &a.Email, &a.FullName, &a.Party, &a.IsApproved, &registeredAt); err != nil {
			slog.Error("failed to scan candidate account", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if a.RegisteredAt, err = db.ParseTime(registeredAt); err != nil {
			slog.Error("bad stored registration time", "error", err, "candidate_id", a.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		accounts = append(accounts, a)
	}

	middleware.JSONResponse(w, http.StatusOK, accounts)
}
