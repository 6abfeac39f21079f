// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

// AccountHandler manages self-registration of voter and candidate account
// records. The record id and email always come from the verified token,
// never from the request body; the approval flags start false and only an
// admin can flip them.
type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// RegisterVoter handles POST /voters/register
func (h *AccountHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "A valid bearer token is required.")
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	registeredAt := time.Now()
	_, err := h.db.Exec(`
		INSERT INTO voter (id, email, full_name, is_eligible, is_verified, registered_at)
		VALUES ($1, $2, $3, FALSE, FALSE, $4)
	`, principal.ID, principal.Email, req.FullName, db.FormatTime(registeredAt))

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Voter is already registered.")
			return
		}
		slog.Error("failed to insert voter", "error", err, "voter_id", principal.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter.")
		return
	}

	slog.Info("voter registered", "voter_id", principal.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.Voter{
		ID:           principal.ID,
		Email:        principal.Email,
		FullName:     req.FullName,
		IsEligible:   false,
		IsVerified:   false,
		RegisteredAt: registeredAt.UTC().Truncate(time.Second),
	})
}

// RegisterCandidateAccount handles POST /candidates/register
func (h *AccountHandler) RegisterCandidateAccount(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "A valid bearer token is required.")
		return
	}

	var req models.RegisterCandidateAccountRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	registeredAt := time.Now()
	_, err := h.db.Exec(`
		INSERT INTO candidate_account (id, email, full_name, party, is_approved, registered_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`, principal.ID, principal.Email, req.FullName, req.Party, db.FormatTime(registeredAt))

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Candidate is already registered.")
			return
		}
		slog.Error("failed to insert candidate account", "error", err, "candidate_id", principal.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register candidate.")
		return
	}

	slog.Info("candidate account registered", "candidate_id", principal.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CandidateAccount{
		ID:           principal.ID,
		Email:        principal.Email,
		FullName:     req.FullName,
		Party:        req.Party,
		IsApproved:   false,
		RegisteredAt: registeredAt.UTC().Truncate(time.Second),
	})
}

// GetMe handles GET /voters/me
// Returns the caller's own voter record, flags included.
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "A valid bearer token is required.")
		return
	}

	var v models.Voter
	var registeredAt string
	err := h.db.QueryRow(`
		SELECT id, email, full_name, is_eligible, is_verified, registered_at
		FROM voter
		WHERE id = $1
	`, principal.ID).Scan(&v.ID, &v.Email, &v.FullName, &v.IsEligible, &v.IsVerified, &registeredAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter registration not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err, "voter_id", principal.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if v.RegisteredAt, err = db.ParseTime(registeredAt); err != nil {
		slog.Error("bad stored registration time", "error", err, "voter_id", v.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, v)
}
