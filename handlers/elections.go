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

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// CreateElection handles POST /elections (admin only)
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fieldErrors := map[string][]string{}
	if !minChars(req.Name, 5) {
		addFieldError(fieldErrors, "name", "Election name must be at least 5 characters.")
	}
	if !minChars(req.Description, 10) {
		addFieldError(fieldErrors, "description", "Description must be at least 10 characters.")
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		addFieldError(fieldErrors, "startDate", "Invalid start date")
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		addFieldError(fieldErrors, "endDate", "Invalid end date")
	} else if len(fieldErrors["startDate"]) == 0 && !endDate.After(startDate) {
		addFieldError(fieldErrors, "endDate", "End date must be after start date.")
	}

	if len(req.Candidates) < 1 {
		addFieldError(fieldErrors, "candidates", "At least one candidate is required.")
	}
	for i, c := range req.Candidates {
		validateCandidateFields(fieldErrors, candidateFieldPrefix(i), c.Name, c.Party, c.Platform, c.ImageURL)
	}

	if len(fieldErrors) > 0 {
		middleware.ValidationErrorResponse(w, "Invalid data provided.", fieldErrors)
		return
	}

	electionID := uuid.NewString()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO election (id, name, description, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, electionID, req.Name, req.Description, db.FormatTime(startDate), db.FormatTime(endDate), db.FormatTime(time.Now()))

	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election in database.")
		return
	}

	for i, c := range req.Candidates {
		_, err = tx.Exec(`
			INSERT INTO candidate (id, election_id, name, party, platform, image_url, vote_count, position)
			VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		`, uuid.NewString(), electionID, c.Name, c.Party, c.Platform, nullIfEmpty(c.ImageURL), i+1)

		if err != nil {
			slog.Error("failed to insert candidate", "error", err, "election_id", electionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election in database.")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election in database.")
		return
	}

	// Read the stored record back so the response reflects exactly what was
	// persisted.
	election, err := fetchElection(h.db, electionID)
	if err != nil {
		slog.Error("failed to read back election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Election created but failed to retrieve.")
		return
	}

	slog.Info("election created", "election_id", electionID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		Message:  "Election created successfully!",
		Election: election,
	})
}

// ListElections handles GET /elections
// Returns all elections, most recently starting first, candidates embedded.
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, description, start_date, end_date
		FROM election
		ORDER BY start_date DESC
	`)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load elections.")
		return
	}
	defer rows.Close()

	now := time.Now()
	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		var startDate, endDate string
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &startDate, &endDate); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load elections.")
			return
		}
		if e.StartDate, err = db.ParseTime(startDate); err != nil {
			slog.Error("bad stored start date", "error", err, "election_id", e.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load elections.")
			return
		}
		if e.EndDate, err = db.ParseTime(endDate); err != nil {
			slog.Error("bad stored end date", "error", err, "election_id", e.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load elections.")
			return
		}
		e.Status = ElectionStatus(now, e.StartDate, e.EndDate)
		e.Candidates = []models.Candidate{}
		elections = append(elections, e)
	}

	candidates, err := h.candidatesByElection()
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load elections.")
		return
	}
	for i := range elections {
		if cs, ok := candidates[elections[i].ID]; ok {
			elections[i].Candidates = cs
		}
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

func (h *ElectionHandler) candidatesByElection() (map[string][]models.Candidate, error) {
	rows, err := h.db.Query(`
		SELECT id, election_id, name, party, platform, image_url, vote_count
		FROM candidate
		ORDER BY election_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byElection := make(map[string][]models.Candidate)
	for rows.Next() {
		var c models.Candidate
		var imageURL sql.NullString
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Platform, &imageURL, &c.VoteCount); err != nil {
			return nil, err
		}
		c.ImageURL = imageURL.String
		byElection[c.ElectionID] = append(byElection[c.ElectionID], c)
	}
	return byElection, rows.Err()
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	election, err := fetchElection(h.db, electionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found.")
		return
	}
	if err != nil {
		slog.Error("failed to fetch election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch election data.")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, election)
}

// DeleteElection handles DELETE /elections/{id} (admin only)
// Removes the election, its candidates and its ballots. Irreversible.
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ballot WHERE election_id = $1`, electionID); err != nil {
		slog.Error("failed to delete ballots", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election.")
		return
	}
	if _, err := tx.Exec(`DELETE FROM candidate WHERE election_id = $1`, electionID); err != nil {
		slog.Error("failed to delete candidates", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election.")
		return
	}

	result, err := tx.Exec(`DELETE FROM election WHERE id = $1`, electionID)
	if err != nil {
		slog.Error("failed to delete election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election.")
		return
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election.")
		return
	}
	if deleted == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found or already deleted.")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit delete", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election.")
		return
	}

	slog.Info("election deleted", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Election deleted successfully."})
}

// fetchElection loads one election with its candidates in registration
// order. Returns sql.ErrNoRows when the id does not resolve.
func fetchElection(dbc *sql.DB, electionID string) (models.Election, error) {
	var e models.Election
	var startDate, endDate string
	err := dbc.QueryRow(`
		SELECT id, name, description, start_date, end_date
		FROM election
		WHERE id = $1
	`, electionID).Scan(&e.ID, &e.Name, &e.Description, &startDate, &endDate)
	if err != nil {
		return models.Election{}, err
	}

	if e.StartDate, err = db.ParseTime(startDate); err != nil {
		return models.Election{}, err
	}
	if e.EndDate, err = db.ParseTime(endDate); err != nil {
		return models.Election{}, err
	}
	e.Status = ElectionStatus(time.Now(), e.StartDate, e.EndDate)

	rows, err := dbc.Query(`
		SELECT id, election_id, name, party, platform, image_url, vote_count
		FROM candidate
		WHERE election_id = $1
		ORDER BY position
	`, electionID)
	if err != nil {
		return models.Election{}, err
	}
	defer rows.Close()

	e.Candidates = []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var imageURL sql.NullString
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.Platform, &imageURL, &c.VoteCount); err != nil {
			return models.Election{}, err
		}
		c.ImageURL = imageURL.String
		e.Candidates = append(e.Candidates, c)
	}
	return e, rows.Err()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
