// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestRegisterCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewRegistrationHandler(db, cfg)

	ongoing := testutil.CreateTestElection(t, db, "Ongoing Election",
		time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
	upcoming := testutil.CreateTestElection(t, db, "Upcoming Election",
		time.Now().Add(24*time.Hour), time.Now().Add(48*time.Hour))
	concluded := testutil.CreateTestElection(t, db, "Concluded Election",
		time.Now().Add(-96*time.Hour), time.Now().Add(-72*time.Hour))

	validBody := func() models.RegisterCandidateRequest {
		return models.RegisterCandidateRequest{
			Name:     "Carol Danvers",
			Party:    "Starlight",
			Platform: "Universal library access for all residents.",
			ImageURL: "https://example.com/carol.png",
		}
	}

	tests := []struct {
		name           string
		electionID     string
		mutate         func(req *models.RegisterCandidateRequest)
		expectedStatus int
	}{
		{
			name:           "register into ongoing election",
			electionID:     ongoing,
			mutate:         func(req *models.RegisterCandidateRequest) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "register into upcoming election",
			electionID:     upcoming,
			mutate:         func(req *models.RegisterCandidateRequest) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "concluded election rejects registration",
			electionID:     concluded,
			mutate:         func(req *models.RegisterCandidateRequest) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unknown election",
			electionID:     "nonexistent",
			mutate:         func(req *models.RegisterCandidateRequest) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:       "name too short",
			electionID: ongoing,
			mutate: func(req *models.RegisterCandidateRequest) {
				req.Name = "C"
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "party too short",
			electionID: ongoing,
			mutate: func(req *models.RegisterCandidateRequest) {
				req.Party = "S"
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "platform too short",
			electionID: ongoing,
			mutate: func(req *models.RegisterCandidateRequest) {
				req.Platform = "short"
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "image url not http",
			electionID: ongoing,
			mutate: func(req *models.RegisterCandidateRequest) {
				req.ImageURL = "ftp://example.com/carol.png"
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "empty image url is allowed",
			electionID: ongoing,
			mutate: func(req *models.RegisterCandidateRequest) {
				req.ImageURL = ""
			},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(&body)

			var before int
			if err := db.QueryRow(`SELECT COUNT(*) FROM candidate`).Scan(&before); err != nil {
				t.Fatalf("Failed to count candidates: %v", err)
			}

			req := testutil.MakeRequest("POST", "/elections/"+tt.electionID+"/register", body, nil)
			req.SetPathValue("id", tt.electionID)
			w := httptest.NewRecorder()
			handler.RegisterCandidate(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			var after int
			if err := db.QueryRow(`SELECT COUNT(*) FROM candidate`).Scan(&after); err != nil {
				t.Fatalf("Failed to count candidates: %v", err)
			}

			if tt.expectedStatus == http.StatusCreated {
				if after != before+1 {
					t.Errorf("Expected one new candidate, count went %d -> %d", before, after)
				}
				var resp models.RegisterCandidateResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != "Candidate registered successfully!" {
					t.Errorf("Unexpected message: %q", resp.Message)
				}
				if resp.Candidate.ID == "" {
					t.Error("Expected a server-assigned candidate id")
				}
				if resp.Candidate.VoteCount != 0 {
					t.Errorf("Expected vote count 0, got %d", resp.Candidate.VoteCount)
				}
				if resp.Candidate.ElectionID != tt.electionID {
					t.Errorf("Expected electionId %q, got %q", tt.electionID, resp.Candidate.ElectionID)
				}
			} else {
				// a rejected registration must not touch the store
				if after != before {
					t.Errorf("Rejected registration mutated the store: %d -> %d", before, after)
				}
			}
		})
	}
}

func TestRegisterCandidatePositions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewRegistrationHandler(db, testutil.GetTestConfig())

	electionID := testutil.CreateTestElection(t, db, "Position Election",
		time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))

	names := []string{"First Candidate", "Second Candidate", "Third Candidate"}
	for _, name := range names {
		body := models.RegisterCandidateRequest{
			Name:     name,
			Party:    "Order",
			Platform: "Candidates appear in registration order.",
		}
		req := testutil.MakeRequest("POST", "/elections/"+electionID+"/register", body, nil)
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()
		handler.RegisterCandidate(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	rows, err := db.Query(`SELECT name FROM candidate WHERE election_id = $1 ORDER BY position`, electionID)
	if err != nil {
		t.Fatalf("Failed to query candidates: %v", err)
	}
	defer rows.Close()

	var got []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("Failed to scan candidate: %v", err)
		}
		got = append(got, name)
	}
	if len(got) != len(names) {
		t.Fatalf("Expected %d candidates, got %d", len(names), len(got))
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("Position %d: expected %q, got %q", i+1, names[i], got[i])
		}
	}
}

// Registration is still open after the stored end timestamp as long as the
// end date's calendar day has not passed.
func TestRegisterCandidateEndOfDay(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewRegistrationHandler(db, testutil.GetTestConfig())

	// the stored end timestamp is now in the past, but its calendar day is
	// not over, so the election is still ongoing
	end := time.Now()
	electionID := testutil.CreateTestElection(t, db, "Ends Today Election",
		end.Add(-48*time.Hour), end)

	body := models.RegisterCandidateRequest{
		Name:     "Late Entrant",
		Party:    "Midnight",
		Platform: "Every hour of the final day counts.",
	}
	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/register", body, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	handler.RegisterCandidate(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
}
