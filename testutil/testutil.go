// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
)

// SetupTestDB creates a fresh sqlite database with the full schema in the
// test's temp dir. A single connection keeps sqlite happy under the
// concurrency tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "ballotbox_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		DatabaseURL:  "file:test.db",
		DatabaseType: "sqlite",
		TokenSecret:  "test-token-secret",
	}
}

// Token signs a bearer token for the given principal
func Token(t *testing.T, cfg cliparse.Config, id, email, role string) string {
	t.Helper()

	token, err := auth.IssueToken(auth.Principal{ID: id, Email: email, Role: role}, cfg.TokenSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// AdminToken signs a token carrying the admin role
func AdminToken(t *testing.T, cfg cliparse.Config) string {
	return Token(t, cfg, "test-admin-id", "admin@example.com", "admin")
}

// CreateTestElection inserts an election and returns its ID
func CreateTestElection(t *testing.T, conn *sql.DB, name string, startDate, endDate time.Time) string {
	t.Helper()

	electionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO election (id, name, description, start_date, end_date, created_at)
		VALUES ($1, $2, 'A test election', $3, $4, $5)
	`, electionID, name, db.FormatTime(startDate), db.FormatTime(endDate), db.FormatTime(time.Now()))
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID
}

// AddTestCandidate appends a candidate to an election and returns its ID.
// position must follow registration order within the election.
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID, name string, position int) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, election_id, name, party, platform, image_url, vote_count, position)
		VALUES ($1, $2, $3, 'Test Party', 'A sufficiently long platform.', NULL, 0, $4)
	`, candidateID, electionID, name, position)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CreateTestVoter inserts a voter account record
func CreateTestVoter(t *testing.T, conn *sql.DB, id, email string, eligible, verified bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (id, email, full_name, is_eligible, is_verified, registered_at)
		VALUES ($1, $2, 'Test Voter', $3, $4, $5)
	`, id, email, eligible, verified, db.FormatTime(time.Now()))
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
}

// CreateTestCandidateAccount inserts a candidate account record
func CreateTestCandidateAccount(t *testing.T, conn *sql.DB, id, email string, approved bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidate_account (id, email, full_name, party, is_approved, registered_at)
		VALUES ($1, $2, 'Test Candidate', 'Test Party', $3, $4)
	`, id, email, approved, db.FormatTime(time.Now()))
	if err != nil {
		t.Fatalf("Failed to create test candidate account: %v", err)
	}
}

// VoteCount reads a candidate's current counter
func VoteCount(t *testing.T, conn *sql.DB, candidateID string) int {
	t.Helper()

	var count int
	if err := conn.QueryRow(`SELECT vote_count FROM candidate WHERE id = $1`, candidateID).Scan(&count); err != nil {
		t.Fatalf("Failed to read vote count: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
