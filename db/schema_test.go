// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "schema_test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	return conn
}

func TestCreateSchema(t *testing.T) {
	conn := openTestDB(t)
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	// idempotent
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema second run failed: %v", err)
	}

	for _, table := range []string{"election", "candidate", "ballot", "voter", "candidate_account"} {
		var count int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Errorf("Table %s missing: %v", table, err)
		}
	}
}

func TestBallotUniqueness(t *testing.T) {
	conn := openTestDB(t)
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	insert := `INSERT INTO ballot (id, election_id, voter_id, candidate_id, cast_at) VALUES ($1, 'e1', $2, 'c1', $3)`
	now := FormatTime(time.Now())

	if _, err := conn.Exec(insert, "b1", "v1", now); err != nil {
		t.Fatalf("First ballot failed: %v", err)
	}
	if _, err := conn.Exec(insert, "b2", "v1", now); err == nil {
		t.Error("Expected duplicate ballot to violate uniqueness")
	}
	// a different voter in the same election is fine
	if _, err := conn.Exec(insert, "b3", "v2", now); err != nil {
		t.Errorf("Second voter's ballot failed: %v", err)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	orig := time.Date(2026, 6, 10, 9, 30, 45, 123456789, time.FixedZone("CST", -6*3600))

	stored := FormatTime(orig)
	parsed, err := ParseTime(stored)
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}

	// stored at second precision, in UTC
	if !parsed.Equal(orig.Truncate(time.Second)) {
		t.Errorf("Round trip mismatch: got %v, want %v", parsed, orig.Truncate(time.Second))
	}
	if parsed.Location() != time.UTC {
		t.Errorf("Expected UTC, got %v", parsed.Location())
	}
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	if _, err := ParseTime("next tuesday"); err == nil {
		t.Error("Expected an error for a non-RFC3339 value")
	}
}
