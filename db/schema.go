// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// TimeLayout is how timestamps are stored: RFC 3339 in UTC at second
// precision. Fixed-width, so lexical order matches chronological order
// and the same text round-trips through both postgres and sqlite.
const TimeLayout = time.RFC3339

// FormatTime renders t for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimeLayout)
}

// ParseTime reads a stored timestamp back.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

const schema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_election_start_date ON election(start_date);

-- Candidates; position preserves registration order for stable result ties
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    platform TEXT NOT NULL,
    image_url TEXT,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id);

-- Ballots: the server-authoritative vote ledger. At most one ballot per
-- (election, voter).
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL,
    cast_at TEXT NOT NULL,
    UNIQUE (election_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_ballot_election_id ON ballot(election_id);

-- Voter accounts, keyed by identity-provider subject id
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    full_name TEXT NOT NULL DEFAULT '',
    is_eligible BOOLEAN NOT NULL DEFAULT FALSE,
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TEXT NOT NULL
);

-- Candidate accounts, keyed by identity-provider subject id
CREATE TABLE IF NOT EXISTS candidate_account (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    full_name TEXT NOT NULL DEFAULT '',
    party TEXT NOT NULL DEFAULT '',
    is_approved BOOLEAN NOT NULL DEFAULT FALSE,
    registered_at TEXT NOT NULL
);
`
