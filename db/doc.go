// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the storage schema and the timestamp codec.

Five tables: election, candidate (one row per candidate, in registration
order), ballot (the one-per-voter vote ledger), voter and
candidate_account (identity-keyed account records).

Timestamps are stored as fixed-width RFC 3339 UTC text so the same values
round-trip identically through postgres and sqlite, and ORDER BY on a
timestamp column is chronological.
*/
package db
