// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers for the BallotBox API.

Handlers are grouped by concern:

  - ElectionHandler: election create/list/get/delete
  - RegistrationHandler: in-election candidate registration
  - VotingHandler: ballot casting with the one-vote-per-voter ledger
  - ResultsHandler: live tallies, sorted and totalled
  - AdminHandler: approval and eligibility flag toggles
  - AccountHandler: voter/candidate account self-registration
  - AssistHandler: generative-text proxy

Each handler holds a *sql.DB and the server config, and converts every
failure into a JSON error envelope; nothing here panics on a request.

The election lifecycle rule lives in lifecycle.go: an election is upcoming
before its start date, concluded after the final instant of its end date's
calendar day, and ongoing in between. Voting is permitted only while
ongoing; candidate registration until concluded.
*/
package handlers
