// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response and domain types for the
BallotBox API, plus the lifecycle status and role constants.

Domain types serialize the way the frontend consumes them: elections embed
their candidate list, candidates carry a denormalized electionId
back-reference, and dates are RFC 3339 strings.
*/
package models
