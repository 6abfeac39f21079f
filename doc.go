// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the BallotBox API server.

BallotBox is an election service: elections with embedded candidate lists,
candidate registration, one-ballot-per-voter voting with live tallies, and
an admin approval workflow for voter and candidate accounts.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3319 -d "postgres://..." -token-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - TOKEN_SECRET (-token-secret): HMAC secret shared with the identity provider

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ASSIST_URL (-assist-url): generative-text assistant base URL
  - ASSIST_API_KEY (-assist-key): assistant API key

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (elections, registration, voting, results, admin, accounts, assist)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, auth gates
  - models: Request/response types
  - auth: Identity token verification
  - assist: Generative-text boundary client
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
