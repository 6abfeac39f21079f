// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth is the identity-provider boundary.

The server consumes exactly one thing from the provider: a signed HS256
bearer token carrying a stable subject id, an email, and a role claim
(voter, candidate or admin). VerifyToken checks the signature and expiry
and returns the Principal; the middleware stashes it in the request
context for handlers to read back via FromContext.

IssueToken exists for development tooling and the test suite - production
tokens are minted by the identity provider with the shared secret.
*/
package auth
