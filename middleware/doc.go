// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

WithLogging wraps handlers with request/completion logging. WithAuth and
WithAdmin gate routes on a verified bearer token (WithAdmin additionally
requires the admin role claim). JSONResponse/ErrorResponse write the
standard response envelope; ValidationErrorResponse adds per-field
messages for 400s.
*/
package middleware
