// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method routing.

Public routes: election listing and detail, results, candidate
registration, the assistant endpoints. Authenticated routes: voting and
account self-registration. Admin routes: election create/delete, approval
and eligibility toggles, dashboard listings.
*/
package router
