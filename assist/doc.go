// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package assist is the client for the generative-text service: platform
// summaries and the election Q&A assistant. Both calls are pure
// request/response and never touch election data.
package assist
