// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

func minChars(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

// validImageURL accepts an empty value or a well-formed http(s) URL.
func validImageURL(s string) bool {
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func addFieldError(fieldErrors map[string][]string, field, message string) {
	fieldErrors[field] = append(fieldErrors[field], message)
}

func candidateFieldPrefix(i int) string {
	return fmt.Sprintf("candidates[%d].", i)
}

// validateCandidateFields applies the candidate field minimums shared by
// election creation and in-election registration.
func validateCandidateFields(fieldErrors map[string][]string, prefix, name, party, platform, imageURL string) {
	if !minChars(name, 2) {
		addFieldError(fieldErrors, prefix+"name", "Candidate name must be at least 2 characters.")
	}
	if !minChars(party, 2) {
		addFieldError(fieldErrors, prefix+"party", "Party must be at least 2 characters.")
	}
	if !minChars(platform, 10) {
		addFieldError(fieldErrors, prefix+"platform", "Platform summary must be at least 10 characters.")
	}
	if !validImageURL(imageURL) {
		addFieldError(fieldErrors, prefix+"imageUrl", "Please enter a valid image URL.")
	}
}
