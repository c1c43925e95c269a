// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

// Package normalize turns noisy scraped vehicle text into comparable keys.
//
// # Usage
//
// Scraped names arrive with accents, inconsistent casing, and scraper
// artifacts ("BMW E46 Specs", "undefined", "NaN"). [Name] produces a
// lowercase ASCII-folded matching key so "Murciélago" and "Murcielago"
// compare equal; [Clean] strips artifacts while preserving display casing.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// artifactToken matches scraper junk tokens. Word-bounded so that
	// "Nissan" survives the NaN check and "nullify" survives null.
	artifactToken = regexp.MustCompile(`(?i)\b(?:undefined|null|nan)\b`)
	// trailingSpecs strips the "Specs" page-title suffix UltimateSpecs-style
	// scrapes leave behind, including stacked repeats ("E46 Specs Specs").
	trailingSpecs = regexp.MustCompile(`(?i)(?:\s*\bspecs)+\s*$`)
	// spaceRun collapses runs of whitespace into a single space.
	spaceRun = regexp.MustCompile(`\s+`)
)

// Name converts raw scraped text into a canonical matching key.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and removes combining marks (é → e).
// 2. Converts to lowercase.
// 3. Removes artifact tokens ("undefined", "null", "NaN").
// 4. Strips a trailing "Specs" suffix (after artifact removal, so
//    "E46 Specs null" still loses the suffix).
// 5. Collapses whitespace and trims.
//
// Name is total and idempotent: it never fails, and
// Name(Name(s)) == Name(s) for every input. The empty string is a valid
// result and means "no usable name".
func Name(raw string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, raw)
	if err != nil {
		// Malformed UTF-8 falls back to the raw bytes; later steps are
		// byte-safe and the key stays deterministic.
		result = raw
	}

	result = strings.ToLower(result)
	result = artifactToken.ReplaceAllString(result, " ")
	result = trailingSpecs.ReplaceAllString(result, "")
	result = spaceRun.ReplaceAllString(result, " ")

	return strings.TrimSpace(result)
}

// Clean removes scraper artifacts from display text without lowercasing or
// accent-folding it. It is used when writing cleaned names back to the
// catalog, where "3.2 V6 24V" must keep its casing.
func Clean(raw string) string {
	result := artifactToken.ReplaceAllString(raw, " ")
	result = trailingSpecs.ReplaceAllString(result, "")
	result = spaceRun.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// HasArtifacts reports whether s still carries scraper junk that [Clean]
// would remove. Catalog names must never satisfy this after import.
func HasArtifacts(s string) bool {
	return artifactToken.MatchString(s) || trailingSpecs.MatchString(s)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
