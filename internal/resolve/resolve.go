// Package resolve matches noisy scraped vehicle mentions against the
// canonical catalog.
//
// # Pipeline
//
// A raw mention (brand/model/chassis strings as scraped) is normalized,
// a chassis code is extracted, and a tiered lookup runs against an
// immutable candidate index built once per batch:
//
//	exact_code > brand_model > fuzzy > none
//
// The first tier that produces a candidate wins. Brand-specific quirks
// (spelling variants, code grammars) are data tables injected into the
// resolver, not logic scattered across call sites.
package resolve

import "strings"

// Confidence is the coarse trust ranking of a match. Downstream consumers
// decide policy from it: auto-link high tiers, queue low tiers for review.
type Confidence string

const (
	// ConfidenceExactCode means brand plus chassis code matched exactly.
	// Chassis codes have a near-zero false-positive rate.
	ConfidenceExactCode Confidence = "exact_code"
	// ConfidenceBrandModel means brand plus (possibly alias-widened)
	// model name matched.
	ConfidenceBrandModel Confidence = "brand_model"
	// ConfidenceFuzzy means only a substring-overlap heuristic matched.
	ConfidenceFuzzy Confidence = "fuzzy"
	// ConfidenceNone means no tier produced a candidate. Not an error:
	// the mention stays unresolved for manual review.
	ConfidenceNone Confidence = "none"
)

// Mention is a raw, unvalidated vehicle reference from an external source.
type Mention struct {
	// ID identifies the source record (appearance row) being resolved.
	ID string
	// Brand is the scraped make string. Required.
	Brand string
	// Model is the scraped model string. May be empty or dirty.
	Model string
	// ChassisCode is the scraped code string, verbatim. May be empty.
	ChassisCode string
}

// Match is the outcome of resolving one mention.
type Match struct {
	// GenerationID is the matched catalog generation, or 0 when none.
	GenerationID int64
	// Confidence is the tier that produced the match.
	Confidence Confidence
}

// Found reports whether the match carries a generation.
func (m Match) Found() bool { return m.GenerationID != 0 }

// firstToken returns the first whitespace-delimited token of s.
func firstToken(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}
