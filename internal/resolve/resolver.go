package resolve

import (
	"strings"

	"github.com/minhdao/carlex/internal/platform/apperr"
	"github.com/minhdao/carlex/pkg/normalize"
)

// Resolver runs the tiered matching strategy. It is stateless between
// calls; all per-batch state lives in the [Index] argument, so one
// resolver can serve any number of batches against different snapshots.
type Resolver struct {
	aliases  *AliasTable
	grammars *GrammarTable
}

// NewResolver builds a resolver around injectable data tables. Pass
// [DefaultAliasTable] and [DefaultGrammarTable] for the built-in ones.
func NewResolver(aliases *AliasTable, grammars *GrammarTable) *Resolver {
	return &Resolver{aliases: aliases, grammars: grammars}
}

// Resolve matches one mention against a catalog snapshot.
//
// Tiers run in strict order and the first success wins:
//
//  1. exact_code — normalized brand (with spelling variants) plus the
//     extracted chassis code against the code index.
//  2. brand_model — normalized brand plus model string, its first token,
//     and its alias class against the model index.
//  3. fuzzy — linear scan gated by a cheap 3-character brand-prefix
//     overlap, then substring containment of code or model either way.
//
// An unmatched mention returns [ConfidenceNone] with no error. The only
// error is a structurally invalid mention (missing brand); ties within a
// tier go to the first candidate in catalog order.
func (r *Resolver) Resolve(mention Mention, index *Index) (Match, error) {
	if strings.TrimSpace(mention.Brand) == "" {
		return Match{Confidence: ConfidenceNone}, apperr.ValidationError(
			"Mention is missing its brand",
			apperr.FieldError{Field: "brand", Message: "This field is required"},
		)
	}

	brandKeys := r.brandVariants(mention.Brand)
	code := r.mentionCode(mention)

	// Tier 1: exact chassis code.
	if code != "" {
		codeKey := strings.ToLower(code)
		for _, brandKey := range brandKeys {
			if candidates := index.lookupCode(brandKey, codeKey); len(candidates) > 0 {
				return Match{
					GenerationID: index.entries[candidates[0]].row.GenerationID,
					Confidence:   ConfidenceExactCode,
				}, nil
			}
		}
	}

	// Tier 2: brand + model, widened by first token and alias class.
	for _, brandKey := range brandKeys {
		for _, modelKey := range r.modelVariants(mention.Model) {
			if candidates := index.lookupModel(brandKey, modelKey); len(candidates) > 0 {
				return Match{
					GenerationID: index.entries[candidates[0]].row.GenerationID,
					Confidence:   ConfidenceBrandModel,
				}, nil
			}
		}
	}

	// Tier 3: fuzzy overlap over the full snapshot.
	mentionBrand := normalize.Name(mention.Brand)
	mentionModel := normalize.Name(mention.Model)
	codeKey := strings.ToLower(code)

	for i := range index.entries {
		e := &index.entries[i]

		// Cheap rejection before any substring work.
		if !brandPrefixOverlap(mentionBrand, e.brandKey) {
			continue
		}

		if codeKey != "" && e.codeKey != "" &&
			(strings.Contains(e.codeKey, codeKey) || strings.Contains(codeKey, e.codeKey)) {
			return Match{GenerationID: e.row.GenerationID, Confidence: ConfidenceFuzzy}, nil
		}

		if mentionModel != "" && e.modelKey != "" &&
			(strings.Contains(e.modelKey, mentionModel) || strings.Contains(mentionModel, e.modelKey)) {
			return Match{GenerationID: e.row.GenerationID, Confidence: ConfidenceFuzzy}, nil
		}
	}

	return Match{Confidence: ConfidenceNone}, nil
}

// mentionCode derives the best chassis code for a mention: the dedicated
// chassis field first (grammar-validated, then verbatim), then a code
// embedded in the model text.
func (r *Resolver) mentionCode(mention Mention) string {
	if code := r.grammars.Extract(mention.Brand, mention.ChassisCode); code != "" {
		return code
	}
	if raw := strings.ToUpper(strings.TrimSpace(mention.ChassisCode)); raw != "" {
		// Codes for brands without a grammar still match the index
		// verbatim; precision comes from the brand half of the key.
		return raw
	}
	return r.grammars.Extract(mention.Brand, mention.Model)
}

// brandVariants returns the normalized brand spellings to try, in order:
// the scraped spelling, its known alias, and suffix-stripped forms
// ("mercedes-benz" → "mercedes"). Deduplicated, deterministic order.
func (r *Resolver) brandVariants(brand string) []string {
	key := normalize.Name(brand)

	variants := make([]string, 0, 3)
	seen := make(map[string]bool, 3)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	add(key)
	add(canonicalBrandKey(brand))
	add(strings.TrimSuffix(key, "-benz"))
	add(strings.TrimSuffix(key, " benz"))

	return variants
}

// modelVariants returns the model keys to try in tier 2: the full
// normalized string, its first token, then the alias class of each.
func (r *Resolver) modelVariants(model string) []string {
	key := normalize.Name(model)
	if key == "" {
		return nil
	}

	variants := make([]string, 0, 4)
	seen := make(map[string]bool, 4)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	for _, member := range r.aliases.Class(key) {
		add(member)
	}
	token := firstToken(key)
	for _, member := range r.aliases.Class(token) {
		add(member)
	}

	return variants
}

// brandPrefixOverlap reports whether the first three characters of either
// normalized brand string prefix the other. Shorter strings compare in
// full. This is the fuzzy tier's cheap gate before substring checks.
func brandPrefixOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	prefix := func(s string) string {
		if len(s) > 3 {
			return s[:3]
		}
		return s
	}

	return strings.HasPrefix(b, prefix(a)) || strings.HasPrefix(a, prefix(b))
}
