package resolve

import (
	"regexp"
	"strings"

	"github.com/minhdao/carlex/pkg/normalize"
)

// brandAliases folds scraped make spellings onto the grammar table's
// canonical brand keys (normalized form).
var brandAliases = map[string]string{
	"mercedes":      "mercedes-benz",
	"mercedes benz": "mercedes-benz",
	"mercedesbenz":  "mercedes-benz",
	"benz":          "mercedes-benz",
	"vw":            "volkswagen",
	"bimmer":        "bmw",
	"lambo":         "lamborghini",
	"datsun":        "nissan",
}

// defaultGrammars holds one regular-expression family per brand. Each
// brand has its own code grammar; patterns are tried in order and the
// first match wins. All patterns run against uppercased text and are
// word-bounded so a grammar never accepts a fragment of a longer token.
var defaultGrammars = map[string][]string{
	// Exx / Fxx / Gxx platform codes (E46, E39, F30, G20).
	"bmw": {`\b[EFG]\d{2,3}\b`},
	// Letter + three digits + optional suffix (W140, R129, C205, W204K).
	"mercedes-benz": {`\b[WCRSAV]\d{3}[A-Z]?\b`},
	// Platform letter + single digit (B8, C7, D2); Typ codes (8J, 8V, 4B).
	"audi": {`\b[BCD][1-9]\b`, `\b[4-8][A-Z]\b`},
	// Golf/Polo Mk numbering and PQ platform codes.
	"volkswagen": {`\bMK\d\b`, `\bPQ\d{2}\b`},
	// Internal series numbers (964, 993, 996, 997, 991, 992, 982).
	"porsche": {`\b9\d{2}\b`},
	// LP power designations double as generation codes (LP640, LP570-4).
	"lamborghini": {`\bLP\d{3,4}(?:-\d)?[A-Z]?\b`},
	// F-number codes (F40, F50, F355, F430).
	"ferrari": {`\bF\d{2,3}[A-Z]?\b`},
	// Chassis codes like AE86, JZA80, ZN6.
	"toyota": {`\b[A-Z]{2,3}\d{2,3}[A-Z]?\b`},
	// Skyline/Silvia/Z chassis codes (R34, S15, Z33, BNR32).
	"nissan": {`\b(?:[A-Z]{1,3}\d{2})\b`},
	// Two letters + one or two digits (EK9, DC2, NA1, AP1, FD2).
	"honda": {`\b[A-Z]{2}\d{1,2}\b`},
	// MX-5 generations (NA, NB, NC, ND) and rotary chassis (FD3S, FC3S).
	"mazda": {`\bF[CD]3S\b`, `\b[N][A-D]\b`},
	// Evo chassis codes (CT9A, CZ4A, CP9A).
	"mitsubishi": {`\bC[NPTZ]\d[A]\b`},
	// Impreza chassis codes (GC8, GDB, GRB, VAB).
	"subaru": {`\bG[CDFR][A-Z0-9]\b`, `\bVA[BF]\b`},
}

// GrammarTable dispatches chassis-code extraction to per-brand pattern
// families. It is injectable so tests and future imports can extend the
// grammar set without touching the resolver.
type GrammarTable struct {
	byBrand map[string][]*regexp.Regexp
}

// NewGrammarTable compiles raw per-brand patterns. Brand keys are
// normalized; invalid patterns panic at construction (the tables are
// static data, so a bad pattern is a programming error).
func NewGrammarTable(raw map[string][]string) *GrammarTable {
	table := &GrammarTable{byBrand: make(map[string][]*regexp.Regexp, len(raw))}

	for brand, patterns := range raw {
		compiled := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			compiled = append(compiled, regexp.MustCompile(p))
		}
		table.byBrand[normalize.Name(brand)] = compiled
	}

	return table
}

// DefaultGrammarTable returns the built-in per-brand code grammars.
func DefaultGrammarTable() *GrammarTable {
	return NewGrammarTable(defaultGrammars)
}

// Extract pulls a chassis/generation code out of free text.
//
// It returns the first match of the brand's grammar, uppercased, or the
// empty string when the brand is unknown or nothing matches. Absence of a
// match is the expected outcome for many records, never an error.
func (g *GrammarTable) Extract(brand, freeText string) string {
	if freeText == "" {
		return ""
	}

	patterns, ok := g.byBrand[canonicalBrandKey(brand)]
	if !ok {
		return ""
	}

	// Uppercase once; the grammars are written against uppercase text.
	text := strings.ToUpper(freeText)
	for _, pattern := range patterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}

	return ""
}

// canonicalBrandKey normalizes a scraped brand string onto the grammar
// table's key space, folding known abbreviations and suffix variants.
func canonicalBrandKey(brand string) string {
	key := normalize.Name(brand)
	if canonical, ok := brandAliases[key]; ok {
		return canonical
	}
	return key
}
