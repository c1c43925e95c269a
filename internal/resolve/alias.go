package resolve

import "github.com/minhdao/carlex/pkg/normalize"

// defaultAliasClasses lists known equivalence classes of model spellings:
// marketing names, AMG/trim suffixes scraped as the model itself, and
// market-specific renames. Hand-maintained; ordering within a class is the
// preferred display order but has no matching significance.
//
// Accent variants ("Huracán"/"Huracan") are listed for documentation even
// though normalization already folds them together.
var defaultAliasClasses = [][]string{
	{"C-Class", "C-Klasse", "C63", "C63 AMG", "C 63 AMG"},
	{"E-Class", "E-Klasse", "E63", "E63 AMG"},
	{"S-Class", "S-Klasse", "S600", "S65 AMG"},
	{"3 Series", "3er", "M3"},
	{"5 Series", "5er", "M5"},
	{"Huracán", "Huracan"},
	{"Murciélago", "Murcielago"},
	{"Golf", "Rabbit", "Golf GTI"},
	{"Beetle", "New Beetle", "Käfer"},
	{"911", "Carrera", "911 Carrera"},
	{"Fairlady Z", "370Z"},
	{"Skyline GT-R", "GT-R", "GTR"},
	{"Lancer Evolution", "Lancer Evo", "Evo"},
	{"Impreza", "Impreza WRX", "WRX", "WRX STI"},
	{"Corolla", "Corolla Levin", "Sprinter Trueno"},
	{"MX-5", "Miata", "Roadster", "Eunos Roadster"},
}

// AliasTable maps any spelling in an equivalence class to the full class.
// Lookup is bidirectional: canonical name and variants all resolve to the
// same set. It widens the brand_model tier only — alias membership alone
// is too coarse to ever constitute a match.
type AliasTable struct {
	classes map[string][]string
}

// NewAliasTable builds an [AliasTable] from raw spelling classes. All
// entries are normalized; later classes never overwrite earlier ones, so
// the table contents are deterministic regardless of map iteration.
func NewAliasTable(rawClasses [][]string) *AliasTable {
	table := &AliasTable{classes: make(map[string][]string)}

	for _, raw := range rawClasses {
		class := make([]string, 0, len(raw))
		seen := make(map[string]bool, len(raw))
		for _, spelling := range raw {
			key := normalize.Name(spelling)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			class = append(class, key)
		}

		for _, key := range class {
			if _, exists := table.classes[key]; !exists {
				table.classes[key] = class
			}
		}
	}

	return table
}

// DefaultAliasTable returns the built-in alias classes.
func DefaultAliasTable() *AliasTable {
	return NewAliasTable(defaultAliasClasses)
}

// Class returns the normalized equivalence class for name. The result
// always contains the normalized input (first) so callers can range over
// it without special-casing unknown names.
func (t *AliasTable) Class(name string) []string {
	key := normalize.Name(name)
	if key == "" {
		return nil
	}

	class, ok := t.classes[key]
	if !ok {
		return []string{key}
	}

	// Put the queried spelling first, then the rest of the class in its
	// declared order.
	result := make([]string, 0, len(class))
	result = append(result, key)
	for _, member := range class {
		if member != key {
			result = append(result, member)
		}
	}
	return result
}
