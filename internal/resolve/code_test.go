package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarTableExtract(t *testing.T) {
	grammars := DefaultGrammarTable()

	tests := []struct {
		name     string
		brand    string
		freeText string
		want     string
	}{
		{"bmw platform code", "BMW", "the E46 coupe", "E46"},
		{"bmw lowercase input", "bmw", "3 series e39 touring", "E39"},
		{"bmw modern g code", "BMW", "G20 sedan", "G20"},
		{"mercedes w code", "Mercedes-Benz", "W140 S-Class", "W140"},
		{"mercedes via short alias", "Mercedes", "C205 coupe", "C205"},
		{"mercedes via benz alias", "Benz", "R129 SL", "R129"},
		{"porsche series number", "Porsche", "997 Carrera", "997"},
		{"lamborghini lp code", "Lamborghini", "Murcielago LP640", "LP640"},
		{"lamborghini lp awd suffix", "Lambo", "LP570-4 Superleggera", "LP570-4"},
		{"toyota chassis", "Toyota", "Corolla AE86", "AE86"},
		{"nissan skyline", "Nissan", "Skyline R34 GT-R", "R34"},
		{"nissan via datsun alias", "Datsun", "240Z S30", "S30"},
		{"honda type r", "Honda", "Civic EK9 Type R", "EK9"},
		{"vw via abbreviation", "VW", "Golf Mk4", "MK4"},
		{"no match for brand", "BMW", "just a sedan", ""},
		{"unknown brand", "Koenigsegg", "CC8S", ""},
		{"empty text", "BMW", "", ""},
		{"first match wins", "BMW", "E30 then E36", "E30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, grammars.Extract(tt.brand, tt.freeText))
		})
	}
}

func TestGrammarTableExtractUppercasesResult(t *testing.T) {
	grammars := DefaultGrammarTable()

	got := grammars.Extract("bmw", "e46 m3")
	assert.Equal(t, "E46", got, "extracted codes are always uppercase")
}

func TestCanonicalBrandKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mercedes", "mercedes-benz"},
		{"Mercedes Benz", "mercedes-benz"},
		{"MERCEDES-BENZ", "mercedes-benz"},
		{"VW", "volkswagen"},
		{"Datsun", "nissan"},
		{"BMW", "bmw"},
		{"Pagani", "pagani"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalBrandKey(tt.in))
		})
	}
}
