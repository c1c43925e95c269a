// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhdao/carlex/pkg/normalize"
)

/*
TestName covers the matching-key pipeline: accents, casing, artifacts.
*/
func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accent_folding", "Murciélago", "murcielago"},
		{"lowercase", "BMW 3 Series", "bmw 3 series"},
		{"trailing_specs", "BMW E46 Specs", "bmw e46"},
		{"stacked_specs", "E46 Specs Specs", "e46"},
		{"specs_not_suffix", "Specs of the E46", "specs of the e46"},
		{"undefined_token", "Golf undefined GTI", "golf gti"},
		{"null_token", "null 911 Turbo", "911 turbo"},
		{"nan_inside_word_kept", "Nissan Skyline", "nissan skyline"},
		{"null_inside_word_kept", "Nullarbor Edition", "nullarbor edition"},
		{"artifact_then_specs", "E46 Specs null", "e46"},
		{"whitespace_collapse", "  3   Series\tTouring ", "3 series touring"},
		{"empty", "", ""},
		{"only_artifacts", "undefined null NaN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Name(tt.in))
		})
	}
}

/*
TestName_Idempotent asserts Name(Name(s)) == Name(s) across adversarial
inputs, including ones where artifact removal exposes a new suffix.
*/
func TestName_Idempotent(t *testing.T) {
	inputs := []string{
		"Murciélago LP640 Specs",
		"BMW E46 Specs Specs",
		"E46 Specs null",
		"undefined",
		"  Mercedes-Benz   W140 ",
		"Škoda Octavia vRS",
		"3 Series Touring Specs undefined",
		"",
	}

	for _, in := range inputs {
		once := normalize.Name(in)
		assert.Equal(t, once, normalize.Name(once), "input %q", in)
	}
}

/*
TestClean verifies display-text cleaning keeps casing and accents.
*/
func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps_casing", "3.2 V6 24V undefined", "3.2 V6 24V"},
		{"keeps_accents", "Murciélago null", "Murciélago"},
		{"trailing_specs", "540i Specs", "540i"},
		{"clean_input_untouched", "M3 CSL", "M3 CSL"},
		{"only_junk", "NaN undefined", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Clean(tt.in))
		})
	}
}

func TestHasArtifacts(t *testing.T) {
	assert.True(t, normalize.HasArtifacts("2.0 TDI undefined"))
	assert.True(t, normalize.HasArtifacts("540i Specs"))
	assert.True(t, normalize.HasArtifacts("NaN"))
	assert.False(t, normalize.HasArtifacts("Nissan 350Z"))
	assert.False(t, normalize.HasArtifacts("M3 CSL"))
	assert.False(t, normalize.HasArtifacts(""))
}
