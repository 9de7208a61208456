package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"", "gap", 3},
		{"gap", "", 3},
		{"$gap", "$gap", 0},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"$primary", "$primray", 2},
		{"theme", "them", 1},
		{"mixins", "mixin", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			result := LevenshteinDistance(tt.s1, tt.s2)
			if result != tt.expected {
				t.Errorf("LevenshteinDistance(%q, %q) = %d; want %d", tt.s1, tt.s2, result, tt.expected)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"$primary", "$accent", "$spacing", "$radius", "$shadow"}

	tests := []struct {
		name     string
		target   string
		opts     *FuzzyMatchOptions
		expected []string
	}{
		{
			name:     "exact match",
			target:   "$primary",
			opts:     nil,
			expected: []string{"$primary"},
		},
		{
			name:     "transposed characters",
			target:   "$primray",
			opts:     nil,
			expected: []string{"$primary"},
		},
		{
			name:     "case insensitive",
			target:   "$PRIMARY",
			opts:     nil,
			expected: []string{"$primary"},
		},
		{
			name:   "case sensitive",
			target: "$PRIMARY",
			opts: &FuzzyMatchOptions{
				MaxDistance:    3,
				MaxSuggestions: 3,
				CaseSensitive:  true,
			},
			expected: []string{},
		},
		{
			name:     "multiple suggestions sorted by distance",
			target:   "$shading",
			opts:     nil,
			expected: []string{"$spacing", "$shadow"},
		},
		{
			name:     "no match too far",
			target:   "xyz",
			opts:     nil,
			expected: []string{},
		},
		{
			name:   "max suggestions limit",
			target: "$shading",
			opts: &FuzzyMatchOptions{
				MaxDistance:    3,
				MaxSuggestions: 1,
			},
			expected: []string{"$spacing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindSimilar(tt.target, candidates, tt.opts)

			if len(result) != len(tt.expected) {
				t.Errorf("FindSimilar(%q) returned %d results; want %d\nGot: %v\nWant: %v",
					tt.target, len(result), len(tt.expected), result, tt.expected)
				return
			}

			// Order matters due to distance sorting
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("FindSimilar(%q) = %v; want %v", tt.target, result, tt.expected)
			}
		})
	}
}

func TestFindBestMatch(t *testing.T) {
	candidates := []string{"styles.scss", "theme.scss", "mixins.scss", "layout.scss"}

	tests := []struct {
		target   string
		expected string
	}{
		{"stlyes.scss", "styles.scss"},
		{"theme.sccs", "theme.scss"},
		{"mixin.scss", "mixins.scss"},
		{"XYZ", ""}, // No close match
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			result := FindBestMatch(tt.target, candidates, nil)
			if result != tt.expected {
				t.Errorf("FindBestMatch(%q) = %q; want %q", tt.target, result, tt.expected)
			}
		})
	}
}

func TestHasCloseMatch(t *testing.T) {
	candidates := []string{"$primary", "$accent", "$spacing"}

	tests := []struct {
		target   string
		expected bool
	}{
		{"$primray", true},
		{"$primary", true},
		{"$acent", true},
		{"zzzzzz", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			result := HasCloseMatch(tt.target, candidates, nil)
			if result != tt.expected {
				t.Errorf("HasCloseMatch(%q) = %v; want %v", tt.target, result, tt.expected)
			}
		})
	}
}

func TestFuzzyMatchOptions(t *testing.T) {
	candidates := []string{"$primary", "$accent", "$spacing"}

	result := FindSimilar("$primray", candidates, &FuzzyMatchOptions{
		MaxDistance:    3,
		MaxSuggestions: 1,
	})

	if len(result) > 1 {
		t.Errorf("Expected max 1 suggestion, got %d", len(result))
	}

	if len(result) == 0 {
		t.Errorf("Expected at least 1 suggestion")
	}
}

func TestFindSimilarEmptyCandidates(t *testing.T) {
	result := FindSimilar("test", []string{}, nil)
	if len(result) != 0 {
		t.Errorf("Expected empty result for empty candidates, got %v", result)
	}
}

func TestFindSimilarEmptyTarget(t *testing.T) {
	candidates := []string{"ab", "xy"}
	result := FindSimilar("", candidates, &FuzzyMatchOptions{
		MaxDistance:    2,
		MaxSuggestions: 3,
	})

	// Empty string has distance len(candidate) from each candidate, so
	// short candidates still land within MaxDistance
	if len(result) == 0 {
		t.Errorf("Expected some matches for empty target string with short candidates")
	}
}
