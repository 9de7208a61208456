package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the furthest edit distance still offered as a suggestion
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps how many suggestions a message carries
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching behavior
type FuzzyMatchOptions struct {
	MaxDistance    int  // Maximum Levenshtein distance to consider (default: 3)
	MaxSuggestions int  // Maximum number of suggestions to return (default: 3)
	CaseSensitive  bool // Whether matching is case-sensitive (default: false)
}

// FindSimilar ranks candidates by edit distance to the target and returns
// the closest ones. Used for "did you mean" hints when a stylesheet path
// or variable name is mistyped.
//
// Example:
//
//	candidates := []string{"theme.scss", "buttons.scss", "nav.scss"}
//	FindSimilar("thmee.scss", candidates, nil)
//	// Returns: ["theme.scss"]
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	if opts == nil {
		opts = &FuzzyMatchOptions{}
	}

	maxDistance := opts.MaxDistance
	if maxDistance == 0 {
		maxDistance = DefaultMaxDistance
	}
	maxSuggestions := opts.MaxSuggestions
	if maxSuggestions == 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	targetCmp := target
	if !opts.CaseSensitive {
		targetCmp = strings.ToLower(target)
	}

	type ranked struct {
		value    string
		distance int
	}

	var matches []ranked
	for _, candidate := range candidates {
		candidateCmp := candidate
		if !opts.CaseSensitive {
			candidateCmp = strings.ToLower(candidate)
		}

		dist := LevenshteinDistance(targetCmp, candidateCmp)
		if dist <= maxDistance {
			matches = append(matches, ranked{value: candidate, distance: dist})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.value)
	}
	return result
}

// LevenshteinDistance counts the single-character edits (insertions,
// deletions, substitutions) needed to turn s1 into s2.
//
// Example:
//
//	LevenshteinDistance("$primary", "$primray") // Returns: 2
//	LevenshteinDistance("@use", "@user")        // Returns: 1
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// Two rolling rows instead of the full matrix
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

// FindBestMatch returns the single closest candidate, or an empty string
// when nothing falls within the max distance
func FindBestMatch(target string, candidates []string, opts *FuzzyMatchOptions) string {
	matches := FindSimilar(target, candidates, opts)
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// HasCloseMatch reports whether at least one candidate falls within the
// max distance
func HasCloseMatch(target string, candidates []string, opts *FuzzyMatchOptions) bool {
	return FindBestMatch(target, candidates, opts) != ""
}
