// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and collapses all runs of whitespace to single spaces.
// This is the canonical form the rule matchers operate on.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Tokenize splits s into lowercase whitespace-separated tokens with
// surrounding punctuation stripped. Tokens that are pure punctuation are
// dropped.
//
// Example:
//
//	Tokenize("What's the weather, today?") returns ["what's", "the", "weather", "today"]
func Tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ContainsAny reports whether the normalized form of s contains any of the
// given substrings. Matching is case-insensitive.
func ContainsAny(s string, substrings []string) bool {
	norm := Normalize(s)
	for _, sub := range substrings {
		if strings.Contains(norm, sub) {
			return true
		}
	}
	return false
}

// HasAlpha reports whether s contains at least one letter.
func HasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
