package core

import (
	"regexp"
	"strings"
)

// Clause boundaries: comma, ampersand and plus (optionally surrounded
// by whitespace), plus the whole word "and" in any case.
var clauseBoundary = regexp.MustCompile(`(?i)\s*[,&+]\s*|\band\b`)

// Segment splits a normalized utterance into independent expense
// clauses. Blank clauses are dropped; a single utterance may yield zero
// or many clauses.
func Segment(text string) []string {
	parts := clauseBoundary.Split(text, -1)
	clauses := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clauses = append(clauses, p)
		}
	}
	return clauses
}
