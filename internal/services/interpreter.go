package services

import (
	"strings"

	"hisaab/internal/core"
)

// Keyword sets for intent classification, checked in precedence order.
var (
	totalKeywords = []string{"total", "overall", "sum"}
	topKeywords   = []string{"biggest", "largest", "most expensive", "top"}
	listKeywords  = []string{"list", "all", "show me"}
	shortRange    = []string{"week", "day"}
)

const (
	topLimitDefault    = 10
	topLimitShortRange = 5
)

// classifyIntent maps a query utterance to an intent kind and, for top
// queries, an item limit. Matching is case-insensitive substring
// membership; the first keyword set that matches wins. Utterances
// matching nothing default to a category query.
func classifyIntent(query string) (core.IntentKind, int) {
	q := strings.ToLower(query)

	if containsAny(q, totalKeywords) {
		return core.IntentTotal, 0
	}
	if containsAny(q, topKeywords) {
		limit := topLimitDefault
		if containsAny(q, shortRange) {
			limit = topLimitShortRange
		}
		return core.IntentTop, limit
	}
	if containsAny(q, listKeywords) {
		return core.IntentList, 0
	}
	return core.IntentCategory, 0
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
