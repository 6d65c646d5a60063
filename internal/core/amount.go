package core

import (
	"regexp"
	"strconv"
	"strings"
)

// The amount grammar is one combined alternation so that the engine's
// leftmost-first matching decides precedence at each text position,
// not a hand-rolled priority loop:
//
//  1. currency symbol or word, then a number with 0-2 decimals
//  2. a number with 0-2 decimals, then a currency symbol or word
//  3. a bare number with 0-2 decimals bounded by whitespace or the
//     string edges (a trailing "%" fails the boundary, so percentages
//     never parse as amounts)
var amountPattern = regexp.MustCompile(
	`(?i)(?:₹|\$|rs\.?|rupees)\s*(\d+(?:\.\d{1,2})?)` +
		`|(\d+(?:\.\d{1,2})?)\s*(?:₹|\$|rs\.?|rupees)` +
		`|(?:^|\s)(\d+(?:\.\d{1,2})?)(?:\s|$)`)

// currencyToken matches the currency markers stripped out of clause
// text when deriving the record description.
var currencyToken = regexp.MustCompile(`(?i)[₹$]|\brs\b\.?|\brupees\b`)

// ExtractAmount finds the monetary amount in one clause. The second
// return value is false when the clause carries no recognizable amount;
// such clauses are filtered out, not treated as errors.
func ExtractAmount(clause string) (Money, bool) {
	groups := amountPattern.FindStringSubmatch(clause)
	if groups == nil {
		return Money{}, false
	}
	var numeric string
	for _, g := range groups[1:] {
		if g != "" {
			numeric = g
			break
		}
	}
	cents, err := parseCents(numeric)
	if err != nil {
		return Money{}, false
	}
	return Money{Cents: cents}, true
}

// ClauseDescription derives the stored description from a clause:
// currency tokens removed, whitespace collapsed, bounded length.
func ClauseDescription(clause string) string {
	stripped := currencyToken.ReplaceAllString(clause, " ")
	stripped = strings.Join(strings.Fields(stripped), " ")
	return TruncateDescription(stripped)
}

// parseCents converts a matched numeric string (at most two decimal
// digits) to cents exactly.
func parseCents(s string) (int64, error) {
	intPart, fracPart, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, err
	}
	const maxUnits = (1<<63 - 1) / 100
	if units > maxUnits {
		return 0, ErrInvalidAmount
	}
	cents := units * 100
	switch len(fracPart) {
	case 0:
	case 1:
		cents += int64(fracPart[0]-'0') * 10
	case 2:
		cents += int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
	default:
		return 0, ErrInvalidAmount
	}
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
