package services

import (
	"fmt"
	"strings"

	"hisaab/internal/core"
)

// categoryEmoji decorates well-known category labels in reports.
// Presentation only; unknown labels render without an emoji.
var categoryEmoji = map[string]string{
	"food":           "🍽️",
	"coffee":         "☕️",
	"groceries":      "🛒",
	"dining":         "🍴",
	"snacks":         "🍟",
	"travel":         "✈️",
	"transport":      "🚖",
	"transportation": "🚖",
	"shopping":       "🛍️",
	"clothing":       "👗",
	"electronics":    "📱",
	"entertainment":  "🎬",
	"utilities":      "💡",
	"health":         "🏥",
	"education":      "📚",
	"rent":           "🏠",
	"fuel":           "⛽️",
	"subscriptions":  "🔔",
	"fitness":        "🏋️",
	"other":          "❓",
}

func formatAmount(m core.Money) string {
	return fmt.Sprintf("₹%.2f", m.Units())
}

func categoryTitle(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	title := strings.Join(words, " ")
	if emoji, ok := categoryEmoji[category]; ok {
		title += " " + emoji
	}
	return title
}

func itemCount(n int64) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// formatTotals renders per-category sums plus a grand total.
func formatTotals(totals []core.CategoryTotal, grand core.Money) string {
	if len(totals) == 0 {
		return "No expenses recorded yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your total expenses are %s:\n", formatAmount(grand))
	for _, ct := range totals {
		fmt.Fprintf(&b, "• %s: %s (%s)\n", categoryTitle(ct.Category), formatAmount(ct.Total), itemCount(ct.Count))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatTop renders the largest expenses in a range, biggest first.
func formatTop(expenses []core.Expense, rng core.DateRange) string {
	if len(expenses) == 0 {
		return "No expenses found " + rangePhrase(rng) + "."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your biggest expenses %s:\n", rangePhrase(rng))
	for _, e := range expenses {
		b.WriteString(expenseLine(e))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatList renders records filtered by category and range, newest
// first, with the filtered sum up front.
func formatList(category string, expenses []core.Expense, rng core.DateRange) string {
	if len(expenses) == 0 {
		if category == "" || category == core.CategoryOther {
			return "No expenses found " + rangePhrase(rng) + "."
		}
		return fmt.Sprintf("No %s expenses found %s.", categoryTitle(category), rangePhrase(rng))
	}

	var sum core.Money
	for _, e := range expenses {
		sum.Cents += e.Amount.Cents
	}

	var b strings.Builder
	if category == "" || category == core.CategoryOther {
		fmt.Fprintf(&b, "Your expenses %s add up to %s:\n", rangePhrase(rng), formatAmount(sum))
	} else {
		fmt.Fprintf(&b, "Your %s expenses %s add up to %s:\n", categoryTitle(category), rangePhrase(rng), formatAmount(sum))
	}
	for _, e := range expenses {
		b.WriteString(expenseLine(e))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatRecorded confirms stored clauses and names the ones that were
// skipped (no amount) or could not be saved. A save failure is never
// reported as a missing amount.
func formatRecorded(recorded []core.Expense, skipped, failed []string) string {
	if len(recorded) == 0 && len(failed) == 0 {
		return "I couldn't find any expense amounts in that. Try something like \"coffee 150\"."
	}

	var b strings.Builder
	switch {
	case len(recorded) == 0:
		b.WriteString("I couldn't save that right now:\n")
	case len(recorded) == 1:
		b.WriteString("Recorded 1 expense:\n")
	default:
		fmt.Fprintf(&b, "Recorded %d expenses:\n", len(recorded))
	}
	for _, e := range recorded {
		fmt.Fprintf(&b, "- %s – %s (%s)\n", e.Description, formatAmount(e.Amount), categoryTitle(e.Category))
	}
	for _, s := range failed {
		fmt.Fprintf(&b, "Couldn't save %q, please try again.\n", s)
	}
	for _, s := range skipped {
		fmt.Fprintf(&b, "Skipped %q: no amount found.\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func expenseLine(e core.Expense) string {
	return fmt.Sprintf("- %s – %s on %s\n", e.Description, formatAmount(e.Amount), e.Date.Human())
}

func rangePhrase(rng core.DateRange) string {
	if rng.IsAllTime() {
		return "overall"
	}
	if rng.Start.Equal(rng.End.Time) {
		return "on " + rng.Start.Human()
	}
	return fmt.Sprintf("from %s to %s", rng.Start.Human(), rng.End.Human())
}
