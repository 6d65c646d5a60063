package core

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeCategoryLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain word", "coffee", "coffee"},
		{"mixed case", "Coffee", "coffee"},
		{"first token only", "coffee shop visit", "coffee"},
		{"punctuation collapsed", "ice-cream", "ice_cream"},
		{"surrounding space", "  travel  ", "travel"},
		{"empty", "", CategoryOther},
		{"whitespace only", "   \n ", CategoryOther},
		{"punctuation only", "!!!", CategoryOther},
		{"long label truncated", strings.Repeat("a", 40), strings.Repeat("a", MaxCategoryLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCategoryLabel(tt.raw)
			if got != tt.want {
				t.Fatalf("NormalizeCategoryLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeCategoryLabelInvariants(t *testing.T) {
	inputs := []string{"Coffee Shop", "FOOD!", "multi word answer", "über-eats", "  ", "a_b-c.d e"}
	for _, in := range inputs {
		got := NormalizeCategoryLabel(in)
		if len([]rune(got)) > MaxCategoryLen {
			t.Errorf("label %q longer than %d", got, MaxCategoryLen)
		}
		if strings.ContainsAny(got, " \t\n") {
			t.Errorf("label %q contains whitespace", got)
		}
		if got != strings.ToLower(got) {
			t.Errorf("label %q not lowercase", got)
		}
	}
}

func TestDateRange(t *testing.T) {
	today := NewDate(2026, 8, 30)

	all := AllTime(today)
	if err := all.Validate(); err != nil {
		t.Fatalf("all-time range invalid: %v", err)
	}
	if !all.IsAllTime() {
		t.Fatal("AllTime range not recognized as all-time")
	}
	if !all.Contains(NewDate(1970, 1, 1)) || !all.Contains(today) {
		t.Fatal("all-time range must contain its own bounds")
	}
	if all.Contains(NewDate(2026, 8, 31)) {
		t.Fatal("all-time range must not extend past today")
	}

	inverted := DateRange{Start: today, End: NewDate(2026, 8, 1)}
	if err := inverted.Validate(); err != ErrInvertedRange {
		t.Fatalf("inverted range: got %v, want ErrInvertedRange", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Description: "coffee 150",
		Amount:      Money{Cents: 15000},
		Category:    "coffee",
		Date:        NewDate(2026, 8, 30),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid expense, got %v", err)
	}

	bads := []Expense{
		{Description: "", Amount: Money{Cents: 1}, Category: "c", Date: NewDate(2026, 1, 1)},
		{Description: "x", Amount: Money{Cents: 0}, Category: "c", Date: NewDate(2026, 1, 1)},
		{Description: "x", Amount: Money{Cents: 1}, Category: " ", Date: NewDate(2026, 1, 1)},
		{Description: "x", Amount: Money{Cents: 1}, Category: "c", Date: Date{Time: time.Time{}}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-30")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.ISO() != "2026-08-30" {
		t.Fatalf("round trip = %q", d.ISO())
	}
	if _, err := ParseDate("30/08/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}
