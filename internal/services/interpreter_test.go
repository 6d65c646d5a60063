package services

import (
	"testing"

	"hisaab/internal/core"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		query     string
		wantKind  core.IntentKind
		wantLimit int
	}{
		{"what's my total spending", core.IntentTotal, 0},
		{"overall expenses please", core.IntentTotal, 0},
		{"sum it up", core.IntentTotal, 0},
		{"biggest expenses this month", core.IntentTop, 10},
		{"most expensive purchases", core.IntentTop, 10},
		{"top expenses this week", core.IntentTop, 5},
		{"largest spend last month", core.IntentTop, 10},
		{"largest spend yesterday", core.IntentTop, 5},
		{"biggest expense of the day", core.IntentTop, 5},
		{"list my expenses", core.IntentList, 0},
		{"show me what I bought", core.IntentList, 0},
		{"how much did I spend on coffee", core.IntentCategory, 0},
		{"coffee spending this month", core.IntentCategory, 0},
		{"", core.IntentCategory, 0},
		// Precedence: total keywords win over ranking keywords.
		{"total of my biggest expenses", core.IntentTotal, 0},
		// Ranking keywords win over enumeration keywords.
		{"list the top expenses", core.IntentTop, 10},
		// Case-insensitive matching.
		{"TOTAL SPEND", core.IntentTotal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			kind, limit := classifyIntent(tt.query)
			if kind != tt.wantKind {
				t.Errorf("classifyIntent(%q) kind = %s, want %s", tt.query, kind, tt.wantKind)
			}
			if limit != tt.wantLimit {
				t.Errorf("classifyIntent(%q) limit = %d, want %d", tt.query, limit, tt.wantLimit)
			}
		})
	}
}
