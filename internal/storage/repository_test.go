package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hisaab/internal/core"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustAppend(t *testing.T, repo *SQLiteRepository, desc string, cents int64, category string, date core.Date) core.Expense {
	t.Helper()
	e, err := repo.Append(context.Background(), core.Expense{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        date,
	})
	if err != nil {
		t.Fatalf("append %q: %v", desc, err)
	}
	return e
}

func TestAppendAndGet(t *testing.T) {
	repo := testRepo(t)
	date := core.NewDate(2026, 8, 30)

	saved := mustAppend(t, repo, "coffee", 15000, "coffee", date)
	if saved.ID == 0 {
		t.Error("expected assigned ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected assigned creation timestamp")
	}

	got, err := repo.GetExpense(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("get expense: %v", err)
	}
	if got.Description != "coffee" || got.Amount.Cents != 15000 || got.Category != "coffee" {
		t.Errorf("unexpected expense: %+v", got)
	}
	if got.Date.ISO() != "2026-08-30" {
		t.Errorf("date = %s, want 2026-08-30", got.Date.ISO())
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	repo := testRepo(t)
	date := core.NewDate(2026, 8, 30)

	tests := []struct {
		name    string
		expense core.Expense
		wantErr error
	}{
		{
			name:    "zero amount",
			expense: core.Expense{Description: "coffee", Category: "coffee", Date: date},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "empty description",
			expense: core.Expense{Amount: core.Money{Cents: 100}, Category: "coffee", Date: date},
			wantErr: core.ErrEmptyDesc,
		},
		{
			name:    "empty category",
			expense: core.Expense{Description: "coffee", Amount: core.Money{Cents: 100}, Date: date},
			wantErr: core.ErrEmptyCategory,
		},
		{
			name:    "zero date",
			expense: core.Expense{Description: "coffee", Amount: core.Money{Cents: 100}, Category: "coffee"},
			wantErr: core.ErrZeroDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Append(context.Background(), tt.expense)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Append error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetExpenseNotFound(t *testing.T) {
	repo := testRepo(t)
	if _, err := repo.GetExpense(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetExpense error = %v, want ErrNotFound", err)
	}
}

func TestCategoryTotals(t *testing.T) {
	repo := testRepo(t)
	aug := core.DateRange{Start: core.NewDate(2026, 8, 1), End: core.NewDate(2026, 8, 31)}

	mustAppend(t, repo, "coffee", 15000, "coffee", core.NewDate(2026, 8, 10))
	mustAppend(t, repo, "coffee again", 5000, "coffee", core.NewDate(2026, 8, 12))
	mustAppend(t, repo, "uber", 30000, "transport", core.NewDate(2026, 8, 11))
	mustAppend(t, repo, "old groceries", 99900, "groceries", core.NewDate(2026, 7, 1))

	totals, grand, err := repo.CategoryTotals(context.Background(), aug)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if grand.Cents != 50000 {
		t.Errorf("grand total = %d, want 50000", grand.Cents)
	}
	if len(totals) != 2 {
		t.Fatalf("got %d categories, want 2", len(totals))
	}
	// Sorted by total descending.
	if totals[0].Category != "transport" || totals[0].Total.Cents != 30000 || totals[0].Count != 1 {
		t.Errorf("totals[0] = %+v", totals[0])
	}
	if totals[1].Category != "coffee" || totals[1].Total.Cents != 20000 || totals[1].Count != 2 {
		t.Errorf("totals[1] = %+v", totals[1])
	}
}

func TestCategoryTotalsEmptyRange(t *testing.T) {
	repo := testRepo(t)
	mustAppend(t, repo, "coffee", 15000, "coffee", core.NewDate(2026, 8, 10))

	rng := core.DateRange{Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 12, 31)}
	totals, grand, err := repo.CategoryTotals(context.Background(), rng)
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(totals) != 0 || grand.Cents != 0 {
		t.Errorf("totals = %v, grand = %d, want empty and 0", totals, grand.Cents)
	}
}

func TestTopExpenses(t *testing.T) {
	repo := testRepo(t)
	aug := core.DateRange{Start: core.NewDate(2026, 8, 1), End: core.NewDate(2026, 8, 31)}

	mustAppend(t, repo, "coffee", 15000, "coffee", core.NewDate(2026, 8, 10))
	mustAppend(t, repo, "uber", 30000, "transport", core.NewDate(2026, 8, 11))
	mustAppend(t, repo, "groceries", 82050, "groceries", core.NewDate(2026, 8, 12))
	mustAppend(t, repo, "chai", 2000, "coffee", core.NewDate(2026, 8, 13))

	top, err := repo.TopExpenses(context.Background(), aug, 2)
	if err != nil {
		t.Fatalf("top expenses: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d expenses, want 2", len(top))
	}
	if top[0].Description != "groceries" || top[1].Description != "uber" {
		t.Errorf("top = [%s, %s], want [groceries, uber]", top[0].Description, top[1].Description)
	}
}

func TestListByCategory(t *testing.T) {
	repo := testRepo(t)
	aug := core.DateRange{Start: core.NewDate(2026, 8, 1), End: core.NewDate(2026, 8, 31)}

	mustAppend(t, repo, "coffee", 15000, "coffee", core.NewDate(2026, 8, 10))
	mustAppend(t, repo, "chai", 2000, "coffee", core.NewDate(2026, 8, 13))
	mustAppend(t, repo, "uber", 30000, "transport", core.NewDate(2026, 8, 11))

	t.Run("single category, newest first", func(t *testing.T) {
		got, err := repo.ListByCategory(context.Background(), "coffee", aug)
		if err != nil {
			t.Fatalf("list by category: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d expenses, want 2", len(got))
		}
		if got[0].Description != "chai" || got[1].Description != "coffee" {
			t.Errorf("order = [%s, %s], want [chai, coffee]", got[0].Description, got[1].Description)
		}
	})

	t.Run("empty category lists everything", func(t *testing.T) {
		got, err := repo.ListByCategory(context.Background(), "", aug)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("got %d expenses, want 3", len(got))
		}
	})

	t.Run("unknown category is empty, not an error", func(t *testing.T) {
		got, err := repo.ListByCategory(context.Background(), "yachts", aug)
		if err != nil {
			t.Fatalf("list unknown: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d expenses, want 0", len(got))
		}
	})
}

func TestMirrorBookkeeping(t *testing.T) {
	repo := testRepo(t)
	date := core.NewDate(2026, 8, 30)

	first := mustAppend(t, repo, "coffee", 15000, "coffee", date)
	second := mustAppend(t, repo, "uber", 30000, "transport", date)

	pending, err := repo.ListUnmirrored(context.Background(), 10)
	if err != nil {
		t.Fatalf("list unmirrored: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2", len(pending))
	}
	if pending[0].ID != first.ID {
		t.Errorf("pending[0].ID = %d, want oldest %d", pending[0].ID, first.ID)
	}

	if err := repo.MarkMirrored(context.Background(), first.ID); err != nil {
		t.Fatalf("mark mirrored: %v", err)
	}

	pending, err = repo.ListUnmirrored(context.Background(), 10)
	if err != nil {
		t.Fatalf("list unmirrored: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Errorf("pending = %+v, want only id %d", pending, second.ID)
	}

	if err := repo.MarkMirrored(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkMirrored(9999) error = %v, want ErrNotFound", err)
	}
}
