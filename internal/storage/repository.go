// Package storage persists expense records in SQLite. The store is
// append-only: records are inserted and read, never updated or deleted,
// except for the mirror bookkeeping flag.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hisaab/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an expense ID does not exist.
var ErrNotFound = errors.New("expense not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append inserts one validated expense and returns it with its assigned
// ID and creation timestamp.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (description, amount_cents, category, date)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`,
		e.Description, e.Amount.Cents, e.Category, e.Date.ISO())

	var createdAt time.Time
	if err := row.Scan(&e.ID, &createdAt); err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	e.CreatedAt = createdAt

	return e, nil
}

// GetExpense retrieves a single expense by ID.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, description, amount_cents, category, date, created_at
		FROM expenses WHERE id = ?`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// CategoryTotals returns per-category sums within the range, largest
// first, plus the grand total across all of them.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, rng core.DateRange) ([]core.CategoryTotal, core.Money, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents), COUNT(*)
		FROM expenses
		WHERE date >= ? AND date <= ?
		GROUP BY category
		ORDER BY SUM(amount_cents) DESC, category ASC`,
		rng.Start.ISO(), rng.End.ISO())
	if err != nil {
		return nil, core.Money{}, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	totals := make([]core.CategoryTotal, 0)
	var grand core.Money
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total.Cents, &ct.Count); err != nil {
			return nil, core.Money{}, fmt.Errorf("scan category total: %w", err)
		}
		grand.Cents += ct.Total.Cents
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Money{}, fmt.Errorf("iterate category totals: %w", err)
	}

	return totals, grand, nil
}

// TopExpenses returns up to limit expenses within the range, most
// expensive first. Ties break on newest date.
func (r *SQLiteRepository) TopExpenses(ctx context.Context, rng core.DateRange, limit int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, category, date, created_at
		FROM expenses
		WHERE date >= ? AND date <= ?
		ORDER BY amount_cents DESC, date DESC, id DESC
		LIMIT ?`,
		rng.Start.ISO(), rng.End.ISO(), limit)
	if err != nil {
		return nil, fmt.Errorf("query top expenses: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListByCategory returns a category's expenses within the range, newest
// first. An empty category lists every expense in the range.
func (r *SQLiteRepository) ListByCategory(ctx context.Context, category string, rng core.DateRange) ([]core.Expense, error) {
	query := `
		SELECT id, description, amount_cents, category, date, created_at
		FROM expenses
		WHERE date >= ? AND date <= ?`
	args := []any{rng.Start.ISO(), rng.End.ISO()}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses by category: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// ListUnmirrored returns up to limit expenses not yet mirrored to the
// external sheet, oldest first.
func (r *SQLiteRepository) ListUnmirrored(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, category, date, created_at
		FROM expenses
		WHERE mirrored = 0
		ORDER BY id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query unmirrored expenses: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// MarkMirrored records that an expense row has been appended to the
// external sheet.
func (r *SQLiteRepository) MarkMirrored(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE expenses SET mirrored = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark expense mirrored: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark expense mirrored: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e         core.Expense
		dateISO   string
		createdAt time.Time
	)
	if err := row.Scan(&e.ID, &e.Description, &e.Amount.Cents, &e.Category, &dateISO, &createdAt); err != nil {
		return core.Expense{}, err
	}
	date, err := core.ParseDate(dateISO)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse stored date %q: %w", dateISO, err)
	}
	e.Date = date
	e.CreatedAt = createdAt
	return e, nil
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	expenses := make([]core.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}
