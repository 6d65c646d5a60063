// Package worker mirrors stored expenses to an external sheet. Events
// drive the fast path; a periodic catch-up sweep picks up anything the
// event path missed.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hisaab/internal/amqp"
	"hisaab/internal/core"
	"hisaab/internal/sheets"
	"hisaab/internal/storage"
)

// MirrorStore is the subset of the expense store the worker needs.
type MirrorStore interface {
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	ListUnmirrored(ctx context.Context, limit int) ([]core.Expense, error)
	MarkMirrored(ctx context.Context, id int64) error
}

type MirrorWorker struct {
	store     MirrorStore
	appender  sheets.RowAppender
	batchSize int
}

func NewMirrorWorker(store MirrorStore, appender sheets.RowAppender, batchSize int) *MirrorWorker {
	return &MirrorWorker{
		store:     store,
		appender:  appender,
		batchSize: batchSize,
	}
}

// HandleRecorded mirrors the expense named by one event. A record that
// no longer exists is dropped, not retried.
func (w *MirrorWorker) HandleRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	expense, err := w.store.GetExpense(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "Expense from event no longer exists, dropping", "expense_id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load expense %d: %w", msg.ID, err)
	}

	return w.mirror(ctx, expense)
}

// ProcessPending mirrors up to one batch of unmirrored records, oldest
// first. Returns how many were mirrored; a failure stops the batch so
// the remainder is retried on the next sweep.
func (w *MirrorWorker) ProcessPending(ctx context.Context) (int, error) {
	pending, err := w.store.ListUnmirrored(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list unmirrored expenses: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "Mirroring pending expenses", "records", len(pending))

	for i, expense := range pending {
		if err := w.mirror(ctx, expense); err != nil {
			return i, fmt.Errorf("mirror expense %d: %w", expense.ID, err)
		}
	}

	return len(pending), nil
}

func (w *MirrorWorker) mirror(ctx context.Context, e core.Expense) error {
	if err := w.appender.AppendExpense(ctx, e); err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}
	if err := w.store.MarkMirrored(ctx, e.ID); err != nil {
		return fmt.Errorf("mark mirrored: %w", err)
	}

	slog.InfoContext(ctx, "Expense mirrored",
		"expense_id", e.ID,
		"category", e.Category,
		"amount_cents", e.Amount.Cents)

	return nil
}
