// Package services holds the conversational pipeline: utterances in,
// user-facing report text out. The front-end hands over raw text and
// renders whatever string comes back; all decisions live here.
package services

import (
	"context"
	"time"

	"hisaab/internal/core"
	"hisaab/internal/log"
)

const apologyMessage = "Sorry, something went wrong on my end. Please try again."

// Classifier is the external text-understanding boundary. Every method
// is total: failures resolve to deterministic fallbacks, never errors.
type Classifier interface {
	Normalize(ctx context.Context, raw string) string
	Category(ctx context.Context, text string) string
	DateRange(ctx context.Context, text string) core.DateRange
}

// RecordStore is the append-only expense store the assistant reads and
// writes.
type RecordStore interface {
	Append(ctx context.Context, e core.Expense) (core.Expense, error)
	CategoryTotals(ctx context.Context, rng core.DateRange) ([]core.CategoryTotal, core.Money, error)
	TopExpenses(ctx context.Context, rng core.DateRange, limit int) ([]core.Expense, error)
	ListByCategory(ctx context.Context, category string, rng core.DateRange) ([]core.Expense, error)
}

// EventPublisher announces newly recorded expenses. Publishing is
// best-effort; a nil publisher disables it.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, id int64) error
}

// Assistant orchestrates the add and query pipelines.
type Assistant struct {
	classifier Classifier
	store      RecordStore
	publisher  EventPublisher
	logger     *log.Logger
	now        func() time.Time
}

func NewAssistant(classifier Classifier, store RecordStore, publisher EventPublisher, logger *log.Logger) *Assistant {
	return &Assistant{
		classifier: classifier,
		store:      store,
		publisher:  publisher,
		logger:     logger.WithComponent(log.ComponentAssistant),
		now:        time.Now,
	}
}

// WithClock overrides the assistant's time source. Intended for tests.
func (a *Assistant) WithClock(now func() time.Time) *Assistant {
	a.now = now
	return a
}

// HandleAdd records every recognizable expense clause in the utterance
// and returns a confirmation. Clauses without an amount are skipped,
// and a storage failure on one clause does not stop the rest.
func (a *Assistant) HandleAdd(ctx context.Context, utterance string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "Add handler panicked",
				log.FieldOperation, log.OpAdd, log.FieldUtterance, utterance, "panic", r)
			reply = apologyMessage
		}
	}()

	today := core.DateOf(a.now())
	normalized := a.classifier.Normalize(ctx, utterance)

	var (
		recorded []core.Expense
		skipped  []string
		failed   []string
	)
	for _, clause := range core.Segment(normalized) {
		amount, ok := core.ExtractAmount(clause)
		if !ok {
			skipped = append(skipped, clause)
			continue
		}

		expense := core.Expense{
			Description: core.ClauseDescription(clause),
			Amount:      amount,
			Category:    a.classifier.Category(ctx, clause),
			Date:        today,
		}

		saved, err := a.store.Append(ctx, expense)
		if err != nil {
			a.logger.ErrorContext(ctx, "Failed to save expense",
				log.FieldClause, clause, log.FieldError, err)
			failed = append(failed, clause)
			continue
		}
		a.logger.InfoContext(ctx, "Expense recorded",
			log.FieldExpenseID, saved.ID,
			log.FieldCategory, saved.Category,
			log.FieldAmountCents, saved.Amount.Cents)
		recorded = append(recorded, saved)

		a.publishRecorded(ctx, saved.ID)
	}

	return formatRecorded(recorded, skipped, failed)
}

// HandleQuery interprets a query utterance and renders the matching
// records as report text.
func (a *Assistant) HandleQuery(ctx context.Context, utterance string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "Query handler panicked",
				log.FieldOperation, log.OpQuery, log.FieldUtterance, utterance, "panic", r)
			reply = apologyMessage
		}
	}()

	intent := a.interpret(ctx, utterance)
	a.logger.InfoContext(ctx, "Query interpreted",
		log.FieldIntent, string(intent.Kind),
		log.FieldCategory, intent.Category,
		log.FieldRangeStart, intent.Range.Start.ISO(),
		log.FieldRangeEnd, intent.Range.End.ISO())

	switch intent.Kind {
	case core.IntentTotal:
		totals, grand, err := a.store.CategoryTotals(ctx, intent.Range)
		if err != nil {
			a.logger.ErrorContext(ctx, "Failed to aggregate totals", log.FieldError, err)
			return "Sorry, I couldn't look up your expenses right now."
		}
		return formatTotals(totals, grand)

	case core.IntentTop:
		top, err := a.store.TopExpenses(ctx, intent.Range, intent.Limit)
		if err != nil {
			a.logger.ErrorContext(ctx, "Failed to fetch top expenses", log.FieldError, err)
			return "Sorry, I couldn't look up your expenses right now."
		}
		return formatTop(top, intent.Range)

	default: // list and category share the filtered read path
		expenses, err := a.store.ListByCategory(ctx, intent.Category, intent.Range)
		if err != nil {
			a.logger.ErrorContext(ctx, "Failed to list expenses",
				log.FieldCategory, intent.Category, log.FieldError, err)
			return "Sorry, I couldn't look up your expenses right now."
		}
		return formatList(intent.Category, expenses, intent.Range)
	}
}

// interpret resolves the utterance to an intent. Total queries
// aggregate full history; top queries resolve only the range; list and
// category queries resolve both category and range.
func (a *Assistant) interpret(ctx context.Context, utterance string) core.QueryIntent {
	kind, limit := classifyIntent(utterance)
	today := core.DateOf(a.now())

	intent := core.QueryIntent{Kind: kind, Limit: limit, Range: core.AllTime(today)}
	switch kind {
	case core.IntentTotal:
		// No resolution: totals aggregate everything by category.
	case core.IntentTop:
		intent.Range = a.classifier.DateRange(ctx, utterance)
	default:
		intent.Category = a.classifier.Category(ctx, utterance)
		intent.Range = a.classifier.DateRange(ctx, utterance)
	}
	return intent
}

func (a *Assistant) publishRecorded(ctx context.Context, id int64) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishExpenseRecorded(ctx, id); err != nil {
		a.logger.WarnContext(ctx, "Failed to publish expense event",
			log.FieldExpenseID, id, log.FieldError, err)
	}
}
