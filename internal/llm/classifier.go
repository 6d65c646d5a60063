package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hisaab/internal/cache"
	"hisaab/internal/core"
	"hisaab/internal/log"
)

const (
	cacheSize = 512
	cacheTTL  = 12 * time.Hour
)

// Classifier owns the three semantic contracts built on the Completer:
// text normalization, category labeling and date-range resolution.
// Every method has a deterministic fallback and never returns an error.
type Classifier struct {
	completer Completer
	logger    *log.Logger

	categories     *cache.LRU[string]
	normalizations *cache.LRU[string]

	// now is injectable so the date fallback is testable.
	now func() time.Time
}

// NewClassifier wraps a Completer with fallbacks and response caching.
func NewClassifier(completer Completer, logger *log.Logger) *Classifier {
	return &Classifier{
		completer:      completer,
		logger:         logger.WithComponent(log.ComponentLLM),
		categories:     cache.NewLRU[string](cacheSize, cacheTTL),
		normalizations: cache.NewLRU[string](cacheSize, cacheTTL),
		now:            time.Now,
	}
}

// WithClock overrides the classifier's time source. Intended for tests.
func (c *Classifier) WithClock(now func() time.Time) *Classifier {
	c.now = now
	return c
}

// Normalize cleans a raw utterance via the service. Best-effort: any
// failure returns the input unchanged, and responses are reduced to
// their first line with surrounding quotes stripped.
func (c *Classifier) Normalize(ctx context.Context, raw string) string {
	if cached, ok := c.normalizations.Get(raw); ok {
		return cached
	}
	resp, err := c.completer.Complete(ctx, normalizePrompt, raw)
	if err != nil {
		c.logger.DebugContext(ctx, "Normalization unavailable, keeping raw text", "error", err)
		return raw
	}
	cleaned := firstLine(resp)
	if cleaned == "" {
		return raw
	}
	c.normalizations.Set(raw, cleaned)
	return cleaned
}

// Category labels a short text span with a single normalized category.
// Falls back to core.CategoryOther on any failure. The same call
// classifies both expense clauses and query utterances.
func (c *Classifier) Category(ctx context.Context, text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return core.CategoryOther
	}
	if cached, ok := c.categories.Get(key); ok {
		return cached
	}
	resp, err := c.completer.Complete(ctx, categoryPrompt, text)
	if err != nil {
		c.logger.DebugContext(ctx, "Category classification failed, using fallback",
			"error", err, log.FieldCategory, core.CategoryOther)
		return core.CategoryOther
	}
	label := core.NormalizeCategoryLabel(resp)
	c.categories.Set(key, label)
	return label
}

// DateRange maps a time expression to an inclusive calendar range.
// Anything short of a well-formed "YYYY-MM-DD,YYYY-MM-DD" pair with
// start <= end resolves to the full-history default (1970-01-01,
// today). This is the single absent/ambiguous-range policy everywhere.
func (c *Classifier) DateRange(ctx context.Context, text string) core.DateRange {
	today := core.DateOf(c.now())
	fallback := core.AllTime(today)

	resp, err := c.completer.Complete(ctx, fmt.Sprintf(dateRangePrompt, today.ISO()), text)
	if err != nil {
		c.logger.DebugContext(ctx, "Date resolution failed, using full history", "error", err)
		return fallback
	}

	startRaw, endRaw, ok := strings.Cut(firstLine(resp), ",")
	if !ok {
		return fallback
	}
	start, err := core.ParseDate(startRaw)
	if err != nil {
		return fallback
	}
	end, err := core.ParseDate(endRaw)
	if err != nil {
		return fallback
	}
	r := core.DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return fallback
	}
	return r
}

// firstLine keeps only the first line of a response and strips
// surrounding quotes, defending against models that explain themselves.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
