package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	// CategoryOther is the fallback label used whenever classification
	// cannot produce a usable category.
	CategoryOther = "other"

	// MaxDescriptionLen bounds stored descriptions.
	MaxDescriptionLen = 50

	// MaxCategoryLen bounds normalized category labels.
	MaxCategoryLen = 20
)

type (
	// Money is a monetary amount in cents. All arithmetic happens on
	// cents; floats appear only at parse and display boundaries.
	Money struct {
		Cents int64
	}

	// Date is a calendar date (midnight UTC).
	Date struct {
		time.Time
	}

	// DateRange is an inclusive [Start, End] calendar-date interval.
	DateRange struct {
		Start Date
		End   Date
	}

	// Expense is one immutable expense record. ID and CreatedAt are
	// assigned by the store on insert.
	Expense struct {
		ID          int64
		Description string
		Amount      Money
		Category    string
		Date        Date
		CreatedAt   time.Time
	}

	// CategoryTotal is an aggregate over one category.
	CategoryTotal struct {
		Category string
		Total    Money
		Count    int64
	}

	// IntentKind names one of the supported query shapes.
	IntentKind string

	// QueryIntent is the interpreted form of a query utterance. Range is
	// always set; Category only for list/category intents; Limit only
	// for top.
	QueryIntent struct {
		Kind     IntentKind
		Category string
		Range    DateRange
		Limit    int
	}
)

const (
	IntentTotal    IntentKind = "total"
	IntentTop      IntentKind = "top"
	IntentList     IntentKind = "list"
	IntentCategory IntentKind = "category"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrZeroDate        = errors.New("date cannot be zero")
	ErrInvertedRange   = errors.New("range start after end")
	ErrEmptyDesc       = errors.New("empty description")
	ErrRecordImmutable = errors.New("expense records are immutable")
)

// EpochDate is the lower bound of the full-history date range.
var EpochDate = NewDate(1970, 1, 1)

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t.UTC()}, nil
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Human renders the date for reports, e.g. "Jan 02, 2006".
func (d Date) Human() string {
	return d.Format("Jan 02, 2006")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// AllTime returns the full-history range ending today.
func AllTime(today Date) DateRange {
	return DateRange{Start: EpochDate, End: today}
}

func (r DateRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if r.Start.After(r.End.Time) {
		return ErrInvertedRange
	}
	return nil
}

// Contains reports whether the date falls inside the inclusive range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

// IsAllTime reports whether the range is the full-history fallback.
func (r DateRange) IsAllTime() bool {
	return r.Start.Equal(EpochDate.Time)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Units returns the amount as a float for display only.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDesc
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return e.Date.Validate()
}

var nonWordRun = regexp.MustCompile(`\W+`)

// NormalizeCategoryLabel reduces raw classifier output to a stored
// category label: first whitespace-delimited token, lowercased, runs of
// non-word characters collapsed to a single underscore, truncated to
// MaxCategoryLen. Unusable input yields CategoryOther.
func NormalizeCategoryLabel(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return CategoryOther
	}
	label := strings.ToLower(fields[0])
	label = nonWordRun.ReplaceAllString(label, "_")
	if strings.Trim(label, "_") == "" {
		return CategoryOther
	}
	if runes := []rune(label); len(runes) > MaxCategoryLen {
		label = string(runes[:MaxCategoryLen])
	}
	return label
}

// TruncateDescription trims and bounds a free-form description.
func TruncateDescription(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > MaxDescriptionLen {
		return string(runes[:MaxDescriptionLen])
	}
	return s
}
