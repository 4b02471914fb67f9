package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/expenser/expense-api/internal/core/domain"
	"github.com/expenser/expense-api/internal/core/ports"
)

const (
	PeriodDays   = "days"
	PeriodWeeks  = "weeks"
	PeriodMonths = "months"
	PeriodCustom = "custom"

	defaultDays   = 7
	defaultWeeks  = 1
	defaultMonths = 1

	day = 24 * time.Hour
)

// BuildExpenseFilter translates listing parameters into a predicate scoped to
// ownerID. now anchors the relative periods.
//
// An unknown period imposes no date constraint, as does an empty one.
func BuildExpenseFilter(ownerID string, q ports.ExpenseQuery, now time.Time) (domain.ExpenseFilter, error) {
	f := domain.ExpenseFilter{OwnerID: ownerID}

	switch strings.ToLower(strings.TrimSpace(q.Period)) {
	case PeriodDays:
		from := now.Add(-time.Duration(periodValue(q.Value, defaultDays)) * day)
		f.From = &from
	case PeriodWeeks:
		from := now.Add(-time.Duration(periodValue(q.Value, defaultWeeks)) * 7 * day)
		f.From = &from
	case PeriodMonths:
		// AddDate normalises overflow: Mar 31 minus one month is Mar 3 (Mar 2 in leap years).
		from := now.AddDate(0, -periodValue(q.Value, defaultMonths), 0)
		f.From = &from
	case PeriodCustom:
		from, to, err := customRange(q.StartDate, q.EndDate)
		if err != nil {
			return domain.ExpenseFilter{}, err
		}
		f.From, f.To = &from, &to
	}

	if q.Category != "" {
		c := domain.Category(q.Category)
		if !c.Valid() {
			return domain.ExpenseFilter{}, domain.Validationf("%q is not a supported category", q.Category)
		}
		f.Category = c
	}
	if q.Currency != "" {
		c := domain.Currency(q.Currency)
		if !c.Valid() {
			return domain.ExpenseFilter{}, domain.Validationf("%q is not a supported currency", q.Currency)
		}
		f.Currency = c
	}

	var err error
	if f.MinAmount, err = parseAmount("minAmount", q.MinAmount); err != nil {
		return domain.ExpenseFilter{}, err
	}
	if f.MaxAmount, err = parseAmount("maxAmount", q.MaxAmount); err != nil {
		return domain.ExpenseFilter{}, err
	}

	return f, nil
}

// periodValue parses a period length; missing, malformed or non-positive
// values fall back to def.
func periodValue(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func customRange(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, domain.Validationf("Start and end date are required for custom filter")
	}
	from, _, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validationf("invalid startDate %q", start)
	}
	to, dateOnly, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validationf("invalid endDate %q", end)
	}
	if dateOnly {
		to = to.Add(day - time.Nanosecond)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.Validationf("startDate must not be after endDate")
	}
	return from, to, nil
}

func parseAmount(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, domain.Validationf("%s must be a number", name)
	}
	return &v, nil
}

// ParseDate accepts a calendar date (2006-01-02, interpreted as UTC midnight)
// or an RFC 3339 timestamp. dateOnly reports which form matched.
func ParseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if t, err = time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	if t, err = time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, err
}
