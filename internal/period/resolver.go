// Package period turns a (mode, month, year) selector into a concrete
// half-open reporting window. All arithmetic is done on explicit calendar
// values in a fixed location, never on local-time mutation.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"agency-reconciliation/internal/domain"
)

var (
	ErrInvalidMonth    = errors.New("month must be within 1..12")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrBeforeInception = errors.New("selected month precedes program inception")
	ErrUnknownMode     = errors.New("unknown period mode")
)

// DefaultInception is the epoch floor of cumulative windows when none is configured.
var DefaultInception = domain.NewYearMonth(2020, time.January)

// ExplicitRange is a caller-supplied half-open interval [Start, End).
type ExplicitRange struct {
	Start time.Time
	End   time.Time
}

// Resolver resolves reporting windows. A nil Location means UTC.
type Resolver struct {
	Inception domain.YearMonth
	Location  *time.Location
}

// NewResolver creates a resolver whose cumulative windows start at inception.
func NewResolver(inception domain.YearMonth, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{Inception: inception, Location: loc}
}

func (r *Resolver) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// Resolve builds the window for mode. month and year select the anchor month
// for SINGLE_MONTH, CUMULATIVE and YEAR_TO_DATE; explicit is used verbatim for
// RANGE and, when given, for YEAR_TO_DATE.
func (r *Resolver) Resolve(mode domain.PeriodMode, month time.Month, year int, explicit *ExplicitRange) (domain.ReportingWindow, error) {
	loc := r.location()
	anchor := domain.NewYearMonth(year, month)

	switch mode {
	case domain.SingleMonth:
		if !anchor.Valid() {
			return domain.ReportingWindow{}, fmt.Errorf("%s %d: %w", mode, month, ErrInvalidMonth)
		}
		return domain.ReportingWindow{
			Mode:      mode,
			Start:     anchor.Start(loc),
			End:       anchor.End(loc),
			MonthSpan: 1,
		}, nil

	case domain.Cumulative:
		if !anchor.Valid() {
			return domain.ReportingWindow{}, fmt.Errorf("%s %d: %w", mode, month, ErrInvalidMonth)
		}
		if anchor.Before(r.Inception) {
			return domain.ReportingWindow{}, fmt.Errorf("%s %s (inception %s): %w", mode, anchor, r.Inception, ErrBeforeInception)
		}
		return newWindow(mode, r.Inception.Start(loc), anchor.End(loc))

	case domain.YearToDate:
		if explicit != nil {
			return newWindow(mode, explicit.Start, explicit.End)
		}
		if !anchor.Valid() {
			return domain.ReportingWindow{}, fmt.Errorf("%s %d: %w", mode, month, ErrInvalidMonth)
		}
		return newWindow(mode, domain.NewYearMonth(year, time.January).Start(loc), anchor.End(loc))

	case domain.Range:
		if explicit == nil {
			return domain.ReportingWindow{}, fmt.Errorf("%s requires explicit dates: %w", mode, ErrInvalidRange)
		}
		return newWindow(mode, explicit.Start, explicit.End)
	}

	return domain.ReportingWindow{}, fmt.Errorf("%w %q", ErrUnknownMode, mode)
}

func newWindow(mode domain.PeriodMode, start, end time.Time) (domain.ReportingWindow, error) {
	if !end.After(start) {
		return domain.ReportingWindow{}, fmt.Errorf("%s [%s, %s): %w", mode, start.Format(time.DateOnly), end.Format(time.DateOnly), ErrInvalidRange)
	}
	return domain.ReportingWindow{
		Mode:      mode,
		Start:     start,
		End:       end,
		MonthSpan: MonthSpan(start, end),
	}, nil
}

// MonthSpan counts the distinct calendar months touched by [start, end),
// summing (lastMonthInYear - firstMonthInYear + 1) for every year of the range.
// Months are read in start's location.
func MonthSpan(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	last := end.In(start.Location()).Add(-time.Nanosecond)
	startYear, startMonth := start.Year(), int(start.Month())
	endYear, endMonth := last.Year(), int(last.Month())

	span := 0
	for year := startYear; year <= endYear; year++ {
		first, final := 1, 12
		if year == startYear {
			first = startMonth
		}
		if year == endYear {
			final = endMonth
		}
		span += final - first + 1
	}
	return span
}

// DateRange converts inclusive calendar dates to a half-open range in loc:
// from the first instant of startDate to the first instant after endDate.
func DateRange(startDate, endDate time.Time, loc *time.Location) ExplicitRange {
	if loc == nil {
		loc = time.UTC
	}
	return ExplicitRange{
		Start: time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(endDate.Year(), endDate.Month(), endDate.Day()+1, 0, 0, 0, 0, loc),
	}
}

// ParseMode accepts the canonical mode names and a few short aliases.
func ParseMode(s string) (domain.PeriodMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SINGLE_MONTH", "MONTH", "SINGLE":
		return domain.SingleMonth, nil
	case "CUMULATIVE", "ALL":
		return domain.Cumulative, nil
	case "YEAR_TO_DATE", "YTD":
		return domain.YearToDate, nil
	case "RANGE", "CUSTOM":
		return domain.Range, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}
