package domain

import "time"

// PeriodMode selects how a reporting window is derived.
type PeriodMode string

const (
	SingleMonth PeriodMode = "SINGLE_MONTH"
	Cumulative  PeriodMode = "CUMULATIVE"
	YearToDate  PeriodMode = "YEAR_TO_DATE"
	Range       PeriodMode = "RANGE"
)

// ReportingWindow is the half-open interval [Start, End) a report covers.
// MonthSpan counts the calendar months it touches and prorates flat salaries
// and fixed costs.
type ReportingWindow struct {
	Mode      PeriodMode `json:"mode"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	MonthSpan int        `json:"month_span"`
}

// Contains reports whether t falls inside the window.
func (w ReportingWindow) Contains(t time.Time) bool {
	return InRange(t, w.Start, w.End)
}

// Months returns the first and last calendar months the window touches, in
// the location of Start.
func (w ReportingWindow) Months() (first, last YearMonth) {
	first = YearMonthOf(w.Start)
	last = YearMonthOf(w.End.In(w.Start.Location()).Add(-time.Nanosecond))
	return first, last
}

// OverlapsMonth reports whether any instant of ym lies inside the window.
func (w ReportingWindow) OverlapsMonth(ym YearMonth) bool {
	loc := w.Start.Location()
	return ym.Start(loc).Before(w.End) && ym.End(loc).After(w.Start)
}

// Bounded reports whether net-of-payment figures are meaningful for the window.
// Cumulative windows run from inception and are not.
func (w ReportingWindow) Bounded() bool {
	return w.Mode != Cumulative
}
