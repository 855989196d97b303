package report

import (
	"fmt"
	"strings"
	"time"
)

// DateRange selects reports by the calendar day they were created on
type DateRange string

const (
	DateAll        DateRange = "all"
	DateToday      DateRange = "today"
	DateYesterday  DateRange = "yesterday"
	DateLast7Days  DateRange = "last7days"
	DateLast30Days DateRange = "last30days"
	DateThisMonth  DateRange = "thisMonth"
	DateLastMonth  DateRange = "lastMonth"
)

// DateRanges lists every accepted range in display order
var DateRanges = []DateRange{DateAll, DateToday, DateYesterday, DateLast7Days, DateLast30Days, DateThisMonth, DateLastMonth}

// ParseDateRange resolves a range name, ignoring case. The empty string means all.
func ParseDateRange(s string) (DateRange, error) {
	if strings.TrimSpace(s) == "" {
		return DateAll, nil
	}
	for _, r := range DateRanges {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", &ValidationError{Field: "date", Message: fmt.Sprintf("%q is not one of %v", s, DateRanges)}
}

// Criteria combines filter dimensions. Empty dimensions are ignored; the
// others must all match.
type Criteria struct {
	DateRange      DateRange
	BankName       string
	Status         Status
	ChequeStatus   Submission
	DocumentStatus Submission
	SearchText     string
}

// Active returns how many dimensions are set
func (c Criteria) Active() int {
	n := 0
	if c.DateRange != "" && c.DateRange != DateAll {
		n++
	}
	for _, v := range []string{c.BankName, string(c.Status), string(c.ChequeStatus), string(c.DocumentStatus), c.SearchText} {
		if v != "" {
			n++
		}
	}
	return n
}

// Filter returns the reports matching every active dimension of c, in input
// order. Date ranges are evaluated against now, in now's location. The input
// slice is never modified.
func Filter(reports []Report, c Criteria, now time.Time) []Report {
	filtered := make([]Report, 0, len(reports))
	for _, r := range reports {
		if c.Match(r, now) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Match reports whether r satisfies every active dimension of c
func (c Criteria) Match(r Report, now time.Time) bool {
	if !matchDate(c.DateRange, r.CreatedAt, now) {
		return false
	}
	if c.BankName != "" && r.BankName != c.BankName {
		return false
	}
	if !matchFold(string(c.Status), string(r.Status)) {
		return false
	}
	if !matchFold(string(c.ChequeStatus), string(r.ChequeStatus)) {
		return false
	}
	if !matchFold(string(c.DocumentStatus), string(r.DocumentStatus)) {
		return false
	}
	return matchSearch(c.SearchText, r)
}

func matchFold(want, got string) bool {
	if want == "" {
		return true
	}
	return got != "" && strings.EqualFold(got, want)
}

func matchSearch(text string, r Report) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, hay := range []string{r.SellerName, r.ApplicantName, r.BankName, r.RegistrationRef} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func matchDate(dr DateRange, created, now time.Time) bool {
	if dr == "" || dr == DateAll {
		return true
	}
	if created.IsZero() {
		return false
	}
	created = created.In(now.Location())
	day := midnight(created)
	today := midnight(now)
	switch dr {
	case DateToday:
		return day.Equal(today)
	case DateYesterday:
		return day.Equal(today.AddDate(0, 0, -1))
	case DateLast7Days:
		return !day.Before(today.AddDate(0, 0, -7))
	case DateLast30Days:
		return !day.Before(today.AddDate(0, 0, -30))
	case DateThisMonth:
		return sameMonth(created, now)
	case DateLastMonth:
		return sameMonth(created, time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location()))
	}
	return false
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
