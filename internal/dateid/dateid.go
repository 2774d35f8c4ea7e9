// Package dateid implements the compact-date model used as the array index
// key throughout the rating store. A Date is an integer encoding YYMMDD
// (two-digit year, 1-indexed month and day), cheap to compare and add so
// per-day loops over player series never allocate.
package dateid

import (
	"fmt"
	"time"
)

// Date is a compact calendar day in YYMMDD form. It carries no timezone
// and represents a day, not an instant. Decoded years are always in
// [MinYear, MaxYear].
type Date int

const (
	MinDate Date = 160101 // first day covered by the dataset
	MaxDate Date = 201130 // last day covered by the dataset

	MinYear = 2000
	MaxYear = 2099
)

// InvalidDateError reports year/month/day values that do not form a real
// calendar date (month 13, Feb 30, and the like).
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid calendar date %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// FromYMD builds a Date from a year/month/day triple.
func FromYMD(year, month, day int) (Date, error) {
	if !validYMD(year, month, day) {
		return 0, &InvalidDateError{Year: year, Month: month, Day: day}
	}
	return Date(10000*(year%100) + 100*month + day), nil
}

// FromTime builds a Date from a calendar date.
func FromTime(t time.Time) Date {
	return Date(10000*(t.Year()%100) + 100*int(t.Month()) + t.Day())
}

// YMD splits a Date into its year/month/day triple without validation.
func (d Date) YMD() (year, month, day int) {
	n := int(d)
	return MinYear + n/10000, (n / 100) % 100, n % 100
}

// Time converts a Date into a calendar date, failing when the encoded
// values are out of calendar range.
func (d Date) Time() (time.Time, error) {
	y, m, day := d.YMD()
	if !validYMD(y, m, day) {
		return time.Time{}, &InvalidDateError{Year: y, Month: m, Day: day}
	}
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC), nil
}

// String renders the Date in YYYY-MM-DD form.
func (d Date) String() string {
	y, m, day := d.YMD()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
}

// Full renders the Date as "January 2 2006", or "January 2006" when
// onlyMonth is set.
func (d Date) Full(onlyMonth bool) string {
	t, err := d.Time()
	if err != nil {
		return d.String()
	}
	if onlyMonth {
		return t.Format("January 2006")
	}
	return t.Format("January 2 2006")
}

func validYMD(year, month, day int) bool {
	if year < MinYear || year > MaxYear || month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysIn(year, month)
}

func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayDiff returns the signed number of days between two dates.
func DayDiff(later, prior Date) (int, error) {
	lt, err := later.Time()
	if err != nil {
		return 0, err
	}
	pt, err := prior.Time()
	if err != nil {
		return 0, err
	}
	return int(lt.Sub(pt).Hours() / 24), nil
}

// MonthDiff returns the signed number of whole months between two dates.
// A month is whole once prior shifted by that many months, with month-end
// clamping, does not overshoot later: January 31 to February 28 is a full
// month because January 31 plus one month clamps to February 28.
func MonthDiff(later, prior Date) (int, error) {
	lt, err := later.Time()
	if err != nil {
		return 0, err
	}
	pt, err := prior.Time()
	if err != nil {
		return 0, err
	}
	months := (lt.Year()-pt.Year())*12 + int(lt.Month()) - int(pt.Month())
	for {
		shifted, err := prior.Add(0, months, 0)
		if err != nil {
			return 0, err
		}
		if later < prior && shifted < later {
			months++
		} else if later >= prior && shifted > later {
			months--
		} else {
			return months, nil
		}
	}
}

// Add shifts the date by the given number of days, months, and years.
// Month arithmetic clamps to month end: January 31 plus one month is the
// last day of February, not March 2.
func (d Date) Add(days, months, years int) (Date, error) {
	y, m, day := d.YMD()
	if !validYMD(y, m, day) {
		return 0, &InvalidDateError{Year: y, Month: m, Day: day}
	}

	totalMonths := (y*12 + (m - 1)) + months + years*12
	y, m = totalMonths/12, totalMonths%12+1
	if last := daysIn(y, m); day > last {
		day = last
	}

	t := time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return FromTime(t), nil
}

// DayBefore is a convenience for Add(-1, 0, 0).
func (d Date) DayBefore() (Date, error) {
	return d.Add(-1, 0, 0)
}

// Partial is a user-supplied date that may be missing its month and/or
// day. A zero Month or Day means unspecified.
type Partial struct {
	Year  int
	Month int
	Day   int
}

// Range expands a partial date into the day range it encloses. A bare
// year spans January 1 through December 31; a year+month spans the whole
// month. The end of a month is found by walking back from day 31 until
// the candidate resolves to a valid calendar date.
func (p Partial) Range() (start, end Date, err error) {
	if p.Year < MinYear || p.Year > MaxYear {
		return 0, 0, &InvalidDateError{Year: p.Year, Month: p.Month, Day: p.Day}
	}

	firstMonth, lastMonth := 1, 12
	if p.Month != 0 {
		firstMonth, lastMonth = p.Month, p.Month
	}
	firstDay, lastDay := 1, 31
	if p.Day != 0 {
		firstDay, lastDay = p.Day, p.Day
	}

	start, err = FromYMD(p.Year, firstMonth, firstDay)
	if err != nil {
		return 0, 0, err
	}

	for lastDay >= 1 {
		if end, err = FromYMD(p.Year, lastMonth, lastDay); err == nil {
			return start, end, nil
		}
		lastDay--
	}
	return 0, 0, &InvalidDateError{Year: p.Year, Month: lastMonth, Day: p.Day}
}

// LookupRange combines two partial dates into the day range they span
// together with the parallel month-bucket index range, where bucket 0 is
// the month containing MinDate. The partials need not be ordered.
func LookupRange(a, b Partial) (dayStart, dayEnd Date, monthStart, monthEnd int, err error) {
	aStart, aEnd, err := a.Range()
	if err != nil {
		return 0, 0, 0, 0, err
	}
	bStart, bEnd, err := b.Range()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	dayStart, dayEnd = aStart, bEnd
	if dayStart > dayEnd {
		dayStart, dayEnd = bStart, aEnd
	}

	if monthStart, err = MonthDiff(dayStart, MinDate); err != nil {
		return 0, 0, 0, 0, err
	}
	if monthEnd, err = MonthDiff(dayEnd, MinDate); err != nil {
		return 0, 0, 0, 0, err
	}
	return dayStart, dayEnd, monthStart, monthEnd, nil
}
