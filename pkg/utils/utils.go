package utils

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dayMicros = int64(24 * time.Hour / time.Microsecond)
	weekDays  = 7
)

// DateOf drops the clock part of t, keeping its calendar date in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from start to end; negative when end
// is before start.
func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours() / 24)
}

// AddDays moves a date forward by n calendar days.
func AddDays(date time.Time, n int) time.Time {
	return DateOf(date).AddDate(0, 0, n)
}

// AddWeeks moves a date forward by a possibly fractional number of weeks.
// The span is rounded to the microsecond and only whole days are applied, so
// 14.4 weeks is 100 days and 10.999999999999998 weeks is 77 days.
func AddWeeks(date time.Time, weeks float64) time.Time {
	if math.IsNaN(weeks) || math.IsInf(weeks, 0) {
		return DateOf(date)
	}
	micros := int64(math.Round(weeks * weekDays * float64(dayMicros)))
	days := micros / dayMicros
	if micros%dayMicros < 0 {
		days--
	}
	return AddDays(date, int(days))
}

// CalculateDueDate returns the due date of the given period number.
func CalculateDueDate(startDate time.Time, period, periodDays int) time.Time {
	return AddDays(startDate, period*periodDays)
}

// ElapsedPeriods counts completed periods between start and today, never
// negative.
func ElapsedPeriods(startDate, today time.Time, periodDays int) int {
	if periodDays <= 0 {
		return 0
	}
	days := DaysBetween(startDate, today)
	if days < 0 {
		return 0
	}
	return days / periodDays
}

// Round2 rounds a money or day figure to two decimals for reports.
func Round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// SumFloats adds values in decimal to keep large report totals exact to the
// cent.
func SumFloats(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}
