package engine

import (
	"strconv"
	"time"

	"github.com/tartampluch/go-easter/internal/config"
)

// Observance is a liturgical day at a fixed offset from Easter Sunday.
type Observance struct {
	// Key identifies the observance and is also its translation key.
	Key string
	// Name is the English display name, used when no translation exists.
	Name string
	// Offset is the signed number of days from Easter Sunday.
	Offset int
}

// DateIn returns the observance's date for the year whose Easter is given.
func (o Observance) DateIn(easter Date) Date {
	return RelatedObservance(easter, o.Offset)
}

var observances = []Observance{
	{Key: config.ObsAshWednesday, Name: "Ash Wednesday", Offset: config.OffsetAshWed},
	{Key: config.ObsMaundyThurs, Name: "Maundy Thursday", Offset: config.OffsetMaundy},
	{Key: config.ObsGoodFriday, Name: "Good Friday", Offset: config.OffsetGoodFriday},
	{Key: config.ObsHolySaturday, Name: "Holy Saturday", Offset: config.OffsetHolySat},
	{Key: config.ObsEasterSunday, Name: "Easter Sunday", Offset: config.OffsetEaster},
	{Key: config.ObsAscension, Name: "Ascension", Offset: config.OffsetAscension},
	{Key: config.ObsPentecost, Name: "Pentecost", Offset: config.OffsetPentecost},
}

// Observances returns the known observances in calendar order.
// The slice is a copy and may be modified by the caller.
func Observances() []Observance {
	out := make([]Observance, len(observances))
	copy(out, observances)
	return out
}

// RelatedObservances returns the observances printed alongside Easter:
// everything except Easter Sunday itself when verbose, otherwise Good Friday only.
func RelatedObservances(verbose bool) []Observance {
	if !verbose {
		return []Observance{GoodFriday()}
	}
	out := make([]Observance, 0, len(observances)-1)
	for _, o := range observances {
		if o.Offset != config.OffsetEaster {
			out = append(out, o)
		}
	}
	return out
}

// GoodFriday returns the Good Friday observance.
func GoodFriday() Observance {
	return observances[2]
}

// RelatedObservance adds offsetDays to easter with Gregorian rollover.
func RelatedObservance(easter Date, offsetDays int) Date {
	return easter.AddDays(offsetDays)
}

// YearsWhereEasterFalls lists, in ascending order, the years in [lo, hi)
// whose Easter Sunday is the given month and day. An empty range or no
// match yields an empty, non-nil slice.
func YearsWhereEasterFalls(month time.Month, day, lo, hi int) []int {
	years := []int{}
	for y := lo; y < hi; y++ {
		e := ComputeEaster(y)
		if e.Month == month && e.Day == day {
			years = append(years, y)
		}
	}
	return years
}

// ParseMonthDay parses a four-digit MMDD specifier such as "0404".
// 29 February is accepted because it exists in leap years.
func ParseMonthDay(s string) (time.Month, int, error) {
	if len(s) != config.MonthDayLength {
		return 0, 0, invalidInput(s, config.ErrMonthDayFormat)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, 0, invalidInput(s, config.ErrMonthDayFormat)
		}
	}
	mm, _ := strconv.Atoi(s[:2])
	dd, _ := strconv.Atoi(s[2:])
	if mm < 1 || mm > 12 || dd < 1 {
		return 0, 0, invalidInput(s, config.ErrMonthDayRange)
	}
	// Validate against a leap year so that 0229 is allowed.
	probe := time.Date(config.LeapProbeYear, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if probe.Month() != time.Month(mm) || probe.Day() != dd {
		return 0, 0, invalidInput(s, config.ErrMonthDayRange)
	}
	return time.Month(mm), dd, nil
}
