package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/tartampluch/go-easter/internal/config"
)

// CheckResult is the outcome of one embedded example.
type CheckResult struct {
	Name   string
	Passed bool
	// Detail describes the mismatch when Passed is false.
	Detail string
}

type check struct {
	name string
	run  func() (bool, string)
}

func easterCheck(year int, month time.Month, day int) check {
	want := Date{Year: year, Month: month, Day: day}
	return check{
		name: fmt.Sprintf("easter(%d) == %s", year, want),
		run: func() (bool, string) {
			got := ComputeEaster(year)
			return got == want, fmt.Sprintf("got %s", got)
		},
	}
}

var checks = []check{
	easterCheck(1961, time.April, 2),
	easterCheck(2021, time.April, 4),
	easterCheck(1999, time.April, 4),
	{
		name: "good friday 1999 == 1999-04-02",
		run: func() (bool, string) {
			got := RelatedObservance(ComputeEaster(1999), config.OffsetGoodFriday)
			return got == Date{Year: 1999, Month: time.April, Day: 2}, fmt.Sprintf("got %s", got)
		},
	},
	{
		name: "easter on 04-04 in [1999, 2100) == [1999 2010 2021 2083 2094]",
		run: func() (bool, string) {
			got := YearsWhereEasterFalls(time.April, 4, 1999, 2100)
			return slices.Equal(got, []int{1999, 2010, 2021, 2083, 2094}), fmt.Sprintf("got %v", got)
		},
	},
	{
		name: "easter within 03-22..04-25 for 1900-2100",
		run: func() (bool, string) {
			for y := config.ValidatedYearMin; y <= config.ValidatedYearMax; y++ {
				if e := ComputeEaster(y); !WithinEasterBounds(e) {
					return false, fmt.Sprintf("got %s", e)
				}
			}
			return true, ""
		},
	},
	{
		name: "meeus and new scientist agree for 1900-2100",
		run: func() (bool, string) {
			for y := config.ValidatedYearMin; y <= config.ValidatedYearMax; y++ {
				a, b := ComputeEasterWith(AlgorithmMeeus, y), ComputeEasterWith(AlgorithmNewScientist, y)
				if a != b {
					return false, fmt.Sprintf("%d: %s != %s", y, a, b)
				}
			}
			return true, ""
		},
	},
}

// WithinEasterBounds reports whether d lies between March 22 and April 25 of its year.
func WithinEasterBounds(d Date) bool {
	lo := Date{Year: d.Year, Month: config.EarliestEasterMonth, Day: config.EarliestEasterDay}
	hi := Date{Year: d.Year, Month: config.LatestEasterMonth, Day: config.LatestEasterDay}
	return !d.Before(lo) && !hi.Before(d)
}

// SelfTest evaluates the embedded examples in a fixed order.
func SelfTest() []CheckResult {
	results := make([]CheckResult, 0, len(checks))
	for _, c := range checks {
		ok, detail := c.run()
		if ok {
			detail = ""
		}
		results = append(results, CheckResult{Name: c.name, Passed: ok, Detail: detail})
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
