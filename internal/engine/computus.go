package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-easter/internal/config"
)

// Algorithm selects the Computus formula. Both variants yield the same
// Gregorian Easter; they differ only in how the intermediate terms are derived.
type Algorithm int

const (
	// AlgorithmMeeus is the anonymous Gregorian algorithm (Meeus/Jones/Butcher).
	AlgorithmMeeus Algorithm = iota
	// AlgorithmNewScientist is the 1961 New Scientist rewrite of the same computation.
	AlgorithmNewScientist
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmMeeus:
		return config.AlgoMeeus
	case AlgorithmNewScientist:
		return config.AlgoNewScientist
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a flag value to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", config.AlgoMeeus:
		return AlgorithmMeeus, nil
	case config.AlgoNewScientist:
		return AlgorithmNewScientist, nil
	default:
		return 0, invalidInput(name, config.ErrAlgoUnknown)
	}
}

// ComputeEaster returns the date of Easter Sunday in the given Gregorian year.
//
// The result is documented for 1900-2100. Any other int is accepted and
// produces a date from the same arithmetic without further validation.
func ComputeEaster(year int) Date {
	return computeMeeus(year)
}

// ComputeEasterWith is ComputeEaster using an explicit formula.
func ComputeEasterWith(alg Algorithm, year int) Date {
	if alg == AlgorithmNewScientist {
		return computeNewScientist(year)
	}
	return computeMeeus(year)
}

func computeMeeus(year int) Date {
	a := floorMod(year, 19) // golden number - 1
	b, c := floorDivMod(year, 100)
	d, e := floorDivMod(b, 4)
	f := floorDiv(b+8, 25)
	g := floorDiv(b-f+1, 3)
	h := floorMod(19*a+b-d-g+15, 30) // epact
	i, k := floorDivMod(c, 4)
	l := floorMod(32+2*e+2*i-h-k, 7)
	m := floorDiv(a+11*h+22*l, 451)
	month, day0 := floorDivMod(h+l-7*m+114, 31)
	return Date{Year: year, Month: time.Month(month), Day: day0 + 1}
}

func computeNewScientist(year int) Date {
	b, c := floorDivMod(year, 100)
	d, e := floorDivMod(b, 4)
	i, k := floorDivMod(c, 4)
	// slow shift over centuries: 6 for 1900-2100
	g := floorDiv(8*b+13, 25)
	a := floorMod(year, 19)
	h := floorMod(19*a+b-d-g+15, 30)
	l := floorMod(32+2*e+2*i-h-k, 7)
	m := floorDiv(a+11*h+19*l, 433)
	n := h + l - 7*m
	month := floorDiv(n+90, 25)
	day := floorMod(n+33*month+19, 32)
	return Date{Year: year, Month: time.Month(month), Day: day}
}

// floorDiv and floorMod round toward negative infinity so that the formulas
// stay total for negative years.
func floorDiv(x, y int) int {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floorMod(x, y int) int {
	return x - floorDiv(x, y)*y
}

func floorDivMod(x, y int) (int, int) {
	q := floorDiv(x, y)
	return q, x - q*y
}

// InValidatedRange reports whether the formula's output is documented for year.
func InValidatedRange(year int) bool {
	return year >= config.ValidatedYearMin && year <= config.ValidatedYearMax
}

// NormalizeYear applies the command-line year rules: 0 means the current
// year, and values below 100 are read as 20YY.
func NormalizeYear(year int, clock Clock) int {
	if year == 0 {
		return clock.Now().Year()
	}
	if year < config.TwoDigitYearLimit {
		return config.TwoDigitYearBase + year
	}
	return year
}
