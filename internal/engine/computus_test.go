package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeEaster covers the documented examples and the extreme dates.
func TestComputeEaster(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
		desc  string
	}{
		{1961, time.April, 2, "documented example"},
		{2021, time.April, 4, "documented example"},
		{1999, time.April, 4, "documented example"},
		{2000, time.April, 23, "century divisible by 400"},
		{2024, time.March, 31, "leap year"},
		{2008, time.March, 23, "earliest in the validated range"},
		{1913, time.March, 23, "earliest in the validated range"},
		{2038, time.April, 25, "latest possible date"},
		{1818, time.March, 22, "earliest possible date"},
		{2285, time.March, 22, "earliest possible date"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			want := Date{Year: tt.year, Month: tt.month, Day: tt.day}
			assert.Equal(t, want, ComputeEaster(tt.year))
			assert.Equal(t, want, ComputeEasterWith(AlgorithmNewScientist, tt.year))
		})
	}
}

// TestComputeEaster_Bounds checks March 22 - April 25 and Sunday for every validated year.
func TestComputeEaster_Bounds(t *testing.T) {
	for y := 1900; y <= 2100; y++ {
		e := ComputeEaster(y)
		require.True(t, WithinEasterBounds(e), "easter(%d) = %s out of bounds", y, e)
		require.Equal(t, time.Sunday, e.Weekday(), "easter(%d) = %s is not a Sunday", y, e)
		require.Equal(t, y, e.Year)
	}
}

// TestComputeEaster_Idempotent ensures no hidden state drifts between calls.
func TestComputeEaster_Idempotent(t *testing.T) {
	for _, y := range []int{1583, 1961, 2021, 2100, 4099} {
		assert.Equal(t, ComputeEaster(y), ComputeEaster(y))
	}
}

// TestAlgorithms_Agree compares both formulas over the whole Gregorian era they share.
func TestAlgorithms_Agree(t *testing.T) {
	for y := 1583; y < 4100; y++ {
		require.Equal(t, ComputeEasterWith(AlgorithmMeeus, y), ComputeEasterWith(AlgorithmNewScientist, y), "year %d", y)
	}
}

// TestComputeEaster_OutsideValidatedRange ensures the formula stays total.
func TestComputeEaster_OutsideValidatedRange(t *testing.T) {
	assert.Equal(t, Date{Year: 1, Month: time.April, Day: 1}, ComputeEaster(1))
	assert.Equal(t, Date{Year: 0, Month: time.April, Day: 9}, ComputeEaster(0))
	assert.Equal(t, Date{Year: -100, Month: time.April, Day: 8}, ComputeEaster(-100))
	assert.False(t, InValidatedRange(1899))
	assert.True(t, InValidatedRange(1900))
	assert.True(t, InValidatedRange(2100))
	assert.False(t, InValidatedRange(2101))
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct{ x, y, q, r int }{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{-6, 2, -3, 0},
		{0, 19, 0, 0},
		{-1, 19, -1, 18},
	}
	for _, tt := range tests {
		q, r := floorDivMod(tt.x, tt.y)
		assert.Equal(t, tt.q, q, "floorDiv(%d, %d)", tt.x, tt.y)
		assert.Equal(t, tt.r, r, "floorMod(%d, %d)", tt.x, tt.y)
		assert.Equal(t, tt.r, floorMod(tt.x, tt.y))
	}
}

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmMeeus, a)

	a, err = ParseAlgorithm("newscientist")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmNewScientist, a)
	assert.Equal(t, "newscientist", a.String())

	_, err = ParseAlgorithm("julian")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestNormalizeYear(t *testing.T) {
	clock := fixedClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}

	tests := []struct {
		in, want int
		desc     string
	}{
		{0, 2026, "absent year means current year"},
		{21, 2021, "two digits"},
		{99, 2099, "largest two-digit value"},
		{100, 100, "three digits taken literally"},
		{1961, 1961, "four digits"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeYear(tt.in, clock))
		})
	}
}
