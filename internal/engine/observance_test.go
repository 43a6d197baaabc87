package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-easter/internal/engine"
)

func d(y int, m time.Month, day int) engine.Date {
	return engine.Date{Year: y, Month: m, Day: day}
}

func TestRelatedObservance(t *testing.T) {
	tests := []struct {
		name   string
		easter engine.Date
		offset int
		want   engine.Date
	}{
		{"Good Friday 1999", engine.ComputeEaster(1999), -2, d(1999, time.April, 2)},
		{"Ash Wednesday 2021", engine.ComputeEaster(2021), -46, d(2021, time.February, 17)},
		{"Ash Wednesday leap year", engine.ComputeEaster(2024), -46, d(2024, time.February, 14)},
		{"Maundy Thursday across March", engine.ComputeEaster(2024), -3, d(2024, time.March, 28)},
		{"Ascension 2021", engine.ComputeEaster(2021), 39, d(2021, time.May, 13)},
		{"Pentecost 2021", engine.ComputeEaster(2021), 49, d(2021, time.May, 23)},
		{"Zero offset", d(2021, time.April, 4), 0, d(2021, time.April, 4)},
		{"Year rollover forward", d(2021, time.December, 20), 20, d(2022, time.January, 9)},
		{"Year rollover backward", d(2021, time.January, 2), -3, d(2020, time.December, 30)},
		{"Non-leap February", d(2023, time.March, 1), -1, d(2023, time.February, 28)},
		{"Leap February", d(2024, time.March, 1), -1, d(2024, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.RelatedObservance(tt.easter, tt.offset))
		})
	}
}

func TestObservances_Order(t *testing.T) {
	obs := engine.Observances()
	require.NotEmpty(t, obs)
	for i := 1; i < len(obs); i++ {
		assert.Less(t, obs[i-1].Offset, obs[i].Offset, "observances must be in calendar order")
	}

	// The returned slice is a copy.
	obs[0].Name = "changed"
	assert.NotEqual(t, "changed", engine.Observances()[0].Name)
}

func TestRelatedObservances(t *testing.T) {
	short := engine.RelatedObservances(false)
	require.Len(t, short, 1)
	assert.Equal(t, engine.GoodFriday(), short[0])
	assert.Equal(t, -2, short[0].Offset)

	all := engine.RelatedObservances(true)
	assert.Len(t, all, len(engine.Observances())-1)
	for _, o := range all {
		assert.NotZero(t, o.Offset, "Easter Sunday is the headline, not a related day")
	}
}

func TestYearsWhereEasterFalls(t *testing.T) {
	assert.Equal(t, []int{1999, 2010, 2021, 2083, 2094},
		engine.YearsWhereEasterFalls(time.April, 4, 1999, 2100))
	assert.Equal(t, []int{2009, 2020, 2093, 2099},
		engine.YearsWhereEasterFalls(time.April, 12, 1999, 2100))

	// The upper bound is exclusive.
	assert.Equal(t, []int{1999}, engine.YearsWhereEasterFalls(time.April, 4, 1999, 2000))
	assert.Empty(t, engine.YearsWhereEasterFalls(time.April, 4, 2000, 2010))

	// Impossible dates and empty ranges are not errors.
	none := engine.YearsWhereEasterFalls(time.December, 25, 1900, 2100)
	assert.NotNil(t, none)
	assert.Empty(t, none)
	assert.Empty(t, engine.YearsWhereEasterFalls(time.April, 4, 2100, 1999))
}

func TestParseMonthDay(t *testing.T) {
	tests := []struct {
		in        string
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{"0404", time.April, 4, false},
		{"0322", time.March, 22, false},
		{"1231", time.December, 31, false},
		{"0229", time.February, 29, false},
		{"0230", 0, 0, true},
		{"1301", 0, 0, true},
		{"0001", 0, 0, true},
		{"0100", 0, 0, true},
		{"0431", 0, 0, true},
		{"abcd", 0, 0, true},
		{"04-4", 0, 0, true},
		{"404", 0, 0, true},
		{"04041", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, day, err := engine.ParseMonthDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, engine.ErrInvalidInput)

				var invalid *engine.InvalidInputError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, tt.in, invalid.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, m)
			assert.Equal(t, tt.wantDay, day)
		})
	}
}

func TestDate(t *testing.T) {
	e := d(2021, time.April, 4)
	assert.Equal(t, "2021-04-04", e.String())
	assert.Equal(t, "04 April", e.Format("02 January"))
	assert.Equal(t, time.Sunday, e.Weekday())
	assert.True(t, d(2021, time.April, 3).Before(e))
	assert.True(t, d(2020, time.December, 31).Before(e))
	assert.False(t, e.Before(e))
	assert.Equal(t, e, engine.DateOf(time.Date(2021, 4, 4, 23, 59, 0, 0, time.UTC)))
}

func TestSelfTest(t *testing.T) {
	results := engine.SelfTest()
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s", r.Name, r.Detail)
		assert.Empty(t, r.Detail)
	}
	assert.True(t, engine.AllPassed(results))
	assert.False(t, engine.AllPassed(append(results, engine.CheckResult{Name: "broken"})))
}
