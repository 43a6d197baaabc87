package report_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-easter/internal/engine"
	"github.com/tartampluch/go-easter/internal/locale"
	"github.com/tartampluch/go-easter/internal/report"
)

func english(t *testing.T) report.Writer {
	t.Helper()
	tr, err := locale.New("en")
	require.NoError(t, err)
	return report.Writer{T: tr}
}

func TestEaster_Default(t *testing.T) {
	var buf bytes.Buffer
	err := english(t).Easter(&buf, 2021, engine.ComputeEaster(2021), engine.RelatedObservances(false))
	require.NoError(t, err)

	assert.Equal(t, "Easter day for year 2021: 04 April\nGood Friday: 02 April\n", buf.String())
}

func TestEaster_Verbose(t *testing.T) {
	var buf bytes.Buffer
	err := english(t).Easter(&buf, 2021, engine.ComputeEaster(2021), engine.RelatedObservances(true))
	require.NoError(t, err)

	want := "Easter day for year 2021: 04 April\n" +
		"Ash Wednesday: 17 February\n" +
		"Maundy Thursday: 01 April\n" +
		"Good Friday: 02 April\n" +
		"Holy Saturday: 03 April\n" +
		"Ascension: 13 May\n" +
		"Pentecost: 23 May\n"
	assert.Equal(t, want, buf.String())
}

func TestEaster_French(t *testing.T) {
	tr, err := locale.New("fr")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = report.Writer{T: tr}.Easter(&buf, 1999, engine.ComputeEaster(1999), engine.RelatedObservances(false))
	require.NoError(t, err)
	assert.Equal(t, "Pâques pour l'année 1999 : 04/04\nVendredi saint : 02/04\n", buf.String())
}

func TestEaster_ZeroWriterFallsBackToEnglish(t *testing.T) {
	var buf bytes.Buffer
	err := report.Writer{}.Easter(&buf, 1961, engine.ComputeEaster(1961), engine.RelatedObservances(false))
	require.NoError(t, err)
	assert.Equal(t, "Easter day for year 1961: 02 April\nGood Friday: 31 March\n", buf.String())
}

func TestYears(t *testing.T) {
	var buf bytes.Buffer
	years := engine.YearsWhereEasterFalls(time.April, 4, 1999, 2100)
	require.NoError(t, english(t).Years(&buf, time.April, 4, 1999, 2100, years))

	assert.Equal(t, "Years in [1999, 2100) with Easter on 04 April:\n1999\n2010\n2021\n2083\n2094\n", buf.String())
}

func TestYears_None(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, english(t).Years(&buf, time.December, 25, 1999, 2100, nil))
	assert.Equal(t, "Years in [1999, 2100) with Easter on 25 December:\nnone\n", buf.String())
}

func TestSelfTest(t *testing.T) {
	results := []engine.CheckResult{
		{Name: "first", Passed: true},
		{Name: "second", Passed: false, Detail: "got 2021-04-05"},
	}

	var buf bytes.Buffer
	require.NoError(t, english(t).SelfTest(&buf, results))
	assert.Equal(t, "PASS first\nFAIL second: got 2021-04-05\n1/2 checks passed\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	err := english(t).Easter(failingWriter{}, 2021, engine.ComputeEaster(2021), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
