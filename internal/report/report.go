// Package report renders Easter computations as plain text lines.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-easter/internal/config"
	"github.com/tartampluch/go-easter/internal/engine"
	"github.com/tartampluch/go-easter/internal/locale"
)

// Writer formats reports for one language. The zero value prints English.
type Writer struct {
	T *locale.Translator
}

// ObservanceName returns the translated name of o, or its English name.
func (rw Writer) ObservanceName(o engine.Observance) string {
	if name := rw.T.Msg(o.Key, nil); name != o.Key {
		return name
	}
	return o.Name
}

func (rw Writer) layout() string {
	if rw.T == nil {
		return config.DateFormatDefault
	}
	return rw.T.DateLayout()
}

func (rw Writer) msg(key, fallback string, data map[string]any) string {
	if s := rw.T.Msg(key, data); s != key {
		return s
	}
	return fallback
}

// Easter writes the headline for year followed by one line per observance.
func (rw Writer) Easter(w io.Writer, year int, easter engine.Date, related []engine.Observance) error {
	layout := rw.layout()
	lines := []string{rw.msg(config.TKeyEasterHeadline,
		fmt.Sprintf("Easter day for year %d: %s", year, easter.Format(layout)),
		map[string]any{"Year": year, "Date": easter.Format(layout)})}

	for _, o := range related {
		name := rw.ObservanceName(o)
		date := o.DateIn(easter).Format(layout)
		lines = append(lines, rw.msg(config.TKeyObservanceLine,
			name+": "+date,
			map[string]any{"Name": name, "Date": date}))
	}
	return writeLines(w, lines)
}

// Years writes the search header and one matching year per line.
func (rw Writer) Years(w io.Writer, month time.Month, day, from, to int, years []int) error {
	target := engine.Date{Year: config.LeapProbeYear, Month: month, Day: day}.Format(rw.layout())
	lines := []string{rw.msg(config.TKeySearchHeader,
		fmt.Sprintf("Years in [%d, %d) with Easter on %s:", from, to, target),
		map[string]any{"From": from, "To": to, "Date": target})}

	if len(years) == 0 {
		lines = append(lines, rw.msg(config.TKeySearchNone, "none", nil))
	}
	for _, y := range years {
		lines = append(lines, strconv.Itoa(y))
	}
	return writeLines(w, lines)
}

// SelfTest writes one PASS/FAIL line per result and a summary.
func (rw Writer) SelfTest(w io.Writer, results []engine.CheckResult) error {
	lines := make([]string, 0, len(results)+1)
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
			lines = append(lines, rw.msg(config.TKeyTestPass, "PASS "+r.Name,
				map[string]any{"Name": r.Name}))
			continue
		}
		lines = append(lines, rw.msg(config.TKeyTestFail, "FAIL "+r.Name+": "+r.Detail,
			map[string]any{"Name": r.Name, "Detail": r.Detail}))
	}
	lines = append(lines, rw.msg(config.TKeyTestSummary,
		fmt.Sprintf("%d/%d checks passed", passed, len(results)),
		map[string]any{"Passed": passed, "Total": len(results)}))
	return writeLines(w, lines)
}

// writeLines emits everything in a single write so a failure leaves no partial report.
func writeLines(w io.Writer, lines []string) error {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}
