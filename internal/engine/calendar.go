package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-easter/internal/config"
)

// isoDuration matches RFC 5545 dur-value, e.g. "-P1D", "PT12H", "P1W".
var isoDuration = regexp.MustCompile(`^[+-]?P(\d+W|\d+D(T(\d+H)?(\d+M)?(\d+S)?)?|T(\d+H)?(\d+M)?(\d+S)?)$`)

// ValidateTrigger checks an alarm trigger before it is written into a VALARM.
func ValidateTrigger(trigger string) error {
	if trigger == "" {
		return nil
	}
	if !isoDuration.MatchString(trigger) || trigger[len(trigger)-1] == 'T' {
		return invalidInput(trigger, config.ErrAlarmFormat)
	}
	return nil
}

// CalendarConfig contains the parameters of one iCalendar rendering.
type CalendarConfig struct {
	Years           []int
	Algorithm       Algorithm
	Observances     []Observance // Defaults to Observances() when empty.
	ReminderTrigger string       // ISO8601 duration string (e.g., "-P1D")
}

// Generator renders observances into iCalendar documents.
type Generator struct {
	Clock Clock // Interface for time mocking.

	// CalendarName is written to X-WR-CALNAME.
	CalendarName string

	// FormatSummary allows the caller to inject localized observance names.
	FormatSummary func(o Observance, year int) string
}

// Render builds the calendar and returns the encoded document and the number of events.
func (g *Generator) Render(ctx context.Context, cfg CalendarConfig) ([]byte, int, error) {
	start := time.Now()
	// The encoder rejects a VCALENDAR without components.
	if len(cfg.Years) == 0 {
		return nil, 0, ErrNoYears
	}
	if err := ValidateTrigger(cfg.ReminderTrigger); err != nil {
		return nil, 0, err
	}
	obs := cfg.Observances
	if len(obs) == 0 {
		obs = Observances()
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	name := g.CalendarName
	if name == "" {
		name = config.ICalCalName
	}
	cal.Props.SetText(config.PropXWRCalName, name)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	clock := g.Clock
	if clock == nil {
		clock = RealClock{}
	}
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(clock.Now().UTC())

	count := 0
	for _, year := range cfg.Years {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		easter := ComputeEasterWith(cfg.Algorithm, year)
		for _, o := range obs {
			event := g.createEvent(o, year, easter, cfg.ReminderTrigger)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
			count++
		}
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyAlgo, cfg.Algorithm.String(),
		config.LogKeyEvents, count,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), count, nil
}

func (g *Generator) createEvent(o Observance, year int, easter Date, trigger string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(o, year))

	summary := o.Name
	if g.FormatSummary != nil {
		summary = g.FormatSummary(o, year)
	}
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(o.DateIn(easter).Time())
	event.Props.Set(dtStartProp)
	event.Props.SetText(config.PropTransp, config.ICalTransp)

	if trigger != "" {
		addAlarm(event, trigger, summary)
	}
	return event
}

// eventUID is stable across renderings so that clients update events in place.
func eventUID(o Observance, year int) string {
	input := fmt.Sprintf(config.FormatHashInput, o.Key, fmt.Sprint(o.Offset), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), year, config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// YearWindow returns the previous, current and next year relative to now.
func YearWindow(now time.Time) []int {
	y := now.Year()
	return []int{y - 1, y, y + 1}
}
