package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	ics "github.com/arran4/golang-ical"
)

// GenerateICS creates an ICS file with one event per connection and writes it to the provided writer.
// Connections whose departure or arrival cannot be parsed are skipped.
func GenerateICS(conns []transit.Connection, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//FlexiPlan//Connections//DE")

	now := time.Now()
	for _, c := range conns {
		startTime, err := c.From.DepartureTime()
		if err != nil {
			continue
		}
		endTime, err := c.To.ArrivalTime()
		if err != nil {
			continue
		}

		// Same connection exported twice keeps its UID
		event := cal.AddEvent(transit.Fingerprint(c)[:16] + "@flexiplan")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(startTime)
		event.SetEndAt(endTime)
		event.SetSummary(fmt.Sprintf("%s → %s", c.From.Station.Name, c.To.Station.Name))
		event.SetLocation(departureLocation(c))
		event.SetDescription(describe(c))
	}

	return cal.SerializeTo(w)
}

func departureLocation(c transit.Connection) string {
	if c.From.Platform == "" {
		return c.From.Station.Name
	}
	label := transit.Classify(c.Category()).PlatformLabel
	return fmt.Sprintf("%s, %s %s", c.From.Station.Name, label, c.From.Platform)
}

// describe lists every ride, one per line
func describe(c transit.Connection) string {
	var lines []string
	for _, s := range transit.RideSections(c) {
		line := fmt.Sprintf("%s %s %s → %s %s",
			transit.LineLabel(s),
			s.Departure.Station.Name, clock(s.Departure.Departure),
			s.Arrival.Station.Name, clock(s.Arrival.Arrival))
		if s.Departure.Platform != "" {
			line += fmt.Sprintf(" (%s %s)", transit.Classify(s.Journey.Category).PlatformLabel, s.Departure.Platform)
		}
		lines = append(lines, line)
	}
	if d := transit.FormatDuration(c.Duration); d != "" {
		lines = append(lines, "Dauer: "+d)
	}
	return strings.Join(lines, "\n")
}

func clock(raw string) string {
	t, err := transit.ParseTime(raw)
	if err != nil {
		return raw
	}
	return t.Format("15:04")
}
