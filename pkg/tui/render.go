package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AimceptionGian/FlexiPlan/pkg/pager"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	starStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	titleCaser = cases.Title(language.German)
)

// DisplayName title-cases station names the user typed in all lowercase.
// Anything with capitals is assumed to be intentional ("Zürich HB").
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name != strings.ToLower(name) {
		return name
	}
	return titleCaser.String(name)
}

// Badge renders the colored category label of a ride, e.g. "IC 8"
func Badge(s transit.Section) string {
	kind := transit.TransportUnknown
	if s.Journey != nil {
		kind = transit.Classify(s.Journey.Category)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color(kind.Color)).
		Bold(true).
		Padding(0, 1).
		Render(transit.LineLabel(s))
}

// Clock formats a raw API timestamp as HH:MM, or returns it untouched if unparsable
func Clock(raw string) string {
	t, err := transit.ParseTime(raw)
	if err != nil {
		return raw
	}
	return t.Format("15:04")
}

// WaitLabel describes how long until departure
func WaitLabel(minutes int) string {
	switch {
	case minutes < 0:
		return "departed"
	case minutes == 0:
		return "now"
	case minutes < 60:
		return fmt.Sprintf("in %d min", minutes)
	}
	return fmt.Sprintf("in %d h %d min", minutes/60, minutes%60)
}

func platform(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", label, value)
}

// firstRide returns the first non-walk section, or a zero section for pure walks
func firstRide(c transit.Connection) transit.Section {
	rides := transit.RideSections(c)
	if len(rides) == 0 {
		return transit.Section{}
	}
	return rides[0]
}

// RenderEntry is the one-line summary shown in the results list
func RenderEntry(e pager.Entry, favorite bool) string {
	kind := transit.Classify(e.Category())

	parts := []string{
		Badge(firstRide(e.Connection)),
		fmt.Sprintf("%s → %s", timeStyle.Render(Clock(e.From.Departure)), Clock(e.To.Arrival)),
	}
	if p := platform(kind.PlatformLabel, e.From.Platform); p != "" {
		parts = append(parts, p)
	}
	if d := transit.FormatDuration(e.Duration); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, mutedStyle.Render(WaitLabel(e.WaitMinutes)))
	if favorite {
		parts = append(parts, starStyle.Render("★"))
	}
	return strings.Join(parts, "  ")
}

// RenderFavorite is the one-line summary shown in the favorites list
func RenderFavorite(c transit.Connection) string {
	date := ""
	if t, err := c.From.DepartureTime(); err == nil {
		date = t.Format("02.01.2006") + " "
	}
	return fmt.Sprintf("%s %s%s %s → %s %s",
		Badge(firstRide(c)),
		date,
		timeStyle.Render(Clock(c.From.Departure)), c.From.Station.Name,
		Clock(c.To.Arrival), c.To.Station.Name)
}

// transferMinutes is the time between arriving with one ride and leaving with the next
func transferMinutes(prev, next transit.Section) (int, bool) {
	arr, err := prev.Arrival.ArrivalTime()
	if err != nil {
		return 0, false
	}
	dep, err := next.Departure.DepartureTime()
	if err != nil {
		return 0, false
	}
	return int(dep.Sub(arr) / time.Minute), true
}

// RenderDetail renders the full itinerary of a connection: every ride with its
// departure and arrival, and the transfers between them.
func RenderDetail(c transit.Connection, favorite bool) string {
	var b strings.Builder

	header := fmt.Sprintf("%s → %s", c.From.Station.Name, c.To.Station.Name)
	if favorite {
		header += " " + starStyle.Render("★")
	}
	b.WriteString(accentStyle.Bold(true).Render(header))
	b.WriteString("\n")

	var meta []string
	if t, err := c.From.DepartureTime(); err == nil {
		meta = append(meta, t.Format("Mon 02.01.2006"))
	}
	if d := transit.FormatDuration(c.Duration); d != "" {
		meta = append(meta, d)
	}
	if c.Transfers > 0 {
		meta = append(meta, fmt.Sprintf("%d transfer(s)", c.Transfers))
	}
	if len(meta) > 0 {
		b.WriteString(mutedStyle.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}

	rides := transit.RideSections(c)
	if len(rides) == 0 {
		b.WriteString("\nNo ride information available.\n")
		return b.String()
	}

	for i, s := range rides {
		if i > 0 {
			line := fmt.Sprintf("  ⇄ Transfer at %s", s.Departure.Station.Name)
			if m, ok := transferMinutes(rides[i-1], s); ok {
				line += fmt.Sprintf(" (%d min)", m)
			}
			b.WriteString(mutedStyle.Render(line))
			b.WriteString("\n")
		}

		kind := transit.Classify(s.Journey.Category)
		b.WriteString("\n")
		b.WriteString(Badge(s))
		if s.Journey.To != "" {
			b.WriteString(mutedStyle.Render(" direction " + s.Journey.To))
		}
		if s.Journey.Operator.Name != "" {
			b.WriteString(mutedStyle.Render(" · " + s.Journey.Operator.Name))
		}
		b.WriteString("\n")

		b.WriteString(checkpointLine(Clock(s.Departure.Departure), s.Departure.Station.Name, platform(kind.PlatformLabel, s.Departure.Platform)))
		b.WriteString(checkpointLine(Clock(s.Arrival.Arrival), s.Arrival.Station.Name, platform(kind.PlatformLabel, s.Arrival.Platform)))
	}

	return b.String()
}

func checkpointLine(clock, station, platform string) string {
	line := fmt.Sprintf("  %s  %s", timeStyle.Render(clock), station)
	if platform != "" {
		line += "  " + mutedStyle.Render(platform)
	}
	return line + "\n"
}
