package transit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Transport groups the API's category codes into the kinds the UI distinguishes
type Transport struct {
	Kind          string // "Zug", "Bus", "Tram", "Unbekannt"
	PlatformLabel string // what a platform is called for this kind
	Color         string // badge color, any lipgloss color string
}

var (
	TransportTrain   = Transport{Kind: "Zug", PlatformLabel: "Gleis", Color: "#0066CC"}
	TransportBus     = Transport{Kind: "Bus", PlatformLabel: "Kante", Color: "#FF6B35"}
	TransportTram    = Transport{Kind: "Tram", PlatformLabel: "Gleis", Color: "#28A745"}
	TransportUnknown = Transport{Kind: "Unbekannt", PlatformLabel: "Gleis", Color: "#6C757D"}
)

// Classify maps a category code like "S", "IC", "B" or "T" to its Transport
func Classify(category string) Transport {
	lower := strings.ToLower(strings.TrimSpace(category))

	switch {
	case lower == "":
		return TransportUnknown
	case strings.HasPrefix(lower, "s"), strings.HasPrefix(lower, "r"), lower == "ic", lower == "ir":
		return TransportTrain
	case strings.HasPrefix(lower, "b"):
		return TransportBus
	case strings.HasPrefix(lower, "t"):
		return TransportTram
	}
	return TransportUnknown
}

// RideSections returns only the sections that are actual rides, dropping walks.
func RideSections(c Connection) []Section {
	var rides []Section
	for _, s := range c.Sections {
		if !s.IsWalk() {
			rides = append(rides, s)
		}
	}
	return rides
}

// LineLabel renders "IC 8" style labels for a ride section
func LineLabel(s Section) string {
	if s.Journey == nil {
		return "Walk"
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", s.Journey.Category, s.Journey.Number))
}

var durationPattern = regexp.MustCompile(`^(\d+)d(\d{1,2}):(\d{1,2}):(\d{1,2})$`)

// FormatDuration turns the API's "DDdHH:MM:SS" into "22 min" or "25 h 15 min".
// Input that does not match the format is returned unchanged.
func FormatDuration(d string) string {
	if d == "" {
		return ""
	}

	m := durationPattern.FindStringSubmatch(strings.TrimSpace(d))
	if m == nil {
		return d
	}

	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])

	totalHours := days*24 + hours
	if totalHours == 0 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d h %d min", totalHours, minutes)
}
