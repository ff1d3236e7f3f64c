package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/AimceptionGian/FlexiPlan/pkg/pager"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"
)

func ride(category, number, from, dep, platform, to, arr string) transit.Section {
	return transit.Section{
		Journey:   &transit.Journey{Category: category, Number: number, Operator: transit.Operator{Name: "SBB"}, To: to},
		Departure: transit.Checkpoint{Station: transit.Location{Name: from}, Departure: dep, Platform: platform},
		Arrival:   transit.Checkpoint{Station: transit.Location{Name: to}, Arrival: arr},
	}
}

func bernZurich() transit.Connection {
	return transit.Connection{
		From:      transit.Checkpoint{Station: transit.Location{Name: "Bern"}, Departure: "2026-02-25T08:02:00+0100", Platform: "7"},
		To:        transit.Checkpoint{Station: transit.Location{Name: "Zürich HB"}, Arrival: "2026-02-25T09:10:00+0100"},
		Duration:  "00d01:08:00",
		Transfers: 1,
		Sections: []transit.Section{
			ride("IR", "15", "Bern", "2026-02-25T08:02:00+0100", "7", "Olten", "2026-02-25T08:28:00+0100"),
			{Walk: &transit.Walk{}, Departure: transit.Checkpoint{Station: transit.Location{Name: "Olten"}}},
			ride("S", "23", "Olten", "2026-02-25T08:32:00+0100", "12", "Zürich HB", "2026-02-25T09:10:00+0100"),
		},
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"zürich hb", "Zürich Hb"},
		{"Zürich HB", "Zürich HB"},
		{"  bern ", "Bern"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClockAndWaitLabel(t *testing.T) {
	if got := Clock("2026-02-25T08:02:00+0100"); got != "08:02" {
		t.Errorf("expected 08:02, got %q", got)
	}
	if got := Clock("soon"); got != "soon" {
		t.Errorf("expected unparsable time to pass through, got %q", got)
	}

	tests := map[int]string{
		-3: "departed",
		0:  "now",
		2:  "in 2 min",
		75: "in 1 h 15 min",
	}
	for minutes, want := range tests {
		if got := WaitLabel(minutes); got != want {
			t.Errorf("WaitLabel(%d) = %q, want %q", minutes, got, want)
		}
	}
}

func TestRenderEntry(t *testing.T) {
	e := pager.Entry{Connection: bernZurich(), WaitMinutes: 2}

	out := RenderEntry(e, false)
	for _, want := range []string{"IR 15", "08:02", "09:10", "Gleis 7", "1 h 8 min", "in 2 min"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected entry to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "★") {
		t.Errorf("expected no favorite marker, got %q", out)
	}

	if !strings.Contains(RenderEntry(e, true), "★") {
		t.Errorf("expected favorite marker")
	}
}

func TestRenderEntry_BusPlatformLabel(t *testing.T) {
	c := transit.Connection{
		From:     transit.Checkpoint{Station: transit.Location{Name: "Bern, Bahnhof"}, Departure: "2026-02-25T08:02:00+0100", Platform: "C"},
		To:       transit.Checkpoint{Station: transit.Location{Name: "Bern, Zytglogge"}, Arrival: "2026-02-25T08:06:00+0100"},
		Duration: "00d00:04:00",
		Sections: []transit.Section{ride("B", "12", "Bern, Bahnhof", "2026-02-25T08:02:00+0100", "C", "Bern, Zytglogge", "2026-02-25T08:06:00+0100")},
	}

	out := RenderEntry(pager.Entry{Connection: c}, false)
	if !strings.Contains(out, "Kante C") {
		t.Errorf("expected bus platform to be labelled Kante, got %q", out)
	}
}

func TestRenderDetail(t *testing.T) {
	out := RenderDetail(bernZurich(), true)

	for _, want := range []string{
		"Bern → Zürich HB",
		"★",
		"Wed 25.02.2026",
		"IR 15",
		"S 23",
		"Transfer at Olten (4 min)",
		"Gleis 12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected detail to contain %q, got:\n%s", want, out)
		}
	}

	// Walk legs are not listed as rides
	if strings.Contains(out, "Walk") {
		t.Errorf("expected walk sections to be filtered out, got:\n%s", out)
	}
}

func TestRenderDetail_NoRides(t *testing.T) {
	c := transit.Connection{
		From: transit.Checkpoint{Station: transit.Location{Name: "A"}},
		To:   transit.Checkpoint{Station: transit.Location{Name: "B"}},
	}
	if out := RenderDetail(c, false); !strings.Contains(out, "No ride information") {
		t.Errorf("expected placeholder for connection without rides, got:\n%s", out)
	}
}

func TestParseDeparture(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2026, 2, 25, 8, 0, 0, 0, loc)

	got, err := ParseDeparture("", "", now)
	if err != nil || !got.IsZero() {
		t.Errorf("expected zero time for empty input, got %v (err %v)", got, err)
	}

	got, err = ParseDeparture("", "17:45", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 2, 25, 17, 45, 0, 0, loc); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got, err = ParseDeparture("01.03.2026", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 3, 1, 8, 0, 0, 0, loc); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := ParseDeparture("2026-03-01", "", now); err == nil {
		t.Errorf("expected ISO date to be rejected")
	}
	if _, err := ParseDeparture("", "25:00", now); err == nil {
		t.Errorf("expected invalid clock to be rejected")
	}
}

func TestParseCoordinateAndDistance(t *testing.T) {
	c, err := ParseCoordinate(" 46.948 ", "7.439")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Latitude != 46.948 || c.Longitude != 7.439 {
		t.Errorf("unexpected coordinate %+v", c)
	}

	if _, err := ParseCoordinate("91", "7"); err == nil {
		t.Errorf("expected out of range latitude to be rejected")
	}
	if _, err := ParseCoordinate("46.9", "east"); err == nil {
		t.Errorf("expected non-numeric longitude to be rejected")
	}

	if got := FormatDistance(349.6); got != "350 m" {
		t.Errorf("expected 350 m, got %q", got)
	}
	if got := FormatDistance(1234); got != "1.2 km" {
		t.Errorf("expected 1.2 km, got %q", got)
	}
}

func TestValidateHexColor(t *testing.T) {
	if err := ValidateHexColor("#0066CC"); err != nil {
		t.Errorf("expected valid color, got %v", err)
	}
	for _, bad := range []string{"0066CC", "#0066C", "#GG66CC"} {
		if err := ValidateHexColor(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
