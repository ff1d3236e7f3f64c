package transit

import (
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00d00:22:00", "22 min"},
		{"01d01:15:00", "25 h 15 min"},
		{"00d02:00:00", "2 h 0 min"},
		{"", ""},
		{"not a duration", "not a duration"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]Transport{
		"S":   TransportTrain,
		"IC":  TransportTrain,
		"IR":  TransportTrain,
		"RE":  TransportTrain,
		"B":   TransportBus,
		"T":   TransportTram,
		"":    TransportUnknown,
		"FUN": TransportUnknown,
	}

	for category, want := range tests {
		if got := Classify(category); got != want {
			t.Errorf("Classify(%q) = %s, want %s", category, got.Kind, want.Kind)
		}
	}
}

func TestRideSections(t *testing.T) {
	walkSecs := 300
	c := Connection{
		Sections: []Section{
			{Journey: &Journey{Category: "S", Number: "1"}},
			{Walk: &Walk{Duration: &walkSecs}},
			{Journey: &Journey{Category: "B", Number: "10"}},
		},
	}

	rides := RideSections(c)
	if len(rides) != 2 {
		t.Fatalf("expected 2 ride sections, got %d", len(rides))
	}
	if LineLabel(rides[1]) != "B 10" {
		t.Errorf("expected second ride 'B 10', got %q", LineLabel(rides[1]))
	}
	if c.Category() != "S" {
		t.Errorf("expected category of first ride, got %q", c.Category())
	}
}
