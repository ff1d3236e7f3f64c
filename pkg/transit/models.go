package transit

import (
	"strings"
	"time"
)

// timeLayout is how the connections API encodes timestamps (no colon in the offset)
const timeLayout = "2006-01-02T15:04:05-0700"

// ConnectionResponse represents the object returned by /connections
type ConnectionResponse struct {
	Connections []Connection `json:"connections"`
}

// LocationResponse represents the object returned by /locations
type LocationResponse struct {
	Stations []Location `json:"stations"`
}

// Coordinate is a WGS84 position as reported by the API.
// The API calls latitude "x" and longitude "y".
type Coordinate struct {
	Type      string  `json:"type,omitempty"`
	Latitude  float64 `json:"x"`
	Longitude float64 `json:"y"`
}

// Location is a station, address or point of interest
type Location struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Score      *float64    `json:"score,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
	Distance   *float64    `json:"distance,omitempty"`
	Icon       string      `json:"icon,omitempty"`
}

// Prognosis holds realtime information for a checkpoint, if the operator published any
type Prognosis struct {
	Platform  string `json:"platform,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
	Departure string `json:"departure,omitempty"`
}

// Checkpoint is one end of a connection or section.
// Times are kept as the raw API strings so records round-trip unchanged.
type Checkpoint struct {
	Station   Location   `json:"station"`
	Arrival   string     `json:"arrival,omitempty"`
	Departure string     `json:"departure,omitempty"`
	Delay     *int       `json:"delay,omitempty"`
	Platform  string     `json:"platform,omitempty"`
	Prognosis *Prognosis `json:"prognosis,omitempty"`
}

// DepartureTime parses the scheduled departure
func (c Checkpoint) DepartureTime() (time.Time, error) {
	return ParseTime(c.Departure)
}

// ArrivalTime parses the scheduled arrival
func (c Checkpoint) ArrivalTime() (time.Time, error) {
	return ParseTime(c.Arrival)
}

// Operator is the company running a journey
type Operator struct {
	Name string `json:"name"`
}

// Journey holds the vehicle information of a ride section
type Journey struct {
	Name     string   `json:"name,omitempty"`
	Category string   `json:"category"` // e.g. "S", "IC", "B", "T"
	Number   string   `json:"number"`
	Operator Operator `json:"operator"`
	To       string   `json:"to,omitempty"`
}

// Walk is a transfer on foot between two rides
type Walk struct {
	Duration *int `json:"duration,omitempty"` // seconds
}

// Section is a single continuous part of a connection: either a ride or a walk
type Section struct {
	Journey   *Journey   `json:"journey,omitempty"`
	Walk      *Walk      `json:"walk,omitempty"`
	Departure Checkpoint `json:"departure"`
	Arrival   Checkpoint `json:"arrival"`
}

// IsWalk reports whether the section is a transfer on foot
func (s Section) IsWalk() bool {
	return s.Walk != nil || s.Journey == nil
}

// Connection is a single journey option between two stations
type Connection struct {
	From      Checkpoint `json:"from"`
	To        Checkpoint `json:"to"`
	Duration  string     `json:"duration"` // "DDdHH:MM:SS"
	Transfers int        `json:"transfers"`
	Products  []string   `json:"products,omitempty"`
	Sections  []Section  `json:"sections"`
}

// Category returns the transport category of the first ride, or "" for pure walks
func (c Connection) Category() string {
	for _, s := range c.Sections {
		if !s.IsWalk() {
			return s.Journey.Category
		}
	}
	return ""
}

// ParseTime parses an API timestamp. RFC3339 is accepted too since
// serialized favorites may have passed through other tools.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(timeLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
