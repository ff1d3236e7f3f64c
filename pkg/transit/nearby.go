package transit

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// earthRadiusMeters is the mean Earth radius used to turn s2 angles into meters
const earthRadiusMeters = 6371008.8

// NearbyStation is a station together with its distance from a reference point
type NearbyStation struct {
	Location
	Meters float64
}

// FetchNearby looks up the stations closest to a coordinate and returns them
// ordered by great-circle distance. Stations without coordinates are dropped.
func (c *Client) FetchNearby(ctx context.Context, at Coordinate) ([]NearbyStation, error) {
	v := url.Values{}
	v.Set("x", strconv.FormatFloat(at.Latitude, 'f', 6, 64))
	v.Set("y", strconv.FormatFloat(at.Longitude, 'f', 6, 64))
	v.Set("type", "station")
	reqURL := fmt.Sprintf("%s/locations?%s", c.baseURL, v.Encode())

	var locResp LocationResponse
	if err := c.getJSON(ctx, reqURL, &locResp); err != nil {
		return nil, fmt.Errorf("failed to fetch nearby stations: %w", err)
	}

	return RankByDistance(at, locResp.Stations), nil
}

// RankByDistance sorts locations by their distance from the reference point
func RankByDistance(at Coordinate, locations []Location) []NearbyStation {
	origin := s2.LatLngFromDegrees(at.Latitude, at.Longitude)

	var ranked []NearbyStation
	for _, l := range locations {
		if l.Coordinate == nil || l.Name == "" {
			continue
		}
		ll := s2.LatLngFromDegrees(l.Coordinate.Latitude, l.Coordinate.Longitude)
		ranked = append(ranked, NearbyStation{
			Location: l,
			Meters:   angleToMeters(origin.Distance(ll)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Meters < ranked[j].Meters
	})
	return ranked
}

func angleToMeters(a s1.Angle) float64 {
	return a.Radians() * earthRadiusMeters
}
