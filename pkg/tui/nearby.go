package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AimceptionGian/FlexiPlan/pkg/session"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

const maxNearbyOptions = 8

// ParseCoordinate reads "lat" and "lon" inputs as WGS84 degrees
func ParseCoordinate(lat, lon string) (transit.Coordinate, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || la < -90 || la > 90 {
		return transit.Coordinate{}, fmt.Errorf("invalid latitude %q", lat)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil || lo < -180 || lo > 180 {
		return transit.Coordinate{}, fmt.Errorf("invalid longitude %q", lon)
	}
	return transit.Coordinate{Type: "WGS84", Latitude: la, Longitude: lo}, nil
}

// FormatDistance renders meters as "350 m" or "1.2 km"
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(meters+0.5))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// RunNearbyTUI resolves a coordinate to the closest stations and starts a
// search from the one the user picks.
func RunNearbyTUI(ctx context.Context, sess *session.Session) error {
	var lat, lon string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Latitude").
				Placeholder("e.g. 46.948").
				Value(&lat),
			huh.NewInput().
				Title("Longitude").
				Placeholder("e.g. 7.439").
				Value(&lon),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	at, err := ParseCoordinate(lat, lon)
	if err != nil {
		showError("Location unavailable", err)
		return nil
	}

	var stations []transit.NearbyStation
	var fetchErr error

	_ = spinner.New().
		Title("Looking up stations near you...").
		Action(func() {
			stations, fetchErr = sess.Client.FetchNearby(ctx, at)
		}).
		Run()

	if fetchErr != nil {
		showError("Could not resolve location", fetchErr)
		return nil
	}

	if len(stations) == 0 {
		fmt.Println(errorStyle.Render("❌ No stations found near this location."))
		return nil
	}

	if len(stations) > maxNearbyOptions {
		stations = stations[:maxNearbyOptions]
	}

	var options []huh.Option[int]
	for i, s := range stations {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", s.Name, FormatDistance(s.Meters)), i))
	}

	var picked int
	pick := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Start from which station?").
				Options(options...).
				Value(&picked),
		),
	).WithTheme(GetTheme())

	if err := pick.Run(); err != nil {
		return err
	}

	return RunSearchTUI(ctx, sess, SearchInput{From: stations[picked].Name})
}
