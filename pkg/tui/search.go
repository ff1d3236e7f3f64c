package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AimceptionGian/FlexiPlan/pkg/favorites"
	"github.com/AimceptionGian/FlexiPlan/pkg/pager"
	"github.com/AimceptionGian/FlexiPlan/pkg/session"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

const (
	dateLayout  = "02.01.2006"
	clockLayout = "15:04"
)

// SearchInput pre-fills the search form
type SearchInput struct {
	From string
	To   string
	Date string // DD.MM.YYYY, empty means today
	Time string // HH:MM, empty means now

	FromCoordinate *transit.Coordinate
}

// ParseDeparture combines the optional date and time inputs into a departure.
// Both empty yields the zero time, which lets the API pick "now".
func ParseDeparture(date, clock string, now time.Time) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" && clock == "" {
		return time.Time{}, nil
	}

	day := now
	if date != "" {
		d, err := time.ParseInLocation(dateLayout, date, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, expected DD.MM.YYYY", date)
		}
		day = d
	}

	hour, minute := now.Hour(), now.Minute()
	if clock != "" {
		t, err := time.ParseInLocation(clockLayout, clock, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", clock)
		}
		hour, minute = t.Hour(), t.Minute()
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()), nil
}

func validateOptional(parse func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return parse(s)
	}
}

// RunSearchTUI asks for origin and destination, runs the search and shows the results menu
func RunSearchTUI(ctx context.Context, sess *session.Session, in SearchInput) error {
	var swap bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Placeholder("e.g. Bern").
				Value(&in.From),
			huh.NewInput().
				Title("To").
				Placeholder("e.g. Zürich HB").
				Value(&in.To),
			huh.NewInput().
				Title("Date (optional)").
				Placeholder("DD.MM.YYYY, empty for today").
				Value(&in.Date).
				Validate(validateOptional(func(s string) error {
					_, err := time.Parse(dateLayout, strings.TrimSpace(s))
					return err
				})),
			huh.NewInput().
				Title("Time (optional)").
				Placeholder("HH:MM, empty for now").
				Value(&in.Time).
				Validate(validateOptional(func(s string) error {
					_, err := time.Parse(clockLayout, strings.TrimSpace(s))
					return err
				})),
			huh.NewConfirm().
				Title("Swap origin and destination?").
				Affirmative("Swap").
				Negative("Keep").
				Value(&swap),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if swap {
		in.From, in.To = in.To, in.From
		in.FromCoordinate = nil
	}

	if strings.TrimSpace(in.From) == "" || strings.TrimSpace(in.To) == "" {
		fmt.Println("Operation cancelled: origin and destination are both required.")
		return nil
	}

	departure, err := ParseDeparture(in.Date, in.Time, time.Now())
	if err != nil {
		showError("Invalid departure", err)
		return nil
	}

	p := sess.NewPager()
	var searchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Searching connections from %s to %s...", DisplayName(in.From), DisplayName(in.To))).
		Action(func() {
			searchErr = p.Search(ctx, in.From, in.To, pager.Options{
				Departure:      departure,
				FromCoordinate: in.FromCoordinate,
			})
		}).
		Run()

	if searchErr != nil {
		showError("Could not load connections", searchErr)
		return nil
	}

	return runResultsMenu(ctx, sess, p)
}

// FavoriteSet loads the fingerprints of all saved connections
func FavoriteSet(ctx context.Context, store *favorites.Store) (map[string]bool, error) {
	list, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(list))
	for _, c := range list {
		set[transit.Fingerprint(c)] = true
	}
	return set, nil
}

func runResultsMenu(ctx context.Context, sess *session.Session, p *pager.Pager) error {
	q := p.Query()

	for {
		entries := p.Entries()

		saved, err := FavoriteSet(ctx, sess.Store)
		if err != nil {
			showError("Could not read favorites", err)
			saved = map[string]bool{}
		}

		var options []huh.Option[string]
		if p.HasMore(pager.Earlier) {
			options = append(options, huh.NewOption("⬆ Earlier connections", "earlier"))
		}
		for i, e := range entries {
			options = append(options, huh.NewOption(RenderEntry(e, saved[transit.Fingerprint(e.Connection)]), "row:"+strconv.Itoa(i)))
		}
		if p.HasMore(pager.Later) {
			options = append(options, huh.NewOption("⬇ Later connections", "later"))
		}
		options = append(options,
			huh.NewOption("⭐ Favorites", "favorites"),
			huh.NewOption("🔍 New search", "new"),
			huh.NewOption("Quit", "quit"),
		)

		title := fmt.Sprintf("%s → %s", DisplayName(q.From), DisplayName(q.To))
		description := ""
		if len(entries) == 0 {
			description = "No connections found."
		}

		var action string
		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(title).
					Description(description).
					Options(options...).
					Value(&action).
					Height(14),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch {
		case action == "earlier" || action == "later":
			dir := pager.Later
			if action == "earlier" {
				dir = pager.Earlier
			}
			var loadErr error
			_ = spinner.New().
				Title(fmt.Sprintf("Loading %s connections...", dir)).
				Action(func() {
					loadErr = p.LoadMore(ctx, dir)
				}).
				Run()
			if loadErr != nil {
				showError("Could not load more connections", loadErr)
			}
		case strings.HasPrefix(action, "row:"):
			i, _ := strconv.Atoi(strings.TrimPrefix(action, "row:"))
			if i >= 0 && i < len(entries) {
				if err := openDetail(ctx, sess, entries[i].Connection); err != nil && !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
			}
		case action == "favorites":
			if err := RunFavoritesTUI(ctx, sess); err != nil && !errors.Is(err, huh.ErrUserAborted) {
				return err
			}
		case action == "new":
			return RunSearchTUI(ctx, sess, SearchInput{From: q.From, To: q.To})
		default:
			return errQuit
		}
	}
}
