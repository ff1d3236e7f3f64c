package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AimceptionGian/FlexiPlan/pkg/exporter"
	"github.com/AimceptionGian/FlexiPlan/pkg/session"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/huh"
)

// RunFavoritesTUI lists the saved connections. The list is read from the
// store every time the view is shown, so changes made elsewhere appear.
func RunFavoritesTUI(ctx context.Context, sess *session.Session) error {
	for {
		list, err := sess.Store.Load(ctx)
		if err != nil {
			showError("Could not read favorites", err)
			return nil
		}

		if len(list) == 0 {
			fmt.Println(accentStyle.Render("\nNo favorites yet. Open a connection and save it to see it here.\n"))
			return nil
		}

		var options []huh.Option[string]
		for i, c := range list {
			options = append(options, huh.NewOption(RenderFavorite(c), "row:"+strconv.Itoa(i)))
		}
		options = append(options,
			huh.NewOption("📅 Export all to calendar (.ics)", "export"),
			huh.NewOption("Back", "back"),
		)

		var action string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("⭐ Favorites (%d)", len(list))).
					Options(options...).
					Value(&action).
					Height(14),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}

		switch {
		case strings.HasPrefix(action, "row:"):
			i, _ := strconv.Atoi(strings.TrimPrefix(action, "row:"))
			if i >= 0 && i < len(list) {
				if err := openDetail(ctx, sess, list[i]); err != nil && !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
			}
		case action == "export":
			if err := runExportFavorites(list); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func runExportFavorites(list []transit.Connection) error {
	filename := "flexiplan-favorites.ics"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Export file").
				Value(&filename),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		showError("Could not create file", err)
		return nil
	}
	defer f.Close()

	if err := exporter.GenerateICS(list, f); err != nil {
		showError("Could not write calendar", err)
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Exported %d favorites to %s\n", len(list), filename)))
	return nil
}
