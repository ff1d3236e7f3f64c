package tui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/AimceptionGian/FlexiPlan/pkg/session"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/huh"
)

// openDetail hands the whole serialized record to the detail view
func openDetail(ctx context.Context, sess *session.Session, c transit.Connection) error {
	payload, err := transit.EncodeConnection(c)
	if err != nil {
		showError("Could not open connection", err)
		return nil
	}
	return runDetailView(ctx, sess, payload)
}

func runDetailView(ctx context.Context, sess *session.Session, payload []byte) error {
	c, err := transit.DecodeConnection(bytes.NewReader(payload))
	if err != nil {
		showError("Could not open connection", err)
		return nil
	}

	for {
		saved, err := sess.Store.Contains(ctx, c)
		if err != nil {
			showError("Could not read favorites", err)
		}

		fmt.Println()
		fmt.Println(RenderDetail(c, saved))

		toggleLabel := "☆ Save as favorite"
		if saved {
			toggleLabel = "★ Remove from favorites"
		}

		var action string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Options(
						huh.NewOption(toggleLabel, "toggle"),
						huh.NewOption("Back", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}
		if action != "toggle" {
			return nil
		}

		nowSaved, err := sess.Store.Toggle(ctx, c)
		if err != nil {
			showError("Could not update favorites", err)
			continue
		}
		if nowSaved {
			fmt.Println(accentStyle.Render("\n✅ Saved to favorites.\n"))
		} else {
			fmt.Println(accentStyle.Render("\n🗑️ Removed from favorites.\n"))
		}
	}
}
