package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/AimceptionGian/FlexiPlan/pkg/config"
	"github.com/AimceptionGian/FlexiPlan/pkg/session"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// These act as fallbacks until applyAccent runs with the configured color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(config.DefaultAccentColor))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	accentColor = config.DefaultAccentColor
)

// errQuit unwinds nested menus when the user picks Quit
var errQuit = errors.New("quit")

// applyAccent switches the shared styles to baseColor
func applyAccent(baseColor string) {
	if baseColor == "" {
		baseColor = config.DefaultAccentColor
	}
	accentColor = baseColor
	// Manual print statements use accentStyle, so it follows the theme too
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))
}

// GetTheme constructs the UI theme from the active accent color.
func GetTheme() *huh.Theme {
	return GetCustomTheme(accentColor)
}

// GetCustomTheme returns a new huh.Theme instantiated with the provided lipgloss color string.
// This is used for live-previewing styles before they are officially saved.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// showError prints a blocking alert. The caller carries on afterwards.
func showError(prefix string, err error) {
	fmt.Println(errorStyle.Render(fmt.Sprintf("❌ %s: %v", prefix, err)))
}

// RunTUI launches the main menu interactive form experience
func RunTUI(ctx context.Context, sess *session.Session) error {
	applyAccent(sess.Config.AccentColor)

	for {
		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("🚆 Search Connections", "search"),
						huh.NewOption("⭐ Favorites", "favorites"),
						huh.NewOption("📍 Stations Near Me", "nearby"),
						huh.NewOption("⚙️ Settings", "config"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var err error
		switch action {
		case "search":
			err = RunSearchTUI(ctx, sess, SearchInput{From: sess.Config.HomeStation})
		case "favorites":
			err = RunFavoritesTUI(ctx, sess)
		case "nearby":
			err = RunNearbyTUI(ctx, sess)
		case "config":
			err = RunConfigTUI(ctx, sess)
		default:
			return nil
		}

		if errors.Is(err, errQuit) {
			return nil
		}
		if errors.Is(err, huh.ErrUserAborted) {
			continue
		}
		if err != nil {
			return err
		}
	}
}
