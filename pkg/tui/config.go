package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/AimceptionGian/FlexiPlan/pkg/config"
	"github.com/AimceptionGian/FlexiPlan/pkg/session"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI(ctx context.Context, sess *session.Session) error {
	for {
		// Edit the file only, env overrides must not end up on disk
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Home Station", "home"),
						huh.NewOption("Set Favorites Storage", "backend"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "theme":
			err = runSetThemeTUI(cfg)
		case "home":
			err = runSetHomeTUI(ctx, sess.Client, cfg)
		case "backend":
			err = runSetBackendTUI(cfg)
		case "view":
			printConfig(sess.Config)
		default:
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func printConfig(cfg config.AppConfig) {
	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.flexiplan.json + environment) ---"))
	if cfg.HomeStation == "" {
		fmt.Println("Home Station: Not set")
	} else {
		fmt.Printf("Home Station: %s\n", cfg.HomeStation)
	}
	fmt.Printf("API: %s\n", cfg.APIBaseURL)
	fmt.Printf("Favorites Storage: %s (%s)\n", cfg.StorageBackend, cfg.DataDir)
	fmt.Printf("Results Per Page: %d\n", cfg.ResultsLimit)
	fmt.Printf("Long Wait Hint: %d min\n", cfg.LongWaitMinutes)
	fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
	fmt.Printf("Log Level: %s\n", cfg.LogLevel)
	fmt.Println()
}

func runSetHomeTUI(ctx context.Context, client *transit.Client, cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your home station").
				Description("It pre-fills the origin of every new search.").
				Placeholder("e.g. Bern or Zürich HB").
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if strings.TrimSpace(input) == "" {
		fmt.Println("Operation cancelled: No station provided.")
		return nil
	}

	var locations []transit.Location
	var fetchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Searching transit network for '%s'...", input)).
		Action(func() {
			locations, fetchErr = client.FetchLocations(ctx, input)
		}).
		Run()

	if fetchErr != nil {
		showError("Could not look up station", fetchErr)
		return nil
	}

	if len(locations) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("❌ No matching stations found for '%s'", input)))
		return nil
	}

	// The API ranks matches by relevance
	match := locations[0]
	cfg.HomeStation = match.Name

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Successfully saved home station: %s (ID: %s)\n", match.Name, match.ID)))
	return nil
}

func runSetBackendTUI(cfg *config.AppConfig) error {
	selected := cfg.StorageBackend

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should favorites be stored?").
				Options(
					huh.NewOption("JSON file (~/.flexiplan/)", config.BackendFile),
					huh.NewOption("SQLite database (~/.flexiplan/flexiplan.db)", config.BackendSQLite),
					huh.NewOption("Memory only (lost on exit)", config.BackendMemory),
				).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.StorageBackend = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Favorites storage set to %s. It takes effect on the next start.\n", selected)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

// ValidateHexColor accepts "#RRGGBB"
func ValidateHexColor(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	for _, r := range strings.ToLower(str[1:]) {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return fmt.Errorf("must be a valid 6-character hex code starting with #")
		}
	}
	return nil
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for FlexiPlan").
				Description("Select a curated style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s SBB Blue", colorBlock("#0066CC")), "#0066CC"),
					huh.NewOption(fmt.Sprintf("%s Signal Red", colorBlock("#EB0000")), "#EB0000"),
					huh.NewOption(fmt.Sprintf("%s Tram Green", colorBlock("#28A745")), "#28A745"),
					huh.NewOption(fmt.Sprintf("%s Bus Orange", colorBlock("#FF6B35")), "#FF6B35"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(ValidateHexColor),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		input = hexInput
	}

	cfg.AccentColor = input
	if err := config.Save(cfg); err != nil {
		return err
	}
	applyAccent(input)

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
