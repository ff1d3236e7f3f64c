package cmd

import (
	"fmt"
	"strings"

	"github.com/AimceptionGian/FlexiPlan/pkg/config"
	"github.com/AimceptionGian/FlexiPlan/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage flexiplan configuration",
	Long:  "View or edit your local configuration settings (home station, favorites storage, theme).",
	RunE: func(cmd *cobra.Command, args []string) error {
		setHome, _ := cmd.Flags().GetString("set-home")
		setBackend, _ := cmd.Flags().GetString("set-backend")
		setAccent, _ := cmd.Flags().GetString("set-accent")

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		if setHome == "" && setBackend == "" && setAccent == "" {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI(cmd.Context(), sess)
		}

		// Only the file is edited so environment overrides never get persisted
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if setHome != "" {
			fmt.Fprintf(out, "Searching stations for: '%s'...\n", setHome)

			locations, err := sess.Client.FetchLocations(cmd.Context(), setHome)
			if err != nil {
				return fmt.Errorf("could not lookup station: %w", err)
			}
			if len(locations) == 0 {
				return fmt.Errorf("no matching stations found for '%s'", setHome)
			}

			// Snag the first/best match
			match := locations[0]
			cfg.HomeStation = match.Name
			fmt.Fprintf(out, "✅ Home station set to: %s (ID: %s)\n", match.Name, match.ID)
		}

		if setBackend != "" {
			switch b := strings.ToLower(setBackend); b {
			case config.BackendFile, config.BackendSQLite, config.BackendMemory:
				cfg.StorageBackend = b
			default:
				return fmt.Errorf("unknown storage backend %q (use file, sqlite or memory)", setBackend)
			}
			fmt.Fprintf(out, "✅ Favorites storage set to: %s\n", cfg.StorageBackend)
		}

		if setAccent != "" {
			if err := tui.ValidateHexColor(setAccent); err != nil {
				return err
			}
			cfg.AccentColor = setAccent
			fmt.Fprintf(out, "✅ Accent color set to: %s\n", setAccent)
		}

		return config.Save(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-home", "s", "", "Set your home station, used as default origin")
	configCmd.Flags().String("set-backend", "", "Set the favorites storage (file, sqlite, memory)")
	configCmd.Flags().String("set-accent", "", "Set the accent color as #RRGGBB")
}
