package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/AimceptionGian/FlexiPlan/pkg/transit"
	"github.com/AimceptionGian/FlexiPlan/pkg/tui"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite connections",
	Long: `List, add, remove or toggle favorite connections. Connections are passed as
the JSON payload printed by 'flexiplan search --emit N', either from a file or
from stdin ('-').`,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite connections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		list, err := sess.Store.Load(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), list)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, accentStyle.Render(fmt.Sprintf("\n--- ⭐ Favorites (%d) ---", len(list))))
		if len(list) == 0 {
			fmt.Fprintln(out, "No favorites yet. Save one with 'flexiplan search ... --save N'.")
			return nil
		}
		for i, c := range list {
			fmt.Fprintf(out, "%2d. %s\n", i+1, tui.RenderFavorite(c))
		}
		fmt.Fprintln(out)
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add [file|-]",
	Short: "Save a connection as favorite",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readConnection(cmd, args)
		if err != nil {
			return err
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		added, err := sess.Store.Add(cmd.Context(), c)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "⭐ Saved %s → %s to favorites.\n", c.From.Station.Name, c.To.Station.Name)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "This connection is already a favorite.")
		}
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove [file|-]",
	Short: "Remove a favorite connection",
	Long:  "Remove a favorite either by payload (file or stdin) or by its position in 'favorites list' (--index).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, _ := cmd.Flags().GetInt("index")

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		var c transit.Connection
		if index > 0 {
			list, err := sess.Store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if index > len(list) {
				return fmt.Errorf("no favorite at position %d, only %d saved", index, len(list))
			}
			c = list[index-1]
		} else {
			if c, err = readConnection(cmd, args); err != nil {
				return err
			}
		}

		removed, err := sess.Store.Remove(cmd.Context(), c)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️ Removed %s → %s from favorites.\n", c.From.Station.Name, c.To.Station.Name)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "This connection is not a favorite.")
		}
		return nil
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle [file|-]",
	Short: "Save a connection, or remove it if it is already a favorite",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readConnection(cmd, args)
		if err != nil {
			return err
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		saved, err := sess.Store.Toggle(cmd.Context(), c)
		if err != nil {
			return err
		}
		if saved {
			fmt.Fprintln(cmd.OutOrStdout(), "⭐ Saved to favorites.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "🗑️ Removed from favorites.")
		}
		return nil
	},
}

// readConnection decodes the payload from the file named in args, or stdin for "-" or no args
func readConnection(cmd *cobra.Command, args []string) (transit.Connection, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return transit.Connection{}, fmt.Errorf("failed to open connection file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return transit.DecodeConnection(r)
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd, favoritesToggleCmd)

	favoritesListCmd.Flags().Bool("json", false, "Print favorites as JSON")
	favoritesRemoveCmd.Flags().Int("index", 0, "Position (1-based) in 'favorites list' to remove")
}
