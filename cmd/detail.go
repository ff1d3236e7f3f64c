package cmd

import (
	"fmt"

	"github.com/AimceptionGian/FlexiPlan/pkg/tui"

	"github.com/spf13/cobra"
)

var detailCmd = &cobra.Command{
	Use:   "detail [file|-]",
	Short: "Show the full itinerary of a connection",
	Long: `Render every ride and transfer of a connection. The connection is read as the
payload printed by 'flexiplan search --emit N', from a file or from stdin.`,
	Example: `  flexiplan search -f Bern -t "Zürich HB" --emit 1 | flexiplan detail -`,
	Args:    cobra.MaximumNArgs(1),
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

		saved, err := sess.Store.Contains(cmd.Context(), c)
		if err != nil {
			// A broken store should not hide the itinerary
			sess.Logger.Warn("could not check favorites", "err", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderDetail(c, saved))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
}
