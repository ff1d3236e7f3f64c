package cmd

import (
	"github.com/AimceptionGian/FlexiPlan/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to search connections, page through results and manage favorites interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		return tui.RunTUI(cmd.Context(), sess)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
