package cmd

import (
	"fmt"
	"os"

	"github.com/AimceptionGian/FlexiPlan/pkg/exporter"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export favorite connections to an ICS file",
	Long:  `Write every favorite connection as a calendar event to an .ics file, ready to import into any calendar app.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		list, err := sess.Store.Load(cmd.Context())
		if err != nil {
			return err
		}

		if len(list) == 0 {
			return fmt.Errorf("no favorites to export")
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		err = exporter.GenerateICS(list, file)
		if err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully exported %d connections to %s\n", len(list), output)
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "flexiplan-favorites.ics", "Output file path")
}
