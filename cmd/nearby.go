package cmd

import (
	"fmt"

	"github.com/AimceptionGian/FlexiPlan/pkg/transit"
	"github.com/AimceptionGian/FlexiPlan/pkg/tui"

	"github.com/spf13/cobra"
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List the stations closest to a coordinate",
	Long:  "Resolve a WGS84 coordinate to the nearest stations, sorted by distance. Useful to find a starting point for 'search'.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, _ := cmd.Flags().GetString("lat")
		lon, _ := cmd.Flags().GetString("lon")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		at, err := tui.ParseCoordinate(lat, lon)
		if err != nil {
			return err
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		var stations []transit.NearbyStation
		var fetchErr error

		runWithSpinner(asJSON, "Looking up nearby stations...", func() {
			stations, fetchErr = sess.Client.FetchNearby(cmd.Context(), at)
		})

		if fetchErr != nil {
			return fmt.Errorf("could not resolve location: %w", fetchErr)
		}

		if limit > 0 && len(stations) > limit {
			stations = stations[:limit]
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), stations)
		}

		out := cmd.OutOrStdout()
		if len(stations) == 0 {
			fmt.Fprintln(out, errorStyle.Render("No stations found near this location."))
			return nil
		}

		fmt.Fprintln(out, accentStyle.Render(fmt.Sprintf("\n--- 📍 Stations near %.4f, %.4f ---", at.Latitude, at.Longitude)))
		for i, s := range stations {
			fmt.Fprintf(out, "%2d. %s (%s)\n", i+1, s.Name, tui.FormatDistance(s.Meters))
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nearbyCmd)

	nearbyCmd.Flags().String("lat", "", "Latitude in degrees")
	nearbyCmd.Flags().String("lon", "", "Longitude in degrees")
	nearbyCmd.Flags().Int("limit", 5, "Maximum number of stations to list")
	nearbyCmd.Flags().Bool("json", false, "Print stations as JSON")
	nearbyCmd.MarkFlagRequired("lat")
	nearbyCmd.MarkFlagRequired("lon")
}
