package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AimceptionGian/FlexiPlan/pkg/pager"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"
	"github.com/AimceptionGian/FlexiPlan/pkg/tui"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search connections between two stations",
	Long: `Search connections on transport.opendata.ch and optionally load earlier and
later pages. Use --emit to print one connection as a payload for 'detail' or
'favorites add', or --save to store it as a favorite right away.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		date, _ := cmd.Flags().GetString("date")
		clock, _ := cmd.Flags().GetString("time")
		fromCoord, _ := cmd.Flags().GetString("from-coord")
		toCoord, _ := cmd.Flags().GetString("to-coord")
		earlier, _ := cmd.Flags().GetInt("earlier")
		later, _ := cmd.Flags().GetInt("later")
		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetInt("save")
		emit, _ := cmd.Flags().GetInt("emit")

		departure, err := tui.ParseDeparture(date, clock, time.Now())
		if err != nil {
			return err
		}

		opts := pager.Options{Departure: departure}
		if opts.FromCoordinate, err = parseCoordFlag(fromCoord); err != nil {
			return err
		}
		if opts.ToCoordinate, err = parseCoordFlag(toCoord); err != nil {
			return err
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		// Human readable chatter goes to stderr whenever stdout carries data
		quiet := asJSON || emit > 0
		status := cmd.OutOrStdout()
		if quiet {
			status = cmd.ErrOrStderr()
		}

		p := sess.NewPager()
		var searchErr error
		runWithSpinner(quiet, fmt.Sprintf("Searching connections from %s to %s...", tui.DisplayName(from), tui.DisplayName(to)), func() {
			searchErr = p.Search(cmd.Context(), from, to, opts)
			for i := 0; searchErr == nil && i < earlier && p.HasMore(pager.Earlier); i++ {
				searchErr = p.LoadMore(cmd.Context(), pager.Earlier)
			}
			for i := 0; searchErr == nil && i < later && p.HasMore(pager.Later); i++ {
				searchErr = p.LoadMore(cmd.Context(), pager.Later)
			}
		})
		if searchErr != nil {
			return fmt.Errorf("failed to fetch connections: %w", searchErr)
		}

		entries := p.Entries()

		if save > 0 {
			if save > len(entries) {
				return fmt.Errorf("cannot save connection %d, only %d found", save, len(entries))
			}
			added, err := sess.Store.Add(cmd.Context(), entries[save-1].Connection)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(status, "⭐ Saved connection %d to favorites.\n", save)
			} else {
				fmt.Fprintf(status, "Connection %d is already a favorite.\n", save)
			}
		}

		switch {
		case emit > 0:
			if emit > len(entries) {
				return fmt.Errorf("cannot emit connection %d, only %d found", emit, len(entries))
			}
			payload, err := transit.EncodeConnection(entries[emit-1].Connection)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		case asJSON:
			return writeJSON(cmd.OutOrStdout(), entries)
		}

		saved, err := tui.FavoriteSet(cmd.Context(), sess.Store)
		if err != nil {
			return err
		}
		printEntries(cmd.OutOrStdout(), from, to, entries, saved)
		return nil
	},
}

// parseCoordFlag reads "lat,lon". Empty input means no override.
func parseCoordFlag(s string) (*transit.Coordinate, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid coordinate %q, expected lat,lon", s)
	}
	c, err := tui.ParseCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEntries(w io.Writer, from, to string, entries []pager.Entry, saved map[string]bool) {
	fmt.Fprintln(w, accentStyle.Render(fmt.Sprintf("\n--- 🚆 %s → %s ---", tui.DisplayName(from), tui.DisplayName(to))))
	if len(entries) == 0 {
		fmt.Fprintln(w, errorStyle.Render("No connections found."))
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%2d. %s\n", i+1, tui.RenderEntry(e, saved[transit.Fingerprint(e.Connection)]))
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("from", "f", "", "Origin station")
	searchCmd.Flags().StringP("to", "t", "", "Destination station")
	searchCmd.Flags().String("date", "", "Departure date (DD.MM.YYYY), default today")
	searchCmd.Flags().String("time", "", "Departure time (HH:MM), default now")
	searchCmd.Flags().String("from-coord", "", "Use a coordinate (lat,lon) as origin")
	searchCmd.Flags().String("to-coord", "", "Use a coordinate (lat,lon) as destination")
	searchCmd.Flags().Int("earlier", 0, "Number of earlier pages to load")
	searchCmd.Flags().Int("later", 0, "Number of later pages to load")
	searchCmd.Flags().Bool("json", false, "Print results as JSON")
	searchCmd.Flags().Int("save", 0, "Save the N-th connection (1-based) as a favorite")
	searchCmd.Flags().Int("emit", 0, "Print the N-th connection (1-based) as a payload for detail/favorites")
	searchCmd.MarkFlagRequired("from")
	searchCmd.MarkFlagRequired("to")
}
