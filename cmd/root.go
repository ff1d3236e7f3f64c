package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/AimceptionGian/FlexiPlan/pkg/config"
	"github.com/AimceptionGian/FlexiPlan/pkg/session"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(config.DefaultAccentColor)).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "flexiplan",
	Short: "A CLI and TUI for Swiss public transport connections",
	Long: `flexiplan searches connections on transport.opendata.ch, lets you page
through earlier and later departures and keeps a list of favorite connections.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("backend", "", "Favorites storage: file, sqlite or memory")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding favorites data")
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the journey API")
}

// loadConfig reads the config file and environment, then applies the global flags on top
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"log-level": &cfg.LogLevel,
		"backend":   &cfg.StorageBackend,
		"data-dir":  &cfg.DataDir,
		"api-url":   &cfg.APIBaseURL,
	}
	for name, field := range overrides {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*field = v
		}
	}
	return cfg, nil
}

// openSession wires client, store and logger for a command.
// Callers must Close the returned session.
func openSession(cmd *cobra.Command) (*session.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return session.Open(*cfg, cmd.ErrOrStderr())
}

// runWithSpinner shows a spinner while fn runs, unless quiet is set
// (machine readable output must stay clean).
func runWithSpinner(quiet bool, title string, fn func()) {
	if quiet {
		fn()
		return
	}
	_ = spinner.New().Title(title).Action(fn).Run()
}
