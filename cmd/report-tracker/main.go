package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/report-tracker/internal/config"
	"github.com/example/report-tracker/internal/sheet"
	"github.com/example/report-tracker/internal/store"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var configPath string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report-tracker",
		Short: "Track and share transaction reports kept in a hosted sheet",
		Long: `Report Tracker manages transaction reports (seller, applicant and bank details)
stored in a hosted spreadsheet API: create them, list and filter them, update their
status fields, delete them and share a grouped summary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.AddCommand(
		newListCmd(),
		newShowCmd(),
		newCreateCmd(),
		newSetCmd(),
		newLoanCmd(),
		newDeleteCmd(),
		newShareCmd(),
	)
	return cmd
}

// app bundles what every command needs
type app struct {
	cfg   *config.Config
	store *store.Store
}

// setup reads the configuration and builds the store. With load set the
// reports are fetched before returning.
func setup(cmd *cobra.Command, load bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	client := sheet.New(cfg.API.BaseURL, cfg.API.Timeout, logger)
	s := store.New(client, logger, store.WithBanks(cfg.Banks))
	if load {
		if err := s.Load(cmd.Context()); err != nil {
			return nil, fmt.Errorf("%w (run the command again to retry)", err)
		}
	}
	return &app{cfg: cfg, store: s}, nil
}
