package main

import (
	"os"

	"github.com/crubio/surfe-diem/backend-go/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	var (
		backend  string
		dbPath   string
		provider string
	)

	rootCmd := &cobra.Command{
		Use:           "surfe",
		Short:         "Surf conditions, recommendations and tides",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.init()
			// the CLI keeps favorites on disk unless told otherwise
			if cmd.Flags().Changed("storage") || os.Getenv("STORAGE_BACKEND") == "" {
				config.WithStorage(backend)(a.cfg)
			}
			if cmd.Flags().Changed("db") {
				config.WithSQLitePath(dbPath)(a.cfg)
			}
			if cmd.Flags().Changed("provider") {
				config.WithForecastProvider(provider)(a.cfg)
			}
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().StringVar(&backend, "storage", config.StorageSQLite, "favorites storage: memory, sqlite or dynamodb")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "surfe.db", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", config.ProviderOpenMeteo, "forecast provider: open-meteo or nws")

	rootCmd.AddCommand(
		newReportCmd(a),
		newConditionsCmd(a),
		newTidesCmd(a),
		newFavoritesCmd(a),
		newSessionCmd(a),
	)

	return rootCmd
}
