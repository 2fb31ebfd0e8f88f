package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/traveluniverse/booking-system/internal/app"
)

// travel migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the indexes or schema of the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, cfg, log, err := boot(ctx)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		if err := a.Migrate(ctx); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.StoreDriver).Msg("migration complete")
		return nil
	},
}

var (
	seedPath    string
	seedWorkers int
)

// travel seed --file seed.yaml
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, destinations and reservations from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, err := app.LoadSeedFile(seedPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		a, _, _, err := boot(ctx)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		if err := a.Migrate(ctx); err != nil {
			return err
		}
		report, err := a.Seed(ctx, sf, seedWorkers)
		fmt.Fprintf(cmd.OutOrStdout(),
			"users: %d created, %d skipped\ndestinations: %d created\nreservations: %d created, %d rejected, %d failed\n",
			report.UsersCreated, report.UsersSkipped,
			report.DestinationsCreated,
			report.ReservationsCreated, report.ReservationsRejected, report.ReservationsFailed)
		return err
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedPath, "file", "f", "seed.yaml", "seed file path")
	seedCmd.Flags().IntVar(&seedWorkers, "workers", 4, "parallel reservation workers")
}
