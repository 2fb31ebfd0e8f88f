// Command travel runs the Travel Universe booking API and its maintenance
// tasks.
//
//	@title						Travel Universe Booking API
//	@version					1.0
//	@description				Destinations, availability search and reservations.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/traveluniverse/booking-system/internal/app"
	"github.com/traveluniverse/booking-system/internal/infrastructure/config"
	"github.com/traveluniverse/booking-system/pkg/logger"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "travel",
	Short:         "Travel Universe booking service",
	Long:          "Serves the booking API and runs store migrations and seeding.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// boot loads configuration, initialises the logger and connects the stores.
func boot(ctx context.Context) (*app.App, *config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "travel-universe",
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, nil, log, err
	}
	return a, cfg, log, nil
}
