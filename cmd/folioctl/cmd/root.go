// Package cmd contains the folioctl commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"folio/database"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	databaseURL string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "folioctl",
	Short: "folio administration",
	Long: `folioctl manages a folio deployment directly against its database.

Examples:
  # Apply migrations
  folioctl migrate

  # Issue an admin session token
  folioctl token issue --user admin --email admin@example.com

  # Create an API key for a public site
  folioctl apikey create --name website`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres URL (default $DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func openDatabase(ctx context.Context) (*database.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set (use --database-url)")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, databaseURL, newLogger())
	if err != nil {
		return nil, err
	}
	return db, nil
}
