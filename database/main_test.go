package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestMain provides a Postgres for the integration tests: TEST_DATABASE_URL
// when set, otherwise a throwaway container. Without either, integration
// tests skip and unit tests still run.
func TestMain(m *testing.M) {
	flag.Parse()

	var container *postgres.PostgresContainer
	dbURL := os.Getenv("TEST_DATABASE_URL")

	if dbURL == "" && !testing.Short() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		c, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("folio_test"),
			postgres.WithUsername("folio"),
			postgres.WithPassword("folio"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "postgres container unavailable, integration tests will skip: %v\n", err)
		} else {
			container = c
			dbURL, err = c.ConnectionString(ctx, "sslmode=disable")
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to read container connection string: %v\n", err)
				dbURL = ""
			}
		}
		cancel()
	}

	if dbURL != "" {
		db, err := SetupTestDB(dbURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to setup test database: %v\n", err)
		} else {
			testDB = db
		}
	}

	code := m.Run()

	TeardownTestDB(testDB)
	if container != nil {
		_ = testcontainers.TerminateContainer(container)
	}

	os.Exit(code)
}
