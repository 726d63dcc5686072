package integration_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/ecsantana76/iroha/test/testutil"
)

// sharedPostgres holds the shared PostgreSQL container for all integration
// tests. Each test creates its own database with a unique name, so tests do
// not interfere with each other.
var sharedPostgres *testutil.PostgresContainer

// TestMain sets up shared test infrastructure for all integration tests.
// This avoids the overhead of starting a container for each individual test.
func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		return
	}

	// Check if we should skip container setup (for unit tests or CI without Docker)
	if os.Getenv("SKIP_INTEGRATION_TESTS") == "1" {
		fmt.Println("Skipping integration tests (SKIP_INTEGRATION_TESTS=1)")

		return
	}

	ctx := context.Background()

	fmt.Println("Starting shared PostgreSQL container for integration tests...")
	container, err := testutil.StartPostgresContainer(ctx, nil)
	if err != nil {
		fmt.Printf("Failed to start PostgreSQL container: %v\n", err)

		return
	}
	sharedPostgres = container
	fmt.Println("Shared PostgreSQL container ready!")

	_ = m.Run()

	fmt.Println("Cleaning up shared PostgreSQL container...")
	_ = sharedPostgres.Terminate(ctx)
}

// getSharedPostgres returns the shared container for tests, skipping when it
// is unavailable.
func getSharedPostgres(t *testing.T) *testutil.PostgresContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	if sharedPostgres == nil {
		t.Skip("shared PostgreSQL container not available (run with -short=false and Docker)")
	}

	return sharedPostgres
}
