package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer wraps a PostgreSQL test container.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	Host      string
	Port      string
	User      string
	Password  string
	Database  string
}

// PostgresOptions configures the PostgreSQL container.
type PostgresOptions struct {
	// Image is the PostgreSQL image to use. Defaults to "postgres:16-alpine".
	Image string
	// User is the superuser name. Defaults to "postgres".
	User string
	// Password is the superuser password. Defaults to "mysecretpassword".
	Password string
	// Database is the maintenance database. Defaults to "postgres".
	Database string
	// MaxPreparedTransactions sets the server's max_prepared_transactions.
	// Defaults to 100 so prepared-transaction support is available.
	MaxPreparedTransactions int
}

// DefaultPostgresOptions returns default options for the PostgreSQL container.
func DefaultPostgresOptions() PostgresOptions {
	return PostgresOptions{
		Image:                   "postgres:16-alpine",
		User:                    "postgres",
		Password:                "mysecretpassword",
		Database:                "postgres",
		MaxPreparedTransactions: 100,
	}
}

// StartPostgresContainer starts a PostgreSQL container without test-scoped
// cleanup. Intended for TestMain, which shares one container across all
// integration tests and terminates it explicitly.
//
// Parameters:
//   - ctx: Context for container operations
//   - opts: Optional configuration (nil uses defaults)
//
// Returns:
//   - *PostgresContainer: Container with connection details
//   - error: Error if container fails to start
func StartPostgresContainer(ctx context.Context, opts *PostgresOptions) (*PostgresContainer, error) {
	if opts == nil {
		defaultOpts := DefaultPostgresOptions()
		opts = &defaultOpts
	}

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(opts.Image),
		postgres.WithUsername(opts.User),
		postgres.WithPassword(opts.Password),
		postgres.WithDatabase(opts.Database),
		testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Cmd: []string{"-c", fmt.Sprintf("max_prepared_transactions=%d", opts.MaxPreparedTransactions)},
			},
		}),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)

		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = container.Terminate(ctx)

		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		Host:      host,
		Port:      mapped.Port(),
		User:      opts.User,
		Password:  opts.Password,
		Database:  opts.Database,
	}, nil
}

// StartPostgres starts a PostgreSQL container for a single test.
//
// The container is automatically terminated when the test completes.
//
// Parameters:
//   - ctx: Context for container operations
//   - t: Testing context for cleanup registration
//   - opts: Optional configuration (nil uses defaults)
//
// Returns:
//   - *PostgresContainer: Container with connection details
//   - error: Error if container fails to start
func StartPostgres(ctx context.Context, t *testing.T, opts *PostgresOptions) (*PostgresContainer, error) {
	t.Helper()

	container, err := StartPostgresContainer(ctx, opts)
	if err != nil {
		return nil, err
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	return container, nil
}

// Terminate stops and removes the container.
func (c *PostgresContainer) Terminate(ctx context.Context) error {
	return c.Container.Terminate(ctx)
}

// OptionsString returns the keyword/value connection options for the
// container, targeting the maintenance database.
func (c *PostgresContainer) OptionsString() string {
	return c.OptionsStringFor(c.Database)
}

// OptionsStringFor returns the keyword/value connection options for the
// container, targeting the given database.
func (c *PostgresContainer) OptionsStringFor(dbname string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, dbname)
}

// MaintenanceOptionsString returns the connection options with no dbname
// token, for connecting before the target database exists.
func (c *PostgresContainer) MaintenanceOptionsString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password)
}
