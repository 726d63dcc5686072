// Package testutil provides test utilities and mock implementations for iroha testing.
//
// This package provides mock implementations of the driver interfaces for
// unit testing, as well as helper functions for integration tests.
//
// # Mock Implementations
//
//   - [MockSession]: Mock implementation of driver.Session
//   - [MockConnector]: Mock implementation of driver.Connector
//   - [RecordingLogger]: types.Logger that captures entries for assertions
//
// # Usage
//
// Create a mock connector and drive the initializer against it:
//
//	connector := testutil.NewMockConnector()
//	init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))
//
//	res := init.CreatePool(ctx, "dbname=test", 4)
//
// Scripted failures are injected through the hook fields:
//
//	connector.FailAt = 2 // third open fails
//	session.OnExec = func(sql string, args ...any) error { return io.EOF }
//
// # Integration Test Helpers
//
// For integration tests, [StartPostgres] starts a PostgreSQL test container
// (requires Docker) with prepared transactions enabled.
package testutil
