package integration

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
)

var (
	testDB    *TestDB
	testRedis *TestRedis
	testSrv   *TestServer
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(0)
	}

	ctx := context.Background()

	var err error
	testDB, err = SetupTestDatabase(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up test database: %v\n", err)
		os.Exit(1)
	}

	testRedis, err = SetupTestRedis(ctx)
	if err != nil {
		testDB.Teardown(ctx)
		fmt.Fprintf(os.Stderr, "failed to set up test redis: %v\n", err)
		os.Exit(1)
	}

	testSrv = NewTestServer(testDB.DB, testRedis.Client)

	code := m.Run()

	testSrv.Close()
	testRedis.Teardown(ctx)
	testDB.Teardown(ctx)

	os.Exit(code)
}

// resetState clears database tables and throttle counters between tests
func resetState(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if err := testDB.CleanupTables(ctx); err != nil {
		t.Fatalf("failed to clean up tables: %v", err)
	}
	if err := testRedis.FlushThrottleState(ctx); err != nil {
		t.Fatalf("failed to flush throttle state: %v", err)
	}
}
