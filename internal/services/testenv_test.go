package services

import (
	"context"
	"database/sql"
	"testing"

	"election-bknd/internal/authz"
	"election-bknd/internal/cache"
	"election-bknd/internal/database"
	"election-bknd/internal/logger"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"
)

// newTestDB opens an in-memory SQLite database with the full schema. The
// single connection keeps the memory database alive for the test's lifetime.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, database.InitSchema(context.Background(), db))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// noopInvalidator returns a disabled invalidator, the same instance the
// server runs with when no Redis URL is configured.
func noopInvalidator(t *testing.T) *cache.Invalidator {
	t.Helper()
	inv, err := cache.New("", "views:invalidate", zap.NewNop())
	require.NoError(t, err)
	return inv
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func asSuperadmin() authz.Identity {
	return authz.Identity{UserID: "su-1", Email: "root@example.com", Role: authz.Superadmin()}
}

func asScopeAdmin(scope string) authz.Identity {
	return authz.Identity{UserID: "adm-" + scope, Email: scope + "@example.com", Role: authz.ScopeAdmin(scope)}
}

func asNobody() authz.Identity {
	return authz.Identity{UserID: "usr-1", Email: "usr@example.com"}
}
