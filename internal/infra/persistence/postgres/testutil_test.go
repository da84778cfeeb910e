package postgres

import (
	"fmt"
	"sync/atomic"
	"testing"

	"bazar/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBCounter atomic.Int64

// newTestDB opens an isolated in-memory SQLite database with the full
// schema migrated. The repositories only use portable GORM calls, so
// the same code paths run here and on PostgreSQL. Each call gets its
// own named shared-cache database so the pool's connections all see
// the same data without leaking across tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})

	return db
}
