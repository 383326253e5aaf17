// Package dbtest opens throwaway relational stores for tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirdesai22/hackathon-docsync/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns an in-memory SQLite database, private to t, with the schema
// applied.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.Connect("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// Seeded is Open plus the demo dataset.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()
	gdb := Open(t)
	require.NoError(t, db.Seed(gdb))
	return gdb
}
