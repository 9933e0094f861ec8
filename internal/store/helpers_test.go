package store

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"greenpoints-backend/internal/catalog"
	"greenpoints-backend/internal/db"
	"greenpoints-backend/internal/model"
)

// fakeClock is a settable time source for store tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// newSQLiteStore opens a seeded sqlite database in a temp dir.
func newSQLiteStore(t *testing.T) (Store, *gorm.DB, *fakeClock) {
	t.Helper()

	dsn := db.SQLiteDSN(filepath.Join(t.TempDir(), "store.db"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))

	clock := &fakeClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	s := NewGormStoreWithClock(gormDB, clock.Now)

	c, err := catalog.Default()
	require.NoError(t, err)
	_, err = s.Seed(context.Background(), c)
	require.NoError(t, err)

	return s, gormDB, clock
}

func dormByName(t *testing.T, gormDB *gorm.DB, name string) model.Dorm {
	t.Helper()
	var d model.Dorm
	require.NoError(t, gormDB.Where("name = ?", name).First(&d).Error)
	return d
}

func actionTypeByName(t *testing.T, gormDB *gorm.DB, name string) model.ActionType {
	t.Helper()
	var at model.ActionType
	require.NoError(t, gormDB.Where("name = ?", name).First(&at).Error)
	return at
}

func reloadUser(t *testing.T, gormDB *gorm.DB, id int64) model.User {
	t.Helper()
	var u model.User
	require.NoError(t, gormDB.First(&u, id).Error)
	return u
}

func reloadDorm(t *testing.T, gormDB *gorm.DB, id int64) model.Dorm {
	t.Helper()
	var d model.Dorm
	require.NoError(t, gormDB.First(&d, id).Error)
	return d
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
