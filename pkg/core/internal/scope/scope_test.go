package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID     int64
	UserID int64
}

func (row) TableName() string { return "rows" }

func TestActor(t *testing.T) {
	assert.False(t, Anonymous().Authenticated())
	assert.False(t, As(0).Authenticated())
	assert.False(t, As(-3).Authenticated())
	assert.True(t, As(7).Authenticated())
	assert.Equal(t, int64(7), As(7).UserID())

	assert.True(t, As(7).Owns(7))
	assert.False(t, As(7).Owns(8))
	assert.False(t, Anonymous().Owns(0))
	assert.False(t, System().Owns(0))
	assert.True(t, System().IsSystem())
}

func TestOwnedFiltersRows(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&row{}))
	require.NoError(t, db.Create(&[]row{{UserID: 1}, {UserID: 1}, {UserID: 2}}).Error)

	count := func(a Actor) int64 {
		var n int64
		require.NoError(t, db.Model(&row{}).Scopes(Owned(a, "rows")).Count(&n).Error)
		return n
	}

	assert.Equal(t, int64(2), count(As(1)))
	assert.Equal(t, int64(1), count(As(2)))
	assert.Equal(t, int64(0), count(As(3)))
	assert.Equal(t, int64(3), count(Anonymous()))
	assert.Equal(t, int64(3), count(System()))

	// Scoped deletes only touch owned rows.
	res := db.Scopes(Owned(As(2), "rows")).Where("id = ?", 1).Delete(&row{})
	require.NoError(t, res.Error)
	assert.Zero(t, res.RowsAffected)
}
